// Package logo renders sequence logos of motif models.
package logo

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"bitbucket.org/Davydov/seqlogo/pwm"
)

// log is the global logging variable.
var log = logging.MustGetLogger("logo")

var (
	// ErrColorSchemeMismatch is returned when a colour scheme does
	// not apply to the motif alphabet.
	ErrColorSchemeMismatch = errors.New("colour scheme does not match the alphabet")
	// ErrUnsupportedFormat is returned for an unknown output format.
	ErrUnsupportedFormat = errors.New("unsupported logo format")
)

// Formats lists the supported output formats.
var Formats = []string{"eps", "pdf", "png", "jpeg", "svg"}

// Size is a logo width.
type Size string

// Logo sizes.
const (
	Small  Size = "small"
	Medium Size = "medium"
	Large  Size = "large"
	XLarge Size = "xlarge"
)

// Sizes lists the logo sizes.
var Sizes = []Size{Small, Medium, Large, XLarge}

var widths = map[Size]vg.Length{
	Small:  3.54 * vg.Inch,
	Medium: 5 * vg.Inch,
	Large:  7.25 * vg.Inch,
	XLarge: 10.25 * vg.Inch,
}

const (
	// stackAspect is the height to width ratio of a stack.
	stackAspect = 5
	// minHeight is the smallest logo height.
	minHeight = 1.5 * vg.Inch
	// glyphSize is the font size glyphs are drawn at before scaling.
	// The face is regular weight since the pdf backend registers
	// fonts without a style.
	glyphSize = 72
	// capHeight is the height of a capital letter relative to the
	// font size.
	capHeight = 0.72
	// stackGap is the blank space on each side of a stack in
	// positions.
	stackGap = 0.03
)

// Options control the logo appearance.
type Options struct {
	// ICScale scales the stacks by information content (bits).
	// Otherwise the stack heights are probabilities.
	ICScale bool
	// Scheme is the colour scheme. The empty scheme is the default
	// for the molecule type.
	Scheme Scheme
	// Size is the logo width, Medium by default.
	Size Size
	// Format is the output format, see Formats.
	Format string
	// Title is an optional plot title.
	Title string
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{ICScale: true, Size: Medium, Format: "png"}
}

// checkFormat normalizes a format name.
func checkFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimPrefix(format, "."))
	if f == "jpg" {
		f = "jpeg"
	}
	for _, ok := range Formats {
		if f == ok {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

// dims returns the logo width and height for a motif width.
func dims(size Size, npos int) (w, h vg.Length, err error) {
	if size == "" {
		size = Medium
	}
	w, ok := widths[size]
	if !ok {
		return 0, 0, fmt.Errorf("unknown logo size %q", size)
	}
	h = w / vg.Length(npos) * stackAspect
	h = vg.Length(math.Max(float64(minHeight), math.Min(float64(h), float64(w))))
	return w, h, nil
}

// Plot creates a logo plot. The options are checked before anything
// is drawn.
func Plot(p *pwm.Pwm, opt Options) (*plot.Plot, error) {
	scheme, err := opt.Scheme.resolve(p.Alphabet())
	if err != nil {
		return nil, err
	}
	st := newStacks(p, opt.ICScale, scheme)

	plt := plot.New()
	plt.Title.Text = opt.Title
	plt.Add(st)
	plt.X.Label.Text = "position"
	if opt.ICScale {
		plt.Y.Label.Text = "bits"
	} else {
		plt.Y.Label.Text = "probability"
	}
	ticks := make(plot.ConstantTicks, p.Width())
	for i := range ticks {
		ticks[i] = plot.Tick{Value: float64(i + 1), Label: strconv.Itoa(i + 1)}
	}
	plt.X.Tick.Marker = ticks
	log.Debugf("%d position logo, %s scheme, y max %g", p.Width(), scheme, plt.Y.Max)
	return plt, nil
}

// Render writes a logo in the requested format.
func Render(w io.Writer, p *pwm.Pwm, opt Options) error {
	format, err := checkFormat(opt.Format)
	if err != nil {
		return err
	}
	width, height, err := dims(opt.Size, p.Width())
	if err != nil {
		return err
	}
	plt, err := Plot(p, opt)
	if err != nil {
		return err
	}
	wt, err := plt.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// Save writes a logo to a file. If the format is not set it is taken
// from the file extension. Nothing is created when the options are
// invalid.
func Save(fname string, p *pwm.Pwm, opt Options) (err error) {
	if opt.Format == "" {
		opt.Format = filepath.Ext(fname)
	}
	if opt.Format, err = checkFormat(opt.Format); err != nil {
		return err
	}
	if _, err = opt.Scheme.resolve(p.Alphabet()); err != nil {
		return err
	}
	if _, _, err = dims(opt.Size, p.Width()); err != nil {
		return err
	}
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	defer func() {
		if e := f.Close(); err == nil {
			err = e
		}
	}()
	return Render(f, p, opt)
}

// stacks is a plotter drawing one stack of letters per position.
type stacks struct {
	heights [][]float64
	syms    string
	colors  []color.Color
	ymax    float64
	face    font.Face
}

func newStacks(p *pwm.Pwm, icScale bool, scheme Scheme) *stacks {
	rows := p.Matrix().Rows()
	ic := p.IC()
	weight := p.Weight()
	// the axis covers the full scale and any stack raised above it
	// by a weight greater than 1
	ymax := 1.0
	if icScale {
		ymax = math.Log2(float64(len(p.Symbols())))
	}
	for i, row := range rows {
		scale := weight[i]
		if icScale {
			scale *= ic[i]
		}
		total := 0.0
		for j := range row {
			row[j] *= scale
			total += row[j]
		}
		ymax = math.Max(ymax, total)
	}
	return &stacks{
		heights: rows,
		syms:    p.Symbols(),
		colors:  scheme.palette(p.Alphabet()),
		ymax:    ymax,
		face: font.DefaultCache.Lookup(font.Font{
			Typeface: "Liberation",
			Variant:  "Sans",
			Weight:   xfont.WeightNormal,
		}, glyphSize),
	}
}

// DataRange implements the plot.DataRanger interface.
func (s *stacks) DataRange() (xmin, xmax, ymin, ymax float64) {
	return 0.5, float64(len(s.heights)) + 0.5, 0, s.ymax
}

// Plot implements the plot.Plotter interface. Within a stack the
// smallest letter is at the bottom.
func (s *stacks) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	for i, col := range s.heights {
		order := make([]int, len(col))
		for j := range order {
			order[j] = j
		}
		sort.SliceStable(order, func(a, b int) bool {
			return col[order[a]] < col[order[b]]
		})
		x0 := trX(float64(i) + 0.5 + stackGap)
		x1 := trX(float64(i) + 1.5 - stackGap)
		y := 0.0
		for _, j := range order {
			h := col[j]
			if h <= 0 {
				continue
			}
			s.letter(c, j, x0, x1, trY(y), trY(y+h))
			y += h
		}
	}
}

// letter draws the symbol j stretched to a rectangle.
func (s *stacks) letter(c draw.Canvas, j int, x0, x1, y0, y1 vg.Length) {
	sym := s.syms[j : j+1]
	gw := s.face.Width(sym)
	gh := capHeight * s.face.Font.Size
	if gw <= 0 || gh <= 0 || x1 <= x0 || y1 <= y0 {
		return
	}
	c.Push()
	c.Translate(vg.Point{X: x0, Y: y0})
	c.Scale(float64((x1-x0)/gw), float64((y1-y0)/gh))
	c.SetColor(s.colors[j])
	c.FillString(s.face, vg.Point{}, sym)
	c.Pop()
}
