/*

Seqlogo converts position matrices of sequence motifs, computes their
consensus and information content and draws sequence logos.

Convert a frequency matrix into a weight matrix:

	seqlogo convert --kind pfm --to pwm motif.pfm

Draw a logo of a protein alignment:

	seqlogo --alphabet AA --fasta logo --scheme chemistry aln.fst logo.pdf

Motifs can be stored in a library:

	seqlogo db save ctcf ctcf.pfm
	seqlogo db show ctcf

To see all the options run:

	seqlogo -h

*/
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/op/go-logging"
	"gopkg.in/alecthomas/kingpin.v2"

	"bitbucket.org/Davydov/seqlogo/alphabet"
	"bitbucket.org/Davydov/seqlogo/bio"
	"bitbucket.org/Davydov/seqlogo/logo"
	"bitbucket.org/Davydov/seqlogo/motifdb"
	"bitbucket.org/Davydov/seqlogo/pm"
	"bitbucket.org/Davydov/seqlogo/pwm"
)

// These three variables are set during the compilation.
var githash = ""
var gitbranch = ""
var buildstamp = ""
var version = fmt.Sprintf("branch: %s, revision: %s, build time: %s", gitbranch, githash, buildstamp)

// Logger settings.
var log = logging.MustGetLogger("seqlogo")
var formatter = logging.MustStringFormatter(`%{message}`)

// stdout is where the commands print their results.
var stdout io.Writer = os.Stdout

var (
	// application
	app = kingpin.New("seqlogo", "sequence motif matrices and logos").Version(version)

	// input
	alphabetName = app.Flag("alphabet", "alphabet ("+strings.Join(alphabet.Names(), ", ")+")").Default("DNA").String()
	kindName     = app.Flag("kind", "input matrix kind").Default("pfm").Enum("pfm", "ppm", "pwm")
	fasta        = app.Flag("fasta", "input is a FASTA alignment, count the symbols").Bool()
	pseudocount  = app.Flag("pseudocount", "pseudocounts to add to every frequency matrix position").Default("0").Float64()
	collapse     = app.Flag("collapse", "collapse ambiguous, gap and wildcard symbols to the canonical alphabet").Bool()

	// output
	outLogF  = app.Flag("log", "write log to a file").String()
	logLevel = app.Flag("loglevel", "set loglevel "+
		"(critical, error, warning, notice, info, debug)").
		Default("notice").
		Enum("critical", "error", "warning", "notice", "info", "debug")
	jsonF = app.Flag("json", "write json output to a file").String()

	// convert
	convertCmd  = app.Command("convert", "convert a matrix to another kind")
	convertIn   = convertCmd.Arg("input", "matrix or alignment file").Required().ExistingFile()
	convertTo   = convertCmd.Flag("to", "output matrix kind").Default("pwm").Enum("pfm", "ppm", "pwm", "logodds")
	convertOutF = convertCmd.Flag("out", "write the matrix to a file instead of the standard output").Short('o').String()
	background  = convertCmd.Flag("background", "background probabilities for log-odds, uniform by default").Float64List()

	// info
	infoCmd  = app.Command("info", "print consensus, information content and entropy")
	infoIn   = infoCmd.Arg("input", "matrix or alignment file").Required().ExistingFile()
	interval = infoCmd.Flag("interval", "print credible intervals of the symbol probabilities with this level, e.g. 0.95").Default("0").Float64()
	prior    = infoCmd.Flag("prior", "Dirichlet prior pseudocounts per symbol for the credible intervals").Default("1").Float64()
	showAln  = infoCmd.Flag("alignment", "print the alignment read with --fasta").Bool()
	wrap     = infoCmd.Flag("wrap", "alignment line width, 0 disables wrapping").Default("60").Int()

	// logo
	logoCmd   = app.Command("logo", "draw a sequence logo")
	logoIn    = logoCmd.Arg("input", "matrix or alignment file").Required().ExistingFile()
	logoOutF  = logoCmd.Arg("output", "logo file").Required().String()
	icScale   = logoCmd.Flag("ic", "scale stacks by information content, otherwise use probabilities").Default("true").Bool()
	scheme    = logoCmd.Flag("scheme", "colour scheme (monochrome, base pairing, classic, hydrophobicity, chemistry, charge)").String()
	size      = logoCmd.Flag("size", "logo size").Default("medium").Enum("small", "medium", "large", "xlarge")
	format    = logoCmd.Flag("format", "output format, by default taken from the file extension").Enum(logo.Formats...)
	logoTitle = logoCmd.Flag("title", "logo title").String()

	// motif library
	dbCmd   = app.Command("db", "motif library")
	dbF     = dbCmd.Flag("db", "library file").Default("motifs.db").String()
	saveCmd = dbCmd.Command("save", "store a motif")
	saveN   = saveCmd.Arg("name", "motif name").Required().String()
	saveIn  = saveCmd.Arg("input", "matrix or alignment file").Required().ExistingFile()
	showCmd = dbCmd.Command("show", "print a stored motif")
	showN   = showCmd.Arg("name", "motif name").Required().String()
	listCmd = dbCmd.Command("list", "list stored motifs")
	rmCmd   = dbCmd.Command("rm", "remove a motif")
	rmN     = rmCmd.Arg("name", "motif name").Required().String()
)

// inputMatrix reads a matrix or counts the symbols of an alignment
// according to the command line settings.
func inputMatrix(fname string) (*pm.Matrix, error) {
	id, err := alphabet.Parse(*alphabetName)
	if err != nil {
		return nil, err
	}
	var m *pm.Matrix
	if *fasta {
		f, err := os.Open(fname)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		seqs, err := bio.ParseFasta(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		log.Infof("Read %d sequences", len(seqs))
		if *showAln {
			if err := seqs.Write(stdout, *wrap); err != nil {
				return nil, err
			}
		}
		counts, err := bio.Count(seqs, id)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fname, err)
		}
		if m, err = pm.New(counts, pm.Frequency, id); err != nil {
			return nil, err
		}
	} else {
		kind, err := pm.ParseKind(*kindName)
		if err != nil {
			return nil, err
		}
		if m, err = pm.Load(fname, kind, id); err != nil {
			return nil, err
		}
	}
	log.Infof("%s %s matrix, %d positions", m.Alphabet(), m.Kind(), m.Width())
	if *pseudocount > 0 {
		if m, err = pm.WithPseudocount(m, *pseudocount); err != nil {
			return nil, err
		}
		log.Infof("Added %v pseudocounts", *pseudocount)
	}
	return m, nil
}

// inputMotif creates a motif model from an input file.
func inputMotif(fname string) (*pwm.Pwm, error) {
	m, err := inputMatrix(fname)
	if err != nil {
		return nil, err
	}
	if *collapse {
		res, err := pm.Collapse(m, m.Kind())
		if err != nil {
			return nil, err
		}
		log.Infof("Collapsed to %s", res.Matrix.Alphabet())
		return pwm.FromCollapsed(res)
	}
	return pwm.New(m)
}

// motifSummary returns the motif statistics.
func motifSummary(p *pwm.Pwm) *MotifSummary {
	return &MotifSummary{
		Alphabet:  p.Alphabet().String(),
		Width:     p.Width(),
		Consensus: p.Consensus(),
		IC:        p.IC(),
		TotalIC:   p.TotalIC(),
		Entropy:   p.Entropy(),
		Weight:    p.Weight(),
	}
}

// printMotif prints a motif and its statistics.
func printMotif(p *pwm.Pwm) {
	fmt.Fprintln(stdout, p)
	fmt.Fprintf(stdout, "consensus=%s\n", p.Consensus())
	fmt.Fprintf(stdout, "ic=%.4f\n", p.TotalIC())
}

// openOutput returns the output file or the standard output.
func openOutput(fname string) (io.WriteCloser, error) {
	if fname == "" || fname == "-" {
		return nopCloser{stdout}, nil
	}
	return os.Create(fname)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// convert runs the convert command.
func convert(summary *Summary) error {
	summary.Input = *convertIn
	summary.Output = *convertOutF
	m, err := inputMatrix(*convertIn)
	if err != nil {
		return err
	}
	target := *convertTo
	if *collapse {
		kind := m.Kind()
		if target != "logodds" {
			if kind, err = pm.ParseKind(target); err != nil {
				return err
			}
		}
		res, err := pm.Collapse(m, kind)
		if err != nil {
			return err
		}
		m = res.Matrix
		log.Infof("Collapsed to %s, weights: %v", m.Alphabet(), res.Weights)
	}

	out, err := openOutput(*convertOutF)
	if err != nil {
		return err
	}
	defer out.Close()

	if target == "logodds" {
		if !m.Kind().Normalized() {
			if m, err = pm.Convert(m, pm.Weight); err != nil {
				return err
			}
		}
		bg := *background
		if len(bg) == 0 {
			bg = nil
		}
		lo, err := pm.LogOdds(m, bg)
		if err != nil {
			return err
		}
		return writeScores(out, lo, m.Alphabet())
	}

	kind, err := pm.ParseKind(target)
	if err != nil {
		return err
	}
	if m, err = pm.Convert(m, kind); err != nil {
		return err
	}
	return pm.Write(out, m)
}

// writeScores writes a log-odds score table in the matrix file
// format.
func writeScores(w io.Writer, scores *mat64.Dense, id alphabet.ID) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# logodds %s\n", id)
	fmt.Fprintf(bw, "# %s\n", strings.Join(strings.Split(id.Symbols(), ""), "\t"))
	r, c := scores.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if j > 0 {
				bw.WriteByte('\t')
			}
			bw.WriteString(strconv.FormatFloat(scores.At(i, j), 'g', 6, 64))
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// info runs the info command.
func info(summary *Summary) error {
	summary.Input = *infoIn
	p, err := inputMotif(*infoIn)
	if err != nil {
		return err
	}
	printMotif(p)
	summary.Motif = motifSummary(p)
	if *interval > 0 {
		lo, hi, err := p.Interval(*interval, *prior)
		if err != nil {
			return err
		}
		printInterval(p.Symbols(), lo, hi)
		summary.Motif.Lower = lo
		summary.Motif.Upper = hi
	}
	return nil
}

// printInterval prints credible intervals of every position.
func printInterval(syms string, lo, hi [][]float64) {
	for i := range lo {
		fmt.Fprintf(stdout, "%d", i+1)
		for j := range lo[i] {
			fmt.Fprintf(stdout, "\t%c:%.3f-%.3f", syms[j], lo[i][j], hi[i][j])
		}
		fmt.Fprintln(stdout)
	}
}

// draw runs the logo command.
func draw(summary *Summary) error {
	summary.Input = *logoIn
	summary.Output = *logoOutF
	sch, err := logo.ParseScheme(*scheme)
	if err != nil {
		return err
	}
	p, err := inputMotif(*logoIn)
	if err != nil {
		return err
	}
	summary.Motif = motifSummary(p)
	opt := logo.Options{
		ICScale: *icScale,
		Scheme:  sch,
		Size:    logo.Size(*size),
		Format:  *format,
		Title:   *logoTitle,
	}
	if err := logo.Save(*logoOutF, p, opt); err != nil {
		return err
	}
	log.Noticef("Logo written to %s", *logoOutF)
	return nil
}

// library runs the motif library commands.
func library(command string, summary *Summary) error {
	db, err := motifdb.Open(*dbF)
	if err != nil {
		return err
	}
	defer db.Close()

	switch command {
	case saveCmd.FullCommand():
		summary.Input = *saveIn
		p, err := inputMotif(*saveIn)
		if err != nil {
			return err
		}
		summary.Motif = motifSummary(p)
		return db.Save(*saveN, p)
	case showCmd.FullCommand():
		summary.Input = *showN
		p, err := db.Load(*showN)
		if err != nil {
			return err
		}
		printMotif(p)
		summary.Motif = motifSummary(p)
	case listCmd.FullCommand():
		names, err := db.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Fprintln(stdout, name)
		}
		summary.Motifs = names
	case rmCmd.FullCommand():
		summary.Input = *rmN
		return db.Delete(*rmN)
	}
	return nil
}

// run runs a parsed command.
func run(command string) (*Summary, error) {
	startTime := time.Now()
	summary := &Summary{Command: command}

	var err error
	switch command {
	case convertCmd.FullCommand():
		err = convert(summary)
	case infoCmd.FullCommand():
		err = info(summary)
	case logoCmd.FullCommand():
		err = draw(summary)
	case saveCmd.FullCommand(), showCmd.FullCommand(), listCmd.FullCommand(), rmCmd.FullCommand():
		err = library(command, summary)
	default:
		err = fmt.Errorf("unknown command: %s", command)
	}

	deltaT := time.Since(startTime)
	log.Infof("Running time: %v", deltaT)
	summary.Time = deltaT.Seconds()
	return summary, err
}

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	// logging
	logging.SetFormatter(formatter)

	var backend *logging.LogBackend
	if *outLogF != "" {
		f, err := os.OpenFile(*outLogF, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Fatal("Error creating log file:", err)
		}
		defer f.Close()
		backend = logging.NewLogBackend(f, "", 0)
	} else {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
	}
	logging.SetBackend(backend)

	level, err := logging.LogLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	for _, module := range []string{"seqlogo", "pm", "pwm", "logo", "motifdb"} {
		logging.SetLevel(level, module)
	}

	// print revision
	log.Info(version)

	// print commandline
	log.Info("Command line:", os.Args)

	summary, err := run(command)
	if err != nil {
		log.Fatal(err)
	}
	summary.Version = version
	summary.CommandLine = os.Args

	// output summary in json format
	if *jsonF != "" {
		writeJSON(summary, *jsonF)
	}
}
