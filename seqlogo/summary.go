package main

import (
	"encoding/json"
	"os"
)

// Summary is storing seqlogo run summary information.
type Summary struct {
	// Version stores seqlogo version.
	Version string `json:"version"`
	// CommandLine is an array storing binary name and all command-line parameters.
	CommandLine []string `json:"commandLine"`
	// Command is the command which was run.
	Command string `json:"command"`
	// Input is the input file name or motif name.
	Input string `json:"input,omitempty"`
	// Output is the output file name.
	Output string `json:"output,omitempty"`
	// Motif is the motif summary.
	Motif *MotifSummary `json:"motif,omitempty"`
	// Motifs lists the library motif names.
	Motifs []string `json:"motifs,omitempty"`
	// Time is the running time in seconds.
	Time float64 `json:"time"`
}

// MotifSummary stores motif statistics.
type MotifSummary struct {
	// Alphabet is the alphabet name.
	Alphabet string `json:"alphabet"`
	// Width is the number of positions.
	Width int `json:"width"`
	// Consensus is the consensus sequence.
	Consensus string `json:"consensus"`
	// IC is the information content of every position.
	IC []float64 `json:"ic"`
	// TotalIC is the information content of the motif.
	TotalIC float64 `json:"totalIC"`
	// Entropy is the entropy of every position.
	Entropy []float64 `json:"entropy"`
	// Weight is the per-position weight multiplier.
	Weight []float64 `json:"weight"`
	// Lower are the lower bounds of the symbol probability intervals.
	Lower [][]float64 `json:"lower,omitempty"`
	// Upper are the upper bounds of the symbol probability intervals.
	Upper [][]float64 `json:"upper,omitempty"`
}

// writeJSON writes the summary to a file.
func writeJSON(summary *Summary, fname string) {
	j, err := json.Marshal(summary)
	if err != nil {
		log.Error(err)
		return
	}
	log.Debug(string(j))
	f, err := os.Create(fname)
	if err != nil {
		log.Error("Error creating json output file:", err)
		return
	}
	defer f.Close()
	if _, err := f.Write(j); err != nil {
		log.Error("Error writing json output file:", err)
	}
}
