// Package main provides the normalizer command-line tool: one raw headline
// per input line in, one normalized headline per line out.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"newsharvest/internal/normalizer"
)

type result struct {
	Raw        string `json:"raw"`
	Normalized string `json:"normalized"`
	Error      string `json:"error,omitempty"`
}

func main() {
	inputPath := flag.String("input", "", "Path to input file (default: stdin)")
	asJSON := flag.Bool("json", false, "Emit one JSON object per line")
	check := flag.Bool("check", false, "Validate every normalized headline and exit non-zero on failure")
	flag.Parse()

	var in io.Reader = os.Stdin

	if *inputPath != "" {
		f, err := os.Open(*inputPath)
		if err != nil {
			log.Fatalf("Error reading file: %v\n", err)
		}
		defer f.Close()

		in = f
	}

	processor := normalizer.NewProcessor()
	validator := normalizer.NewValidator()
	enc := json.NewEncoder(os.Stdout)
	invalid := 0

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		r := result{Raw: scanner.Text()}
		r.Normalized = processor.Process(r.Raw)

		if *check {
			if err := validator.Validate(r.Normalized); err != nil {
				r.Error = err.Error()
				invalid++
			}
		}

		if *asJSON {
			if err := enc.Encode(r); err != nil {
				log.Fatalf("Error writing output: %v\n", err)
			}

			continue
		}

		fmt.Println(r.Normalized)

		if r.Error != "" {
			fmt.Fprintf(os.Stderr, "⚠️  %q: %s\n", r.Raw, r.Error)
		}
	}

	if err := scanner.Err(); err != nil {
		log.Fatalf("Error reading input: %v\n", err)
	}

	if invalid > 0 {
		fmt.Fprintf(os.Stderr, "❌ %d headlines failed validation\n", invalid)
		os.Exit(1)
	}
}
