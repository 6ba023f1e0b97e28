// Command itemize runs the extraction pipeline over a receipt text file and
// prints the result, without starting the HTTP server.
// Usage: go run ./cmd/itemize -in receipt.txt [-format json|csv] [-rules dir]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"itemize/internal/export"
	"itemize/internal/extract"
	"itemize/internal/ruleset"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		inPath     = flag.String("in", "", "path to a receipt text file (required)")
		format     = flag.String("format", "json", "output format: json or csv")
		rulesDir   = flag.String("rules", "", "rule overlay directory (optional)")
		confidence = flag.Float64("confidence", 1.0, "upstream engine confidence in [0,1]")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		return fmt.Errorf("missing required -in flag")
	}

	raw, err := os.ReadFile(*inPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", *inPath, err)
	}

	var rules *ruleset.RuleSet
	if *rulesDir != "" {
		rules, err = ruleset.Load(*rulesDir)
	} else {
		rules, err = ruleset.Builtin()
	}
	if err != nil {
		return fmt.Errorf("building rule set: %w", err)
	}

	result := extract.NewService(rules).Extract(string(raw), *confidence)

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("encoding result: %w", err)
		}
	case "csv":
		if _, err := os.Stdout.Write(export.BOM); err != nil {
			return err
		}
		if err := export.NewCSVWriter(os.Stdout).WriteResult(result); err != nil {
			return fmt.Errorf("writing csv: %w", err)
		}
	default:
		return fmt.Errorf("unknown format %q (want json or csv)", *format)
	}
	return nil
}
