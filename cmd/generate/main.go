package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"geminus.dev/internal/catalog"
	"geminus.dev/internal/generation"
	"geminus.dev/internal/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, "Usage: generate <output-dir>")
		fmt.Fprintln(stderr, "       generate <output-dir> <zone-count>  (generate a smaller or larger catalog)")
		return 1
	}

	outputDir := args[0]
	count := catalog.ZoneCount
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			fmt.Fprintf(stderr, "Invalid zone count %q\n", args[1])
			return 1
		}
		count = n
	}

	// Ensure output directory exists
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Fprintf(stderr, "Failed to create output directory: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Generating %d zones...\n", count)
	zones, err := catalog.BuildZones(generation.NewRosterGenerator(), count)
	if err != nil {
		fmt.Fprintf(stderr, "  ERROR: %v\n", err)
		return 1
	}
	cat, err := catalog.New(zones)
	if err != nil {
		fmt.Fprintf(stderr, "  ERROR: %v\n", err)
		return 1
	}

	// Refuse to write a catalog the validator would reject
	if report := validation.Validate(cat); len(report) > 0 {
		report.Write(stderr)
		return 1
	}

	var buf bytes.Buffer
	if err := cat.WriteJSON(&buf); err != nil {
		fmt.Fprintf(stderr, "  ERROR marshaling JSON: %v\n", err)
		return 1
	}

	path := filepath.Join(outputDir, "zones.json")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(stderr, "  ERROR writing file: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "  Created %s (%d zones)\n", path, cat.Len())
	fmt.Fprintln(stdout, "Done!")
	return 0
}
