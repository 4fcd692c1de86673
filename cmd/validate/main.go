// Command validate checks a zone catalog for structural completeness.
//
// Usage: validate [-strict] [-v] [catalog.json]
//
// Without a path the built-in catalog is checked.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"geminus.dev/internal/config"
	"geminus.dev/internal/models"
	"geminus.dev/internal/validation"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strict := fs.Bool("strict", false, "exit with status 1 when any zone is incomplete")
	verbose := fs.Bool("v", false, "print building and monster counts for every zone")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	cat, err := config.LoadCatalog(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if *verbose {
		for _, z := range cat.Zones() {
			counts := validation.BuildingCounts(z)
			fmt.Fprintf(stdout, "Zone %3d %-28s", z.ID, z.Name)
			for _, kind := range models.RequiredBuildings {
				fmt.Fprintf(stdout, " %s=%d", kind, counts[kind])
			}
			fmt.Fprintf(stdout, " monsters=%d\n", len(z.Monsters))
		}
	}

	report := validation.Validate(cat)
	report.Write(stdout)
	fmt.Fprintf(stdout, "%d/%d zones complete\n", cat.Len()-len(report), cat.Len())

	if *strict && len(report) > 0 {
		return 1
	}
	return 0
}
