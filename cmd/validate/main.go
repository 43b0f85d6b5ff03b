package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/jwebster45206/itemshuffle/pkg/seed"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <seed.yaml> [seed.yaml...]\n", os.Args[0])
		os.Exit(1)
	}

	failed := false
	for _, filename := range os.Args[1:] {
		validator := &SeedValidator{}
		if err := validator.validateFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("Seed file %s is valid! (%s)\n", filename, validator.summary)
	}
	if failed {
		os.Exit(1)
	}
}

var seedFilename = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)

type SeedValidator struct {
	errors  []string
	summary string
}

func (v *SeedValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	ext := filepath.Ext(baseName)
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("seed file must have .yaml or .yml extension: %s", baseName)
	}
	if !seedFilename.MatchString(strings.TrimSuffix(baseName, ext)) {
		return fmt.Errorf("seed filename '%s' must be lowercase snake_case (e.g., my_seed.yaml, not my-seed.yaml or MySeed.yaml)", baseName)
	}

	s, err := seed.Load(filename)
	if err != nil {
		return err
	}

	v.errors = s.Validate()
	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	if _, err := s.Compile(); err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}
	flagBytes, err := s.FlagBytes()
	if err != nil {
		return fmt.Errorf("%s: %w", filename, err)
	}

	v.summary = fmt.Sprintf("%d overrides, %d alternates, %d rooms, %d flag bytes",
		len(s.Overrides), len(s.Alternates), len(s.Rooms), flagBytes)
	return nil
}
