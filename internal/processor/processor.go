// Package processor drives condensing over files and directory trees:
// it collects eligible Rust sources, runs the parse/transform/print
// pipeline on each and writes the results, tracking size statistics.
package processor

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/welf/code-context/internal/rust/parser"
	"github.com/welf/code-context/internal/rust/printer"
	"github.com/welf/code-context/internal/transform"
)

const (
	outputDirSuffix = "code-context"
	combinedName    = "code_context.rs.txt"
	outputExt       = ".txt"
)

// Options select the input, the output location and the condensing
// policies for one run.
type Options struct {
	InputPath   string
	OutputDir   string
	StripDocs   bool
	StripBodies bool
	SingleFile  bool
	DryRun      bool
	Quiet       bool
}

// Stats accumulates byte counts over a run.
type Stats struct {
	FilesProcessed int
	InputSize      int64
	OutputSize     int64
}

// ReductionPercent reports the size saved by condensing.
func (s Stats) ReductionPercent() float64 {
	if s.InputSize == 0 {
		return 0
	}
	return float64(s.InputSize-s.OutputSize) / float64(s.InputSize) * 100
}

// Run condenses the input path, a single file or a directory tree.
func Run(opts Options) (Stats, error) {
	info, err := os.Stat(opts.InputPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Stats{}, fmt.Errorf("input path does not exist: %s", opts.InputPath)
	}
	if err != nil {
		return Stats{}, err
	}
	if info.IsDir() {
		return runDir(opts)
	}
	return runFile(opts)
}

func runFile(opts Options) (Stats, error) {
	if !IsEligibleSourceFile(opts.InputPath) {
		return Stats{}, fmt.Errorf("not a Rust source file: %s", opts.InputPath)
	}
	text, inSize, err := condenseFile(opts.InputPath, opts)
	if err != nil {
		return Stats{}, err
	}
	// A single file is written next to its source; OutputDir only names
	// the directory created for directory inputs.
	dest := opts.InputPath + outputExt
	if !opts.DryRun {
		if err := writeOutput(dest, text); err != nil {
			return Stats{}, err
		}
	}
	slog.Debug("condensed file", "input", opts.InputPath, "output", dest)
	return Stats{FilesProcessed: 1, InputSize: inSize, OutputSize: int64(len(text))}, nil
}

func runDir(opts Options) (Stats, error) {
	files, err := collect(opts.InputPath)
	if err != nil {
		return Stats{}, err
	}
	if len(files) == 0 {
		slog.Warn("no Rust sources found", "path", opts.InputPath)
		return Stats{}, nil
	}

	outDir, err := outputTreePath(opts.InputPath, opts.OutputDir)
	if err != nil {
		return Stats{}, err
	}

	var bar *progressbar.ProgressBar
	if !opts.Quiet {
		bar = progressbar.NewOptions(len(files),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Condensing"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
	}

	var stats Stats
	var combined strings.Builder
	for _, path := range files {
		text, inSize, err := condenseFile(path, opts)
		if err != nil {
			return stats, err
		}
		rel, err := filepath.Rel(opts.InputPath, path)
		if err != nil {
			return stats, err
		}
		if opts.SingleFile {
			// Every file gets the header, including the first. Headers
			// and separators stay out of the byte totals.
			combined.WriteString("\n// File: " + filepath.ToSlash(rel) + "\n\n")
			combined.WriteString(text)
			combined.WriteString("\n")
		} else {
			dest := filepath.Join(outDir, rel+outputExt)
			if !opts.DryRun {
				if err := writeOutput(dest, text); err != nil {
					return stats, err
				}
			}
		}
		stats.FilesProcessed++
		stats.InputSize += inSize
		stats.OutputSize += int64(len(text))
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	if opts.SingleFile && !opts.DryRun {
		if err := writeOutput(filepath.Join(outDir, combinedName), combined.String()); err != nil {
			return stats, err
		}
	}
	slog.Debug("condensed tree", "files", stats.FilesProcessed, "output", outDir)
	return stats, nil
}

// condenseFile runs the pipeline on one source file and returns the
// condensed text with the input size.
func condenseFile(path string, opts Options) (string, int64, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return "", 0, fmt.Errorf("read %s: %w", path, err)
	}
	f, err := parser.Parse(string(src))
	if err != nil {
		var diag *parser.Diagnostic
		if errors.As(err, &diag) {
			diag.Path = path
			return "", 0, diag
		}
		return "", 0, fmt.Errorf("parse %s: %w", path, err)
	}
	transform.Apply(f, transform.Options{
		StripDocs:   opts.StripDocs,
		StripBodies: opts.StripBodies,
	})
	return printer.Print(f), int64(len(src)), nil
}

// collect gathers eligible files under root in walk order, skipping
// hidden directories.
func collect(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsEligibleSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// IsEligibleSourceFile reports whether path names a Rust source file.
// The tool's own .rs.txt outputs are not eligible.
func IsEligibleSourceFile(path string) bool {
	return filepath.Ext(path) == ".rs"
}

// outputTreePath returns the sibling directory that mirrors a directory
// input: foo/bar maps to foo/bar-<name>, with name defaulting to
// code-context.
func outputTreePath(input, name string) (string, error) {
	if name == "" {
		name = outputDirSuffix
	}
	abs, err := filepath.Abs(input)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(abs), filepath.Base(abs)+"-"+name), nil
}

func writeOutput(dest, text string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(dest, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dest, err)
	}
	return nil
}
