// Package extract turns a model registry into a line-delimited JSON snapshot:
// Discover, Normalize each model, then Write.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"

	"appwrap/internal/logger"
	"appwrap/internal/model"
)

const (
	DefaultOutputDir = "appwrap"
	OutputFileName   = "routes.jsonl"
)

// Extractor runs one full extraction for a model root.
type Extractor struct {
	outputDir string
	registry  model.Registry
	out       io.Writer
}

// NewExtractor returns an Extractor writing to <root>/<outputDir>/routes.jsonl.
// An empty outputDir means DefaultOutputDir.
func NewExtractor(root, outputDir string, registry model.Registry) *Extractor {
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}
	return &Extractor{
		outputDir: filepath.Join(root, outputDir),
		registry:  registry,
		out:       os.Stdout,
	}
}

// SetOutput sets where the summary line is printed.
func (e *Extractor) SetOutput(w io.Writer) {
	e.out = w
}

func (e *Extractor) OutputFile() string {
	return filepath.Join(e.outputDir, OutputFileName)
}

// Extract writes a complete snapshot and returns the number of models in it.
// Nothing is written unless every model normalizes.
func (e *Extractor) Extract(ctx context.Context) (int, error) {
	models, err := Discover(ctx, e.registry)
	if err != nil {
		return 0, err
	}
	logger.Debug("discovered %d models", len(models))

	snapshots := make([]ModelSnapshot, 0, len(models))
	seen := make(map[string]bool, len(models))
	for _, d := range models {
		snap, err := Normalize(d)
		if err != nil {
			return 0, err
		}
		for seen[snap.UUID] {
			if snap.UUID, err = newUUID(); err != nil {
				return 0, err
			}
		}
		seen[snap.UUID] = true
		snapshots = append(snapshots, snap)
	}

	n, err := Write(snapshots, e.OutputFile())
	if err != nil {
		return 0, err
	}

	check := color.New(color.FgGreen).Sprint("✓")
	if _, err := fmt.Fprintf(e.out, "%s Extracted %d models to %s\n", check, n, e.OutputFile()); err != nil {
		logger.Warn("print summary: %v", err)
	}
	logger.Info("extracted %d models to %s", n, e.OutputFile())
	return n, nil
}
