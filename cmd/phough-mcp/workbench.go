package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog"

	"github.com/ironsheep/phough-mcp/internal/detection"
	imgtools "github.com/ironsheep/phough-mcp/internal/imaging"
)

// workbenchFiles are the images written by the workbench, relative to -out.
const (
	linesFile       = "lines.png"
	accumulatorFile = "accumulator.png"
)

// runWorkbench detects lines in a single image and writes the overlay and
// the accumulator next to each other in the output directory.
func runWorkbench(args []string, logger zerolog.Logger) error {
	cfg, err := configFromEnv(os.Getenv)
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("workbench", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var (
		input    = fs.String("image", "", "input image (required)")
		out      = fs.String("out", ".", "output directory")
		rho      = fs.Float64("rho", cfg.Rho, "distance resolution in pixels")
		theta    = fs.Float64("theta", cfg.ThetaDegrees, "angle resolution in degrees")
		thresh   = fs.Int("threshold", cfg.Threshold, "minimum votes")
		minLen   = fs.Int("min-length", cfg.MinLineLength, "minimum segment extent along x or y")
		maxGap   = fs.Int("max-gap", cfg.MaxGap, "longest gap bridged while tracing")
		maxLines = fs.Int("max-lines", cfg.MaxLines, "stop after this many segments (0 = no limit)")
		seed     = fs.Uint64("seed", cfg.Seed, "random seed")
		low      = fs.Int("canny-low", cfg.CannyLow, "Canny low threshold")
		high     = fs.Int("canny-high", cfg.CannyHigh, "Canny high threshold")
		edges    = fs.Bool("edges", false, "treat the input as a precomputed edge mask")
		labels   = fs.Bool("labels", false, "label segments with their index")
		gray     = fs.Bool("gray", false, "render the accumulator as saturated counts instead of a heat map")
		scale    = fs.Int("scale", 1, "accumulator enlargement factor")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			fs.SetOutput(os.Stdout)
			fmt.Println("Usage: phough-mcp workbench -image <file> [flags]")
			fs.PrintDefaults()
			return nil
		}
		return err
	}
	if *input == "" {
		return errors.New("workbench: -image is required")
	}

	src, err := imaging.Open(*input)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}

	cfg.Rho, cfg.ThetaDegrees = *rho, *theta
	cfg.Threshold, cfg.MinLineLength, cfg.MaxGap, cfg.MaxLines = *thresh, *minLen, *maxGap, *maxLines
	cfg.Seed = *seed

	params := cfg.Params()
	params.Logger = &logger
	det, err := detection.Run(src, detection.Options{
		Params:           params,
		CannyLow:         *low,
		CannyHigh:        *high,
		EdgesPrecomputed: *edges,
	})
	if err != nil {
		return err
	}

	overlay := imgtools.DrawSegments(src, det.Segments, imgtools.OverlayOptions{Color: "#FF0000", Labels: *labels})
	canvas := imgtools.SideBySide(det.Edges, overlay, 10)
	acc := imgtools.RenderAccumulator(det.Accumulator, imgtools.AccumulatorOptions{Gray: *gray, Scale: *scale})

	if err := os.MkdirAll(*out, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	linesPath := filepath.Join(*out, linesFile)
	if err := imaging.Save(canvas, linesPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", linesPath, err)
	}
	accPath := filepath.Join(*out, accumulatorFile)
	if err := imaging.Save(acc, accPath); err != nil {
		return fmt.Errorf("failed to write %s: %w", accPath, err)
	}

	summary := detection.Summarize(det.Accumulator)
	logger.Info().
		Str("component", "workbench").
		Str("image", *input).
		Int("segments", len(det.Segments)).
		Int("edge_pixels", det.Stats.EdgePixels).
		Int("samples", det.Stats.Samples).
		Int("rejected", det.Stats.Rejected).
		Int("max_votes", summary.MaxVotes).
		Str("lines", linesPath).
		Str("accumulator", accPath).
		Msg("workbench done")
	return nil
}
