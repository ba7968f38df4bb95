package server

import (
	"math"

	"github.com/ironsheep/phough-mcp/internal/hough"
)

// Config holds the defaults applied to tool calls that omit a parameter.
type Config struct {
	// Version is reported in the initialize handshake.
	Version string

	Rho           float64
	ThetaDegrees  float64
	Threshold     int
	MinLineLength int
	MaxGap        int
	MaxLines      int
	Seed          uint64

	CannyLow  int
	CannyHigh int
}

// DefaultConfig returns the workbench starting values: one pixel and one
// degree of resolution, 50 votes, length 10, gap 10, Canny 100/300.
func DefaultConfig() Config {
	return Config{
		Version:       "0.1.0",
		Rho:           1,
		ThetaDegrees:  1,
		Threshold:     50,
		MinLineLength: 10,
		MaxGap:        10,
		CannyLow:      100,
		CannyHigh:     300,
	}
}

// Params converts the detection defaults into hough.Params.
func (c Config) Params() hough.Params {
	return hough.Params{
		Rho:           c.Rho,
		Theta:         c.ThetaDegrees * math.Pi / 180,
		Threshold:     c.Threshold,
		MinLineLength: c.MinLineLength,
		MaxGap:        c.MaxGap,
		MaxLines:      c.MaxLines,
		Seed:          c.Seed,
	}
}
