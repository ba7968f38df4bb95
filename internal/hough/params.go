package hough

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// ErrInvalidArgument is wrapped by every error returned for bad input,
// either a parameter out of range or a source image that is not 8-bit
// single-channel.
var ErrInvalidArgument = errors.New("invalid argument")

// Params controls a single detection run.
type Params struct {
	// Rho is the distance resolution of the accumulator in pixels.
	Rho float64

	// Theta is the angle resolution of the accumulator in radians.
	Theta float64

	// Threshold is the minimum number of votes an orientation needs before
	// a line is walked from the sampled pixel.
	Threshold int

	// MinLineLength is the minimum extent of an accepted segment along x or y.
	MinLineLength int

	// MaxGap is the longest run of inactive pixels tolerated while walking.
	MaxGap int

	// MaxLines stops the run once this many segments are accepted.
	// Zero means no limit.
	MaxLines int

	// Seed initializes the random sampler. Runs with the same seed over the
	// same image and parameters produce identical results.
	Seed uint64

	// Logger receives a debug summary of the run. Nil disables logging.
	Logger *zerolog.Logger
}

// DefaultParams returns the workbench starting values:
// one pixel, one degree, 100 votes, length 10 and gap 10.
func DefaultParams() Params {
	return Params{
		Rho:           1,
		Theta:         degree,
		Threshold:     100,
		MinLineLength: 10,
		MaxGap:        10,
	}
}

// Validate reports every out-of-range parameter.
func (p Params) Validate() error {
	var err error
	if !(p.Rho > 0) {
		err = multierr.Append(err, fmt.Errorf("%w: rho must be positive, got %v", ErrInvalidArgument, p.Rho))
	}
	if !(p.Theta > 0) {
		err = multierr.Append(err, fmt.Errorf("%w: theta must be positive, got %v", ErrInvalidArgument, p.Theta))
	}
	if p.Threshold <= 0 {
		err = multierr.Append(err, fmt.Errorf("%w: threshold must be positive, got %d", ErrInvalidArgument, p.Threshold))
	}
	if p.MinLineLength < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: min line length must not be negative, got %d", ErrInvalidArgument, p.MinLineLength))
	}
	if p.MaxGap < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max gap must not be negative, got %d", ErrInvalidArgument, p.MaxGap))
	}
	if p.MaxLines < 0 {
		err = multierr.Append(err, fmt.Errorf("%w: max lines must not be negative, got %d", ErrInvalidArgument, p.MaxLines))
	}
	return err
}

func (p Params) logger() *zerolog.Logger {
	if p.Logger == nil {
		nop := zerolog.Nop()
		return &nop
	}
	return p.Logger
}
