// Package recipe describes an ordered list of intensity transforms in YAML
// and applies it to a raster.
//
//	steps:
//	  - op: negative
//	  - op: gamma
//	    c: 1
//	    y: 0.5
//	  - op: equalize
package recipe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jpfielding/pgm.go/pkg/pgm"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownStep  = errors.New("unknown recipe step")
	ErrMissingParam = errors.New("missing recipe parameter")
)

// Operation names accepted in Step.Op
const (
	OpThreshold = "threshold"
	OpNegative  = "negative"
	OpLog       = "log"
	OpGamma     = "gamma"
	OpEqualize  = "equalize"
	OpReset     = "reset"
)

// Ops lists every accepted operation
var Ops = []string{OpThreshold, OpNegative, OpLog, OpGamma, OpEqualize, OpReset}

// Step is one transform. Parameters that an op does not use are ignored.
type Step struct {
	Op string   `yaml:"op"`
	K  *int     `yaml:"k,omitempty"`
	C  *float64 `yaml:"c,omitempty"`
	Y  *float64 `yaml:"y,omitempty"`
}

// Recipe is an ordered list of steps
type Recipe struct {
	Steps []Step `yaml:"steps"`
}

// Load reads and validates a recipe file
func Load(path string) (*Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recipe: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes and validates a recipe. Unknown keys are rejected.
func Parse(r io.Reader) (*Recipe, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var rc Recipe
	if err := dec.Decode(&rc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding recipe: %w", err)
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}
	return &rc, nil
}

// Validate checks every step before any pixel is touched.
func (rc *Recipe) Validate() error {
	for i, s := range rc.Steps {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (s Step) Validate() error {
	switch s.Op {
	case OpNegative, OpLog, OpEqualize, OpReset:
		return nil
	case OpThreshold:
		if s.K == nil {
			return fmt.Errorf("%w: %s needs k", ErrMissingParam, s.Op)
		}
		return nil
	case OpGamma:
		if s.Y == nil {
			return fmt.Errorf("%w: %s needs y", ErrMissingParam, s.Op)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownStep, s.Op)
}

// Apply runs the steps in order against img. It stops at the first failing
// step; earlier steps stay applied.
func (rc *Recipe) Apply(ctx context.Context, img *pgm.Image) error {
	if err := rc.Validate(); err != nil {
		return err
	}
	for i, s := range rc.Steps {
		if err := s.Apply(img); err != nil {
			return fmt.Errorf("step %d (%s): %w", i, s.Op, err)
		}
		slog.DebugContext(ctx, "Applied step", "index", i, "op", s.Op)
	}
	return nil
}

// Apply runs a single step against img.
func (s Step) Apply(img *pgm.Image) error {
	switch s.Op {
	case OpThreshold:
		return pgm.Threshold(img, *s.K)
	case OpNegative:
		return pgm.Negative(img)
	case OpLog:
		return pgm.Logarithmic(img, s.scale())
	case OpGamma:
		return pgm.Gamma(img, s.scale(), *s.Y)
	case OpEqualize:
		_, err := pgm.Equalize(img)
		return err
	case OpReset:
		return img.Reset()
	}
	return fmt.Errorf("%w: %q", ErrUnknownStep, s.Op)
}

// scale returns C, defaulting to 1.
func (s Step) scale() float64 {
	if s.C == nil {
		return 1
	}
	return *s.C
}

func (s Step) String() string {
	switch {
	case s.Op == OpThreshold && s.K != nil:
		return fmt.Sprintf("%s(k=%d)", s.Op, *s.K)
	case s.Op == OpLog:
		return fmt.Sprintf("%s(c=%g)", s.Op, s.scale())
	case s.Op == OpGamma && s.Y != nil:
		return fmt.Sprintf("%s(c=%g, y=%g)", s.Op, s.scale(), *s.Y)
	}
	return s.Op
}
