package bench

import (
	"errors"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ajroetker/lanebench/lane"
)

// Suite is a benchmark selection loaded from YAML:
//
//	runs: 5
//	engine: parallel
//	workers: 4
//	benchmarks:
//	  - name: nbody
//	  - name: mandelbrot
//	    variants: [scalar, intrin]
//
// An empty benchmark list selects every registered benchmark; an empty
// variant list selects every variant of that benchmark.
type Suite struct {
	Runs       int              `yaml:"runs"`
	Engine     string           `yaml:"engine"`
	Workers    int              `yaml:"workers"`
	Benchmarks []SuiteBenchmark `yaml:"benchmarks"`
}

// SuiteBenchmark selects variants of one benchmark.
type SuiteBenchmark struct {
	Name     string   `yaml:"name"`
	Variants []string `yaml:"variants,omitempty"`
}

// ParseSuite decodes and validates a suite document.
func ParseSuite(data []byte) (*Suite, error) {
	var s Suite
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSuite, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// LoadSuite reads and validates the suite file at path.
func LoadSuite(path string) (*Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("bench: read suite: %w", err)
	}
	return ParseSuite(data)
}

// Validate reports every problem of the suite, each wrapping
// ErrInvalidSuite.
func (s *Suite) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidSuite, fmt.Sprintf(format, args...)))
	}

	if s.Runs < 0 {
		invalid("runs must not be negative, got %d", s.Runs)
	}
	if s.Workers < 0 {
		invalid("workers must not be negative, got %d", s.Workers)
	}
	if s.Engine != "" && !slices.Contains(lane.Engines(), s.Engine) {
		invalid("unknown engine %q (have %v)", s.Engine, lane.Engines())
	}

	seen := make(map[string]bool)
	for _, b := range s.Benchmarks {
		if seen[b.Name] {
			invalid("benchmark %q listed twice", b.Name)
		}
		seen[b.Name] = true

		for _, v := range b.Variants {
			if _, err := Lookup(b.Name, v); err != nil {
				invalid("%v", err)
			}
		}
		if len(b.Variants) == 0 && len(Variants(b.Name)) == 0 {
			invalid("%v: %q", ErrUnknownBenchmark, b.Name)
		}
	}
	return errors.Join(errs...)
}

// Entries resolves the suite selection against the registry.
func (s *Suite) Entries() ([]Entry, error) {
	if len(s.Benchmarks) == 0 {
		return Entries(), nil
	}
	var out []Entry
	for _, b := range s.Benchmarks {
		variants := b.Variants
		if len(variants) == 0 {
			variants = Variants(b.Name)
			if len(variants) == 0 {
				return nil, fmt.Errorf("%w: %q", ErrUnknownBenchmark, b.Name)
			}
		}
		for _, v := range variants {
			e, err := Lookup(b.Name, v)
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
	}
	return out, nil
}

// NewEngine builds the engine the suite names.
func (s *Suite) NewEngine() (lane.Engine, error) {
	return lane.NewEngine(s.Engine, s.Workers)
}

// Options returns the runner options the suite sets.
func (s *Suite) Options() []Option {
	return []Option{WithRuns(s.Runs)}
}
