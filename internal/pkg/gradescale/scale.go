// Package gradescale converts numeric course scores into letter grades and
// grade points using an ordered breakpoint table. The table is fixed at call
// time; institutions override it through configuration, never at runtime.
package gradescale

import (
	"fmt"
	"math"

	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// Grade is the letter/point pair a numeric score maps to.
type Grade struct {
	Letter string  `json:"letter"`
	Point  float64 `json:"gpaPoint"`
}

// Band is a single breakpoint: scores >= Min (and below the next higher band)
// receive Letter/Point.
type Band struct {
	Min    float64 `yaml:"min" json:"min"`
	Letter string  `yaml:"letter" json:"letter"`
	Point  float64 `yaml:"point" json:"point"`
}

// Scale is an immutable, descending-ordered breakpoint table.
type Scale struct {
	bands []Band
}

// Default returns the institutional default scale.
func Default() Scale {
	s, err := New([]Band{
		{Min: 85, Letter: "A", Point: 4.0},
		{Min: 80, Letter: "A-", Point: 3.7},
		{Min: 75, Letter: "B+", Point: 3.3},
		{Min: 70, Letter: "B", Point: 3.0},
		{Min: 65, Letter: "B-", Point: 2.7},
		{Min: 60, Letter: "C+", Point: 2.3},
		{Min: 55, Letter: "C", Point: 2.0},
		{Min: 40, Letter: "D", Point: 1.0},
		{Min: 0, Letter: "E", Point: 0.0},
	})
	if err != nil {
		// The default table is a constant; a validation failure here is a bug.
		panic(err)
	}
	return s
}

// New builds a Scale from bands ordered by descending Min. The lowest band
// must start at 0 so every valid score maps to a grade.
func New(bands []Band) (Scale, error) {
	if len(bands) == 0 {
		return Scale{}, fmt.Errorf("grade scale requires at least one band")
	}

	for i, b := range bands {
		if b.Min < 0 || b.Min > 100 {
			return Scale{}, fmt.Errorf("band %q: threshold %.2f outside [0,100]", b.Letter, b.Min)
		}
		if b.Point < 0 {
			return Scale{}, fmt.Errorf("band %q: negative grade point %.2f", b.Letter, b.Point)
		}
		if b.Letter == "" {
			return Scale{}, fmt.Errorf("band at threshold %.2f: empty letter", b.Min)
		}
		if i > 0 {
			prev := bands[i-1]
			if b.Min >= prev.Min {
				return Scale{}, fmt.Errorf("band %q: threshold %.2f not below previous band %q (%.2f)", b.Letter, b.Min, prev.Letter, prev.Min)
			}
			if b.Point > prev.Point {
				return Scale{}, fmt.Errorf("band %q: grade point %.2f exceeds higher band %q (%.2f)", b.Letter, b.Point, prev.Letter, prev.Point)
			}
		}
	}

	if last := bands[len(bands)-1]; last.Min != 0 {
		return Scale{}, fmt.Errorf("lowest band %q must start at 0, got %.2f", last.Letter, last.Min)
	}

	out := make([]Band, len(bands))
	copy(out, bands)
	return Scale{bands: out}, nil
}

// Bands returns a copy of the breakpoint table.
func (s Scale) Bands() []Band {
	out := make([]Band, len(s.bands))
	copy(out, s.bands)
	return out
}

// Convert maps a score in [0,100] to its grade. Scores outside the range or
// non-finite values are rejected.
func (s Scale) Convert(score float64) (Grade, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		return Grade{}, fmt.Errorf("%w: got %v", apperrors.ErrInvalidScore, score)
	}

	for _, b := range s.bands {
		if score >= b.Min {
			return Grade{Letter: b.Letter, Point: b.Point}, nil
		}
	}

	// Unreachable while the lowest band starts at 0.
	return Grade{}, fmt.Errorf("%w: no band matches %v", apperrors.ErrInvalidScore, score)
}
