package gradescale

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

func TestDefaultScaleConvert(t *testing.T) {
	scale := Default()

	tests := []struct {
		score  float64
		letter string
		point  float64
	}{
		{100, "A", 4.0},
		{85, "A", 4.0},
		{84.99, "A-", 3.7},
		{80, "A-", 3.7},
		{79.99, "B+", 3.3},
		{75, "B+", 3.3},
		{70, "B", 3.0},
		{65, "B-", 2.7},
		{60, "C+", 2.3},
		{55, "C", 2.0},
		{54.99, "D", 1.0},
		{40, "D", 1.0},
		{39.99, "E", 0.0},
		{0, "E", 0.0},
	}

	for _, tt := range tests {
		grade, err := scale.Convert(tt.score)
		require.NoError(t, err, "score %v", tt.score)
		assert.Equal(t, tt.letter, grade.Letter, "score %v", tt.score)
		assert.Equal(t, tt.point, grade.Point, "score %v", tt.score)
	}
}

func TestConvertRejectsOutOfRange(t *testing.T) {
	scale := Default()

	for _, score := range []float64{-0.01, 100.01, -50, 1000, math.NaN(), math.Inf(1), math.Inf(-1)} {
		_, err := scale.Convert(score)
		require.Error(t, err, "score %v", score)
		assert.True(t, errors.Is(err, apperrors.ErrInvalidScore), "score %v", score)
	}
}

func TestNewRejectsMalformedTables(t *testing.T) {
	tests := []struct {
		name  string
		bands []Band
	}{
		{"empty", nil},
		{"threshold above 100", []Band{{Min: 101, Letter: "A", Point: 4}, {Min: 0, Letter: "E", Point: 0}}},
		{"not descending", []Band{{Min: 50, Letter: "C", Point: 2}, {Min: 80, Letter: "A", Point: 4}}},
		{"point increases downward", []Band{{Min: 80, Letter: "A", Point: 3}, {Min: 0, Letter: "E", Point: 4}}},
		{"lowest band not zero", []Band{{Min: 85, Letter: "A", Point: 4}, {Min: 40, Letter: "D", Point: 1}}},
		{"empty letter", []Band{{Min: 85, Letter: "", Point: 4}, {Min: 0, Letter: "E", Point: 0}}},
		{"negative point", []Band{{Min: 85, Letter: "A", Point: 4}, {Min: 0, Letter: "E", Point: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.bands)
			assert.Error(t, err)
		})
	}
}

func TestCustomScale(t *testing.T) {
	scale, err := New([]Band{
		{Min: 50, Letter: "PASS", Point: 4.0},
		{Min: 0, Letter: "FAIL", Point: 0.0},
	})
	require.NoError(t, err)

	grade, err := scale.Convert(50)
	require.NoError(t, err)
	assert.Equal(t, "PASS", grade.Letter)

	grade, err = scale.Convert(49.99)
	require.NoError(t, err)
	assert.Equal(t, "FAIL", grade.Letter)
}

func TestBandsReturnsCopy(t *testing.T) {
	scale := Default()
	bands := scale.Bands()
	bands[0].Letter = "Z"

	grade, err := scale.Convert(90)
	require.NoError(t, err)
	assert.Equal(t, "A", grade.Letter)
}
