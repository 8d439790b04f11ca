package domain

import (
	"errors"
	"math"
	"strings"
)

var (
	ErrInsufficientData = errors.New("not enough training samples")
	ErrSingularDesign   = errors.New("training features are linearly dependent")
	ErrInvalidSample    = errors.New("invalid training sample")
)

// MinPredictedHours is the floor applied to every prediction.
const MinPredictedHours = 1.0

// Features are the inputs of an hours prediction.
type Features struct {
	PastScore       float64
	DifficultyLevel int
	Chapters        int
	DaysLeft        int
}

// Vector returns the features in model column order.
func (f Features) Vector() []float64 {
	return []float64{f.PastScore, float64(f.DifficultyLevel), float64(f.Chapters), float64(f.DaysLeft)}
}

// Sample is one training row.
type Sample struct {
	Features
	StudyHours float64
}

// Validate rejects rows a model cannot learn from.
func (s Sample) Validate() error {
	if s.DifficultyLevel < 0 || s.DifficultyLevel > 2 {
		return ErrInvalidSample
	}
	for _, v := range append(s.Vector(), s.StudyHours) {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidSample
		}
	}
	return nil
}

// Predictor estimates raw study hours.
type Predictor interface {
	Name() string
	Predict(f Features) float64
}

// DifficultyLevel maps easy/medium/hard to 0/1/2. Unknown values count as medium.
func DifficultyLevel(difficulty string) int {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "easy":
		return 0
	case "hard":
		return 2
	default:
		return 1
	}
}

// RoundHours rounds a raw prediction to two decimals with a floor of one hour.
func RoundHours(pred float64) float64 {
	if math.IsNaN(pred) {
		return MinPredictedHours
	}
	return math.Max(MinPredictedHours, math.Round(pred*100)/100)
}

// DefaultSamples is the built-in training table.
func DefaultSamples() []Sample {
	rows := [][5]float64{
		{45, 2, 10, 5, 4},
		{65, 1, 8, 10, 3},
		{80, 0, 5, 20, 2},
		{55, 2, 15, 3, 5},
		{70, 1, 7, 15, 2.5},
		{40, 2, 12, 7, 5},
		{85, 0, 4, 25, 1.5},
		{60, 1, 9, 12, 3.5},
		{75, 0, 6, 18, 2},
		{50, 2, 14, 4, 5.5},
		{90, 0, 3, 30, 1},
		{35, 2, 16, 2, 6},
		{68, 1, 8, 14, 3},
		{72, 1, 7, 16, 2.5},
		{58, 2, 11, 8, 4.5},
	}
	samples := make([]Sample, 0, len(rows))
	for _, r := range rows {
		samples = append(samples, Sample{
			Features: Features{
				PastScore:       r[0],
				DifficultyLevel: int(r[1]),
				Chapters:        int(r[2]),
				DaysLeft:        int(r[3]),
			},
			StudyHours: r[4],
		})
	}
	return samples
}
