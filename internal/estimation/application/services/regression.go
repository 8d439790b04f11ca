package services

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"gonum.org/v1/gonum/mat"
)

// LinearRegression is an ordinary least squares model with an intercept.
type LinearRegression struct {
	coef []float64
}

// FitLinearRegression solves the least squares problem for samples using a QR
// factorization of the design matrix.
func FitLinearRegression(samples []domain.Sample) (*LinearRegression, error) {
	const cols = 5
	if len(samples) < cols {
		return nil, fmt.Errorf("%w: need %d, have %d", domain.ErrInsufficientData, cols, len(samples))
	}

	x := mat.NewDense(len(samples), cols, nil)
	y := mat.NewVecDense(len(samples), nil)
	for i, s := range samples {
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("sample %d: %w", i, err)
		}
		x.Set(i, 0, 1)
		for j, v := range s.Vector() {
			x.Set(i, j+1, v)
		}
		y.SetVec(i, s.StudyHours)
	}

	var qr mat.QR
	qr.Factorize(x)

	var beta mat.Dense
	if err := qr.SolveTo(&beta, false, y); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("%w: condition number %.3g", domain.ErrSingularDesign, float64(cond))
		}
		return nil, err
	}

	coef := make([]float64, cols)
	for i := range coef {
		coef[i] = beta.At(i, 0)
	}
	return &LinearRegression{coef: coef}, nil
}

func (m *LinearRegression) Name() string { return "linear_regression" }

// Coefficients returns the intercept followed by one weight per feature.
func (m *LinearRegression) Coefficients() []float64 {
	return append([]float64(nil), m.coef...)
}

// Predict returns the raw model output for f.
func (m *LinearRegression) Predict(f domain.Features) float64 {
	pred := m.coef[0]
	for i, v := range f.Vector() {
		pred += m.coef[i+1] * v
	}
	return pred
}

// HistoricalAverage predicts the mean study hours of training rows with the
// same difficulty level, or the overall mean when there are none.
type HistoricalAverage struct {
	byLevel map[int]float64
	overall float64
}

// NewHistoricalAverage summarizes samples.
func NewHistoricalAverage(samples []domain.Sample) *HistoricalAverage {
	sums := make(map[int]float64)
	counts := make(map[int]int)
	var total float64
	for _, s := range samples {
		sums[s.DifficultyLevel] += s.StudyHours
		counts[s.DifficultyLevel]++
		total += s.StudyHours
	}

	h := &HistoricalAverage{byLevel: make(map[int]float64, len(sums))}
	for level, sum := range sums {
		h.byLevel[level] = sum / float64(counts[level])
	}
	if len(samples) > 0 {
		h.overall = total / float64(len(samples))
	}
	return h
}

func (h *HistoricalAverage) Name() string { return "historical_average" }

// Predict ignores every feature but the difficulty level.
func (h *HistoricalAverage) Predict(f domain.Features) float64 {
	if avg, ok := h.byLevel[f.DifficultyLevel]; ok {
		return avg
	}
	return h.overall
}
