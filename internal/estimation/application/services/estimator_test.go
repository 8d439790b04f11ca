package services

import (
	"testing"

	"github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearRegression_DefaultTable(t *testing.T) {
	model, err := FitLinearRegression(domain.DefaultSamples())
	require.NoError(t, err)

	want := []float64{1.9609546622, -0.0260028408, 0.2208244772, 0.2846504925, 0.0214525957}
	got := model.Coefficients()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-6, "coefficient %d", i)
	}

	pred := model.Predict(domain.Features{PastScore: 55, DifficultyLevel: 2, Chapters: 12, DaysLeft: 5})
	assert.InDelta(t, 4.4955162590, pred, 1e-6)
}

func TestFitLinearRegression_Errors(t *testing.T) {
	_, err := FitLinearRegression(domain.DefaultSamples()[:4])
	assert.ErrorIs(t, err, domain.ErrInsufficientData)

	// No sample has any chapters, so that column carries no information.
	var degenerate []domain.Sample
	for i := 0; i < 8; i++ {
		degenerate = append(degenerate, domain.Sample{
			Features:   domain.Features{PastScore: float64(40 + 5*i), DifficultyLevel: i % 3, DaysLeft: i*i + 1},
			StudyHours: float64(i),
		})
	}
	_, err = FitLinearRegression(degenerate)
	assert.ErrorIs(t, err, domain.ErrSingularDesign)

	bad := domain.DefaultSamples()
	bad[3].DifficultyLevel = 7
	_, err = FitLinearRegression(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidSample)
}

func TestHistoricalAverage(t *testing.T) {
	h := NewHistoricalAverage(domain.DefaultSamples())
	assert.InDelta(t, 1.625, h.Predict(domain.Features{DifficultyLevel: 0}), 1e-9)
	assert.InDelta(t, 2.9, h.Predict(domain.Features{DifficultyLevel: 1}), 1e-9)
	assert.InDelta(t, 5.0, h.Predict(domain.Features{DifficultyLevel: 2}), 1e-9)

	easyOnly := NewHistoricalAverage(domain.DefaultSamples()[2:3])
	assert.InDelta(t, 2.0, easyOnly.Predict(domain.Features{DifficultyLevel: 2}), 1e-9)
}

func TestEstimator_PredictHours(t *testing.T) {
	metrics := observability.NewInMemoryMetrics()
	e := NewEstimator(nil, nil, metrics)

	name, rows := e.Model()
	assert.Equal(t, "linear_regression", name)
	assert.Equal(t, 15, rows)

	hours, err := e.PredictHours(55, "hard", 12, 5)
	require.NoError(t, err)
	assert.Equal(t, 4.5, hours)

	hours, err = e.PredictHours(90, "easy", 3, 30)
	require.NoError(t, err)
	assert.Equal(t, 1.12, hours)

	hours, err = e.PredictHours(100, "easy", 0, 60)
	require.NoError(t, err)
	assert.Equal(t, domain.MinPredictedHours, hours)

	assert.Len(t, metrics.Observations(observability.MetricEstimatedHours, observability.T("model", "linear_regression")), 3)
}

func TestEstimator_FallsBackToHistoricalAverage(t *testing.T) {
	e := NewEstimator(domain.DefaultSamples()[:3], nil, nil)

	name, rows := e.Model()
	assert.Equal(t, "historical_average", name)
	assert.Equal(t, 3, rows)

	// Rows 0..2 hold one hard, one medium and one easy sample.
	hours, err := e.PredictHours(10, "hard", 99, 1)
	require.NoError(t, err)
	assert.Equal(t, 4.0, hours)

	assert.Equal(t, "linear_regression", e.Train(nil))
}
