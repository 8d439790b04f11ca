package services

import (
	"errors"
	"log/slog"
	"sync"

	"github.com/felixgeelhaar/studyplanner/internal/estimation/domain"
	"github.com/felixgeelhaar/studyplanner/pkg/observability"
)

// Estimator serves hours predictions from the best model the training data supports.
type Estimator struct {
	mu        sync.RWMutex
	predictor domain.Predictor
	samples   int
	logger    *slog.Logger
	metrics   observability.Metrics
}

// NewEstimator trains on samples, or on the built-in table when samples is empty.
func NewEstimator(samples []domain.Sample, logger *slog.Logger, metrics observability.Metrics) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	e := &Estimator{logger: logger, metrics: metrics}
	e.Train(samples)
	return e
}

// Train replaces the model. A regression is used when it can be fitted,
// otherwise the historical average of samples.
func (e *Estimator) Train(samples []domain.Sample) string {
	if len(samples) == 0 {
		samples = domain.DefaultSamples()
	}

	var predictor domain.Predictor
	model, err := FitLinearRegression(samples)
	switch {
	case err == nil:
		predictor = model
	case errors.Is(err, domain.ErrInsufficientData), errors.Is(err, domain.ErrSingularDesign), errors.Is(err, domain.ErrInvalidSample):
		e.logger.Warn("regression unavailable, using historical average", "error", err, "samples", len(samples))
		predictor = NewHistoricalAverage(samples)
	default:
		e.logger.Error("regression failed, using historical average", "error", err)
		predictor = NewHistoricalAverage(samples)
	}

	e.mu.Lock()
	e.predictor = predictor
	e.samples = len(samples)
	e.mu.Unlock()

	e.logger.Info("estimator trained", "model", predictor.Name(), "samples", len(samples))
	return predictor.Name()
}

// Model returns the active model name and the number of rows it was trained on.
func (e *Estimator) Model() (string, int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.predictor.Name(), e.samples
}

// Predict returns the rounded hours for f.
func (e *Estimator) Predict(f domain.Features) float64 {
	e.mu.RLock()
	p := e.predictor
	e.mu.RUnlock()

	hours := domain.RoundHours(p.Predict(f))
	e.metrics.Histogram(observability.MetricEstimatedHours, hours, observability.T("model", p.Name()))
	return hours
}

// PredictHours predicts hours from raw subject fields.
func (e *Estimator) PredictHours(pastScore float64, difficulty string, chapters, daysLeft int) (float64, error) {
	return e.Predict(domain.Features{
		PastScore:       pastScore,
		DifficultyLevel: domain.DifficultyLevel(difficulty),
		Chapters:        chapters,
		DaysLeft:        daysLeft,
	}), nil
}
