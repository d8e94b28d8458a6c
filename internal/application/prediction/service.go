// Package prediction is the drug-sensitivity prediction use case: input
// validation, an optional result cache in front of the remote predictor,
// and metrics.
package prediction

import (
	"context"
	"time"

	domainPred "github.com/turtacn/molsketch/internal/domain/prediction"
	"github.com/turtacn/molsketch/internal/infrastructure/database/redis"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/molsketch/pkg/client"
	"github.com/turtacn/molsketch/pkg/errors"
)

// Service defines the prediction operations offered to the interface layer.
type Service interface {
	Predict(ctx context.Context, smiles string) (*domainPred.Result, error)
	PredictExample(ctx context.Context, name string) (*domainPred.Result, error)
	Examples() []domainPred.Example
}

type serviceImpl struct {
	predictor domainPred.Predictor
	cache     redis.Cache
	cacheTTL  time.Duration
	metrics   *prometheus.AppMetrics
	logger    logging.Logger
}

// Option customizes the service.
type Option func(*serviceImpl)

// WithCache caches successful predictions per SMILES string for ttl.
func WithCache(cache redis.Cache, ttl time.Duration) Option {
	return func(s *serviceImpl) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

func WithMetrics(m *prometheus.AppMetrics) Option {
	return func(s *serviceImpl) { s.metrics = m }
}

func WithLogger(l logging.Logger) Option {
	return func(s *serviceImpl) { s.logger = l }
}

// NewService creates the service. A nil predictor yields a service whose
// predictions fail with ErrCodePredictionNotConfigured.
func NewService(predictor domainPred.Predictor, opts ...Option) Service {
	s := &serviceImpl{
		predictor: predictor,
		logger:    logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("prediction")
	return s
}

func (s *serviceImpl) Predict(ctx context.Context, smiles string) (*domainPred.Result, error) {
	input, err := domainPred.ValidateSMILES(smiles)
	if err != nil {
		return nil, err
	}
	if s.predictor == nil {
		return nil, errors.New(errors.ErrCodePredictionNotConfigured, "no prediction service is configured")
	}

	start := time.Now()
	result, err := s.lookup(ctx, input)
	prometheus.RecordPrediction(s.metrics, time.Since(start), err)

	log := s.logger.WithContext(ctx)
	if err != nil {
		log.Warn("Prediction failed",
			logging.String("smiles", input),
			logging.String("code", string(errors.GetCode(err))),
			logging.Err(err))
		return nil, err
	}

	result.SMILES = input
	result.Level = domainPred.ClassifySensitivity(result.SensitivityCategory)
	log.Info("Prediction completed",
		logging.String("smiles", input),
		logging.Float64("ic50", result.IC50),
		logging.String("level", string(result.Level)),
		logging.Duration("elapsed", time.Since(start)))
	return result, nil
}

func (s *serviceImpl) lookup(ctx context.Context, smiles string) (*domainPred.Result, error) {
	if s.cache == nil {
		return s.predictor.Predict(ctx, smiles)
	}
	var result domainPred.Result
	err := s.cache.GetOrSet(ctx, cacheKey(smiles), &result, s.cacheTTL, func(ctx context.Context) (interface{}, error) {
		return s.predictor.Predict(ctx, smiles)
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func cacheKey(smiles string) string {
	return "prediction:" + smiles
}

func (s *serviceImpl) PredictExample(ctx context.Context, name string) (*domainPred.Result, error) {
	ex, err := domainPred.LookupExample(name)
	if err != nil {
		return nil, err
	}
	return s.Predict(ctx, ex.SMILES)
}

func (s *serviceImpl) Examples() []domainPred.Example {
	return domainPred.Examples()
}

// ClientPredictor adapts the SDK client to the Predictor port.
type ClientPredictor struct {
	client *client.Client
}

func NewClientPredictor(c *client.Client) *ClientPredictor {
	return &ClientPredictor{client: c}
}

func (p *ClientPredictor) Predict(ctx context.Context, smiles string) (*domainPred.Result, error) {
	pred, err := p.client.Predictions().Predict(ctx, smiles)
	if err != nil {
		return nil, err
	}
	return &domainPred.Result{
		SMILES:              smiles,
		IC50:                pred.IC50,
		SensitivityScore:    pred.SensitivityScore,
		SensitivityCategory: pred.SensitivityCategory,
		Level:               domainPred.ClassifySensitivity(pred.SensitivityCategory),
	}, nil
}

//Personal.AI order the ending
