package prediction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainPred "github.com/turtacn/molsketch/internal/domain/prediction"
	"github.com/turtacn/molsketch/internal/infrastructure/database/redis"
	"github.com/turtacn/molsketch/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsketch/internal/testutil"
	"github.com/turtacn/molsketch/pkg/client"
	"github.com/turtacn/molsketch/pkg/errors"
)

type mockPredictor struct {
	mock.Mock
}

func (m *mockPredictor) Predict(ctx context.Context, smiles string) (*domainPred.Result, error) {
	args := m.Called(ctx, smiles)
	if r := args.Get(0); r != nil {
		return r.(*domainPred.Result), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestCache(t *testing.T) (redis.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c, err := redis.NewClient(&redis.RedisConfig{Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return redis.NewRedisCache(c, logging.NewNopLogger(), redis.WithPrefix("test:")), mr
}

func TestPredict_RejectsBlankInput(t *testing.T) {
	p := new(mockPredictor)
	svc := NewService(p)

	_, err := svc.Predict(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePredictionEmptyInput))
	p.AssertNotCalled(t, "Predict", mock.Anything, mock.Anything)
}

func TestPredict_NotConfigured(t *testing.T) {
	svc := NewService(nil)
	_, err := svc.Predict(context.Background(), "CCO")
	assert.True(t, errors.IsCode(err, errors.ErrCodePredictionNotConfigured))
}

func TestPredict_TrimsAndClassifies(t *testing.T) {
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "CCO").Return(&domainPred.Result{
		IC50:                1.25,
		SensitivityScore:    0.8,
		SensitivityCategory: "Moderate Sensitivity",
	}, nil).Once()
	log := testutil.NewMockLogger()
	svc := NewService(p, WithLogger(log))

	res, err := svc.Predict(context.Background(), "  CCO\n")
	require.NoError(t, err)
	assert.Equal(t, "CCO", res.SMILES)
	assert.Equal(t, domainPred.LevelModerate, res.Level)
	assert.InDelta(t, 1.25, res.IC50, 1e-9)
	assert.True(t, log.HasMessage("info", "Prediction completed"))
	p.AssertExpectations(t)
}

func TestPredict_PropagatesPredictorError(t *testing.T) {
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "XX").
		Return(nil, errors.New(errors.ErrCodePredictionRejected, "Prediction failed. Check your SMILES string."))
	log := testutil.NewMockLogger()
	svc := NewService(p, WithLogger(log))

	_, err := svc.Predict(context.Background(), "XX")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodePredictionRejected))
	entry, ok := log.Find("warn", "Prediction failed")
	require.True(t, ok)
	smiles, _ := entry.Field("smiles")
	assert.Equal(t, "XX", smiles)
}

func TestPredict_CachesSuccessfulResults(t *testing.T) {
	cache, mr := newTestCache(t)
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "CCO").Return(&domainPred.Result{
		IC50:                0.4,
		SensitivityCategory: "High Sensitivity",
	}, nil).Once()
	svc := NewService(p, WithCache(cache, time.Minute))

	first, err := svc.Predict(context.Background(), "CCO")
	require.NoError(t, err)
	second, err := svc.Predict(context.Background(), "CCO")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, domainPred.LevelHigh, second.Level)
	assert.True(t, mr.Exists("test:prediction:CCO"))
	p.AssertNumberOfCalls(t, "Predict", 1)
}

func TestPredict_DoesNotCacheFailures(t *testing.T) {
	cache, mr := newTestCache(t)
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "C").
		Return(nil, errors.New(errors.ErrCodePredictionUnreachable, "unreachable")).Once()
	p.On("Predict", mock.Anything, "C").
		Return(&domainPred.Result{SensitivityCategory: "Low"}, nil).Once()
	svc := NewService(p, WithCache(cache, time.Minute))

	_, err := svc.Predict(context.Background(), "C")
	require.Error(t, err)
	assert.False(t, mr.Exists("test:prediction:C"))

	res, err := svc.Predict(context.Background(), "C")
	require.NoError(t, err)
	assert.Equal(t, domainPred.LevelLow, res.Level)
	p.AssertNumberOfCalls(t, "Predict", 2)
}

func TestPredict_CacheOutageFallsBackToPredictor(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "CCO").Return(&domainPred.Result{SensitivityCategory: "High"}, nil)
	svc := NewService(p, WithCache(cache, time.Minute))

	res, err := svc.Predict(context.Background(), "CCO")
	require.NoError(t, err)
	assert.Equal(t, domainPred.LevelHigh, res.Level)
}

func TestPredictExample(t *testing.T) {
	p := new(mockPredictor)
	p.On("Predict", mock.Anything, "CCO").Return(&domainPred.Result{SensitivityCategory: "Low"}, nil)
	svc := NewService(p)

	res, err := svc.PredictExample(context.Background(), "ethanol")
	require.NoError(t, err)
	assert.Equal(t, "CCO", res.SMILES)

	_, err = svc.PredictExample(context.Background(), "unobtainium")
	assert.True(t, errors.IsCode(err, errors.ErrCodePredictionUnknownExample))
}

func TestExamples(t *testing.T) {
	svc := NewService(nil)
	assert.Equal(t, domainPred.Examples(), svc.Examples())
}

func TestClientPredictor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		var req client.PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.SMILES)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(client.PredictResponse{
			Status: client.StatusSuccess,
			Prediction: &client.Prediction{
				IC50:                2.5,
				SensitivityScore:    0.3,
				SensitivityCategory: "Low Sensitivity",
			},
		})
	}))
	defer srv.Close()

	c, err := client.NewClient(srv.URL)
	require.NoError(t, err)
	res, err := NewClientPredictor(c).Predict(context.Background(), "CCO")
	require.NoError(t, err)
	assert.Equal(t, "CCO", res.SMILES)
	assert.InDelta(t, 2.5, res.IC50, 1e-9)
	assert.Equal(t, domainPred.LevelLow, res.Level)
}

//Personal.AI order the ending
