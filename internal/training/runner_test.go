package training

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"bankloan/internal/artifact"
	"bankloan/internal/config"
	"bankloan/internal/data"
	"bankloan/internal/evaluate"
	"bankloan/internal/metrics"
	"bankloan/internal/metrics/mocks"
	"bankloan/internal/pipeline"
)

func testConfig(t *testing.T, rows []data.Applicant) config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "bankloan.csv")
	require.NoError(t, data.WriteApplicants(path, rows))

	cfg := config.Default()
	cfg.Data.Path = path
	cfg.Models.Dir = filepath.Join(dir, "models")
	cfg.Params.Estimators = 15
	cfg.Params.Epochs = 200
	return cfg
}

func fourApplicants() []data.Applicant {
	return []data.Applicant{
		{ID: 30, Age: 55, Experience: 3, Income: 49, ZIPCode: 91107, Family: 4, CCAvg: 1.6, Education: 2, SecuritiesAccount: 1, CDAccount: 1},
		{ID: 40, Age: 38, Experience: 6, Income: 81, ZIPCode: 90089, Family: 3, CCAvg: 1.5, Education: 1, Mortgage: 155, PersonalLoan: 1, SecuritiesAccount: 1, Online: 1, CreditCard: 1},
		{ID: 50, Age: 40, Experience: 7, Income: 63, ZIPCode: 94720, Family: 1, CCAvg: 2.7, Education: 3, Mortgage: 104, Online: 1},
		{ID: 60, Age: 29, Experience: 4, Income: 120, ZIPCode: 94112, Family: 2, CCAvg: 3.1, Education: 2, PersonalLoan: 1, CDAccount: 1, Online: 1},
	}
}

func TestRunFourRowFixture(t *testing.T) {
	cfg := testConfig(t, fourApplicants())
	r := NewRunner(cfg, artifact.NewStore(cfg.Models.Dir), nil, nil)

	s, err := r.Prepare()
	require.NoError(t, err)
	assert.Equal(t, 3, s.XTrain.Len())
	assert.Equal(t, 1, s.XTest.Len())
	assert.Len(t, s.XTrain.Columns, 11)

	res, err := r.Run(context.Background(), "xgboost")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cfg.Models.Dir, "xgboost_model.gob"), res.ArtifactPath)
	assert.Equal(t, pipeline.GradientBoostedTrees, res.Pipeline.Algorithm)
	assert.True(t, res.Report.Has(evaluate.KeyAccuracy))
	assert.NotEmpty(t, res.RunID)

	back, err := artifact.Load(res.ArtifactPath)
	require.NoError(t, err)
	assert.Equal(t, res.Pipeline.Features, back.Features)
}

func TestRunRecordsMetrics(t *testing.T) {
	cfg := testConfig(t, data.SyntheticApplicants(200, 0.9, 3))
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)

	var got metrics.Record
	sink.EXPECT().Write(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, rec metrics.Record) error {
		got = rec
		return nil
	})

	r := NewRunner(cfg, artifact.NewStore(cfg.Models.Dir), sink, nil)
	res, err := r.Run(context.Background(), "random-forest")
	require.NoError(t, err)

	assert.Equal(t, res.RunID, got.RunID)
	assert.Equal(t, "random-forest", got.Algorithm)
	assert.Same(t, res.Report, got.Report)
	assert.Equal(t, 160, res.TrainRows)
	assert.Equal(t, 40, res.TestRows)
	_, err = os.Stat(res.ArtifactPath)
	assert.NoError(t, err)
}

func TestRunSurvivesSinkFailure(t *testing.T) {
	cfg := testConfig(t, data.SyntheticApplicants(120, 0.9, 5))
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockSink(ctrl)
	sink.EXPECT().Write(gomock.Any(), gomock.Any()).Return(errors.New("db down")).Times(2)

	core, logs := observer.New(zap.InfoLevel)
	r := NewRunner(cfg, artifact.NewStore(cfg.Models.Dir), sink, zap.New(core))

	results, err := r.RunAll(context.Background(), []string{"lr", "knn"})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, logs.FilterMessage("metrics not recorded").Len())
	assert.Equal(t, 1, logs.FilterMessage("dataset split").Len())
}

func TestRunFailures(t *testing.T) {
	cfg := testConfig(t, fourApplicants())

	r := NewRunner(cfg, artifact.NewStore(cfg.Models.Dir), nil, nil)
	_, err := r.Run(context.Background(), "svm")
	assert.ErrorIs(t, err, pipeline.ErrUnsupportedAlgorithm)

	results, err := r.RunAll(context.Background(), []string{"rf", "svm", "lr"})
	assert.ErrorIs(t, err, pipeline.ErrUnsupportedAlgorithm)
	assert.Len(t, results, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Run(ctx, "rf")
	assert.ErrorIs(t, err, context.Canceled)

	missing := cfg
	missing.Data.Path = filepath.Join(t.TempDir(), "missing.csv")
	_, err = NewRunner(missing, artifact.NewStore(cfg.Models.Dir), nil, nil).Run(context.Background(), "rf")
	assert.ErrorIs(t, err, data.ErrFileAccess)

	bad := cfg
	bad.Data.LabelColumn = "Approved"
	_, err = NewRunner(bad, artifact.NewStore(cfg.Models.Dir), nil, nil).Run(context.Background(), "rf")
	assert.ErrorIs(t, err, data.ErrSchema)
}
