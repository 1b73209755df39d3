// Package training runs the load, clean, split, fit, evaluate and persist
// flow for one or more algorithms.
package training

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"bankloan/internal/artifact"
	"bankloan/internal/config"
	"bankloan/internal/data"
	"bankloan/internal/evaluate"
	"bankloan/internal/metrics"
	"bankloan/internal/pipeline"
)

type Result struct {
	RunID        string
	Algorithm    string
	ArtifactPath string
	Pipeline     *pipeline.Pipeline
	Report       *evaluate.Report
	ROCAUC       float64
	PRAUC        float64
	TrainRows    int
	TestRows     int
}

type Runner struct {
	cfg    config.Config
	store  *artifact.Store
	sink   metrics.Sink
	logger *zap.Logger

	split *data.Split
	now   func() time.Time
	newID func() string
}

func NewRunner(cfg config.Config, store *artifact.Store, sink metrics.Sink, logger *zap.Logger) *Runner {
	if sink == nil {
		sink = metrics.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		cfg:    cfg,
		store:  store,
		sink:   sink,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
		newID:  func() string { return uuid.NewString() },
	}
}

// Prepare loads, cleans and splits the dataset once; later runs reuse the
// partition.
func (r *Runner) Prepare() (*data.Split, error) {
	if r.split != nil {
		return r.split, nil
	}
	d := r.cfg.Data
	df, err := data.Load(d.Path, data.LoadOptions{Sheet: d.Sheet})
	if err != nil {
		return nil, err
	}
	r.logger.Info("dataset loaded", zap.String("path", d.Path), zap.Int("rows", df.Nrow()), zap.Int("cols", df.Ncol()))

	cleaner := data.Cleaner{
		DropColumns:       d.DropColumns,
		LabelColumn:       d.LabelColumn,
		PositiveLabel:     d.PositiveLabel,
		AllowMissingDrops: d.AllowMissingDrops,
	}
	X, y, err := cleaner.Clean(df)
	if err != nil {
		return nil, err
	}
	r.logger.Info("dataset cleaned", zap.Strings("features", X.Columns), zap.Int("rows", X.Len()))

	s, err := data.TrainTestSplit(X, y, data.SplitConfig{
		TestRatio: r.cfg.Split.TestRatio,
		Seed:      r.cfg.Params.Seed,
		Stratify:  r.cfg.Split.Stratify,
	})
	if err != nil {
		return nil, err
	}
	r.logger.Info("dataset split", zap.Int("train", s.XTrain.Len()), zap.Int("test", s.XTest.Len()))
	r.split = s
	return s, nil
}

// Run trains id, evaluates it on the held-out rows, saves the artifact under
// id and records the report. A failing sink is logged and does not fail the run.
func (r *Runner) Run(ctx context.Context, id string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := r.Prepare()
	if err != nil {
		return nil, err
	}

	start := r.now()
	p, err := pipeline.Train(id, s.XTrain, s.YTrain, r.cfg.Params)
	if err != nil {
		return nil, err
	}
	r.logger.Info("model trained",
		zap.String("algorithm", id),
		zap.String("model", p.Name()),
		zap.Duration("elapsed", r.now().Sub(start)),
	)

	report, err := evaluate.ClassificationReport(p, s.XTest, s.YTest)
	if err != nil {
		return nil, fmt.Errorf("evaluate %s: %w", id, err)
	}
	proba, err := p.PredictProba(s.XTest.Rows)
	if err != nil {
		return nil, err
	}
	res := &Result{
		RunID:     r.newID(),
		Algorithm: id,
		Pipeline:  p,
		Report:    report,
		ROCAUC:    evaluate.ROCAUC(s.YTest, proba),
		PRAUC:     evaluate.PRAUC(s.YTest, proba),
		TrainRows: s.XTrain.Len(),
		TestRows:  s.XTest.Len(),
	}
	pos, _ := report.Class(1)
	r.logger.Info("holdout metrics",
		zap.String("algorithm", id),
		zap.Float64("accuracy", report.Accuracy),
		zap.Float64("f1", pos.F1),
		zap.Float64("precision", pos.Precision),
		zap.Float64("recall", pos.Recall),
		zap.Float64("roc_auc", res.ROCAUC),
		zap.Float64("pr_auc", res.PRAUC),
	)

	if res.ArtifactPath, err = r.store.Save(id, p); err != nil {
		return nil, err
	}
	r.logger.Info("model saved", zap.String("path", res.ArtifactPath))

	rec := metrics.Record{RunID: res.RunID, Algorithm: id, Timestamp: r.now(), Report: report}
	if err := r.sink.Write(ctx, rec); err != nil {
		r.logger.Warn("metrics not recorded", zap.String("run_id", res.RunID), zap.Error(err))
	}
	return res, nil
}

// RunAll runs every id in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context, ids []string) ([]*Result, error) {
	out := make([]*Result, 0, len(ids))
	for _, id := range ids {
		res, err := r.Run(ctx, id)
		if err != nil {
			return out, fmt.Errorf("run %s: %w", id, err)
		}
		out = append(out, res)
	}
	return out, nil
}
