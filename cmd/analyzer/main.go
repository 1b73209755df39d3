package main

import (
	"flag"
	"fmt"

	"go.uber.org/zap"

	"bankloan/internal/config"
	"bankloan/internal/data"
	"bankloan/internal/evaluate"
	"bankloan/internal/pipeline"
	"bankloan/internal/training"
	"bankloan/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	algo := flag.String("algo", "", "Algorithm, overrides config")
	dataPath := flag.String("data", "", "Dataset path, overrides config")
	points := flag.Int("points", 0, "Number of curve points, overrides config")
	outCSV := flag.String("out_csv", "", "CSV output, overrides config")
	outPNG := flag.String("out_img", "", "PNG output, overrides config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	logger := utils.MustLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}
	a := cfg.Analyzer
	if *algo != "" {
		a.Algorithm = *algo
	}
	if *dataPath != "" {
		cfg.Data.Path = *dataPath
	}
	if *points > 0 {
		a.Points = *points
	}
	if *outCSV != "" {
		a.CSV = *outCSV
	}
	if *outPNG != "" {
		a.PNG = *outPNG
	}

	s, err := training.NewRunner(cfg, nil, nil, logger).Prepare()
	if err != nil {
		logger.Fatal("prepare dataset", zap.Error(err))
	}
	fit := func(X data.Features, y data.Labels) (evaluate.Classifier, error) {
		return pipeline.Train(a.Algorithm, X, y, cfg.Params)
	}
	sizes := evaluate.CurveSizes(s.XTrain.Len(), a.Points, a.MinSize, a.Log)
	pts, err := evaluate.LearningCurve(fit, s, sizes)
	if err != nil {
		logger.Fatal("learning curve", zap.Error(err))
	}
	for _, p := range pts {
		fmt.Printf("%s | size=%d | train=%.3f | test=%.3f | test_f1=%.3f\n", a.Algorithm, p.Size, p.TrainAcc, p.TestAcc, p.TestF1)
	}

	if err := evaluate.WriteCurveCSV(a.CSV, pts); err != nil {
		logger.Error("write curve csv", zap.Error(err))
	} else {
		logger.Info("curve saved", zap.String("path", a.CSV))
	}
	if err := evaluate.PlotLearningCurve(a.PNG, pts); err != nil {
		logger.Error("plot curve", zap.Error(err))
	} else {
		logger.Info("plot saved", zap.String("path", a.PNG))
	}
}
