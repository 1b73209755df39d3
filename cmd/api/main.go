package main

import (
	"flag"
	"path/filepath"

	"go.uber.org/zap"

	"bankloan/internal/api"
	"bankloan/internal/artifact"
	"bankloan/internal/config"
	"bankloan/pkg/utils"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	algo := flag.String("algo", "xgboost", "Artifact to serve when MODEL_PATH is unset")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	logger := utils.MustLogger(cfg.Log.Level, cfg.Log.File)
	defer logger.Sync()
	if err != nil {
		logger.Fatal("load config", zap.Error(err))
	}

	path := cfg.Server.ModelPath
	if path == "" {
		path = artifact.NewStore(cfg.Models.Dir).Path(*algo)
	}
	p, err := artifact.Load(path)
	if err != nil {
		logger.Fatal("load model", zap.String("path", path), zap.Error(err))
	}
	logger.Info("model loaded", zap.String("path", filepath.Clean(path)), zap.String("model", p.Name()))

	srv := api.NewServer(p, api.Options{APIKey: cfg.Server.APIKey, Threshold: cfg.Server.Threshold}, logger)
	if err := srv.Router().Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
