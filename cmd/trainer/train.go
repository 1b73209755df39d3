package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"bankloan/internal/artifact"
	"bankloan/internal/metrics"
	"bankloan/internal/training"
)

func (c *cli) newTrainCommand() *cobra.Command {
	var (
		dataPath  string
		modelsDir string
		stratify  bool
	)
	cmd := &cobra.Command{
		Use:   "train [algorithm...]",
		Short: "Train, evaluate and save one pipeline per algorithm",
		Example: `  trainer train
  trainer train xgboost rf --data data/bankloan.xlsx
  trainer train -c config.yaml --stratify`,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() { _ = c.logger.Sync() }()
			if dataPath != "" {
				c.cfg.Data.Path = dataPath
			}
			if modelsDir != "" {
				c.cfg.Models.Dir = modelsDir
			}
			if cmd.Flags().Changed("stratify") {
				c.cfg.Split.Stratify = stratify
			}
			algos := c.cfg.Models.Algorithms
			if len(args) > 0 {
				algos = args
			}

			sink, err := metrics.Open(cmd.Context(), c.cfg.Metrics)
			if err != nil {
				c.logger.Warn("metrics sink unavailable", zap.Error(err))
				sink = metrics.Nop{}
			}
			defer multierr.AppendInvoke(&err, multierr.Close(sink))

			r := training.NewRunner(c.cfg, artifact.NewStore(c.cfg.Models.Dir), sink, c.logger)
			results, err := r.RunAll(cmd.Context(), algos)
			for _, res := range results {
				pos, _ := res.Report.Class(1)
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s acc=%.4f f1=%.4f roc_auc=%.4f -> %s\n",
					res.Algorithm, res.Report.Accuracy, pos.F1, res.ROCAUC, res.ArtifactPath)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset path (.csv or .xlsx), overrides config")
	cmd.Flags().StringVar(&modelsDir, "models-dir", "", "Artifact directory, overrides config")
	cmd.Flags().BoolVar(&stratify, "stratify", false, "Stratify the train/test split by label")
	return cmd
}
