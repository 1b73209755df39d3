package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bankloan/internal/artifact"
	"bankloan/internal/evaluate"
	"bankloan/internal/training"
)

func (c *cli) newEvaluateCommand() *cobra.Command {
	var dataPath string
	cmd := &cobra.Command{
		Use:   "evaluate <artifact>",
		Short: "Print the classification report of a saved pipeline on the held-out rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = c.logger.Sync() }()
			if dataPath != "" {
				c.cfg.Data.Path = dataPath
			}
			p, err := artifact.Load(args[0])
			if err != nil {
				return err
			}
			c.logger.Info("artifact loaded", zap.String("path", args[0]), zap.String("model", p.Name()))

			s, err := training.NewRunner(c.cfg, nil, nil, c.logger).Prepare()
			if err != nil {
				return err
			}
			report, err := evaluate.ClassificationReport(p, s.XTest, s.YTest)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}
	cmd.Flags().StringVar(&dataPath, "data", "", "Dataset path, overrides config")
	return cmd
}
