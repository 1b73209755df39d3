package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bankloan/internal/data"
)

func (c *cli) newGenerateCommand() *cobra.Command {
	var (
		rows int
		rate float64
		seed int64
		out  string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic applicant dataset",
		Example: `  trainer generate --rows 5000 --out data/bankloan.csv
  trainer generate --out data/bankloan.xlsx`,
		RunE: func(cmd *cobra.Command, args []string) error {
			defer func() { _ = c.logger.Sync() }()
			c.logger.Info("generating dataset", zap.Int("rows", rows), zap.String("out", out))
			if err := data.WriteApplicants(out, data.SyntheticApplicants(rows, rate, seed)); err != nil {
				return err
			}
			c.logger.Info("dataset written", zap.String("out", out))
			return nil
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "n", 5000, "Number of applicants")
	cmd.Flags().Float64Var(&rate, "rate", 0.1, "Approximate approval rate")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed")
	cmd.Flags().StringVarP(&out, "out", "o", "data/bankloan.csv", "Output path (.csv or .xlsx)")
	return cmd
}
