package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"bankloan/internal/config"
	"bankloan/pkg/utils"
)

type cli struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *zap.Logger
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = c.logLevel
	}
	logger, err := utils.NewLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	c.cfg, c.logger = cfg, logger
	return nil
}

func newRootCommand() *cobra.Command {
	c := &cli{logger: zap.NewNop()}
	root := &cobra.Command{
		Use:               "trainer",
		Short:             "Train and evaluate loan approval models",
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "info", "debug|info|warn|error")

	root.AddCommand(c.newTrainCommand(), c.newEvaluateCommand(), c.newGenerateCommand())
	return root
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
