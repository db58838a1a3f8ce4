package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Dmitry-Bulhin/ya-note/internal/config"
	"github.com/Dmitry-Bulhin/ya-note/pkg/logger/slogx"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Personal notes web service",
	Long: `notes serves a small web application where every user keeps private notes
addressed by unique slugs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		if cfg, err = config.Parse(); err != nil {
			return fmt.Errorf("parse cfg: %v", err)
		}

		err = slogx.InitGlobal(os.Stdout, slogx.Config{
			Level:     cfg.App.LogLevel,
			Pretty:    cfg.App.Pretty,
			AddSource: cfg.App.LogSource,
			Service:   "ya-note",
		})
		if err != nil {
			return fmt.Errorf("init logger: %v", err)
		}

		return nil
	},
}
