package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpad/internal/app"
)

// runApp opens the store and content library and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	lib, err := loadLibrary(cfg)
	if err != nil {
		return err
	}
	st, err := openStore(cmd, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	return app.Run(app.Options{
		Library: lib,
		Store:   st,
		LogFile: cfg.LogFile,
	})
}
