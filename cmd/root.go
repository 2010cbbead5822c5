package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/melih-ucgun/snapback/internal/catalog"
	"github.com/melih-ucgun/snapback/internal/config"
	"github.com/melih-ucgun/snapback/internal/controller"
	"github.com/melih-ucgun/snapback/internal/rollback"
	"github.com/melih-ucgun/snapback/internal/ui"
	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

var rootCmd = &cobra.Command{
	Use:   "snapback",
	Short: "Interactive front-end for yabsnap snapshots",
	Long:  `Snapback lets you browse yabsnap snapshots, generate and run rollback scripts, and create or delete snapshots without leaving the terminal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSession(cmd)
		if err != nil {
			return err
		}
		filter, err := catalog.CompileFilter(cfg.Filter)
		if err != nil {
			return err
		}
		client := yabsnap.NewClient(cfg.Tool, cfg.Sudo, cfg.NoSudo)
		pipeline := rollback.NewPipeline(client, cfg.Output)
		ctrl := controller.New(client, pipeline, ui.NewPtermScreen(), filter, cfg.DryRun)
		return ctrl.Run(cmd.Context())
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))

	rootCmd.PersistentFlags().StringP("config", "c", "snapback.yaml", "config file path")
	rootCmd.PersistentFlags().StringP("output", "o", "", "output file for the rollback script")
	rootCmd.PersistentFlags().Bool("dry-run", false, "forward --dry-run to every mutating call")
	rootCmd.PersistentFlags().String("filter", "", `snapshot filter expression (e.g. 'Source == "/"')`)
	rootCmd.PersistentFlags().String("tool", "", "snapshot tool binary")
	rootCmd.PersistentFlags().Bool("no-sudo", false, "invoke the tool without a privilege helper")
}

// loadSession merges config file values with flag overrides. Flags win.
func loadSession(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Output = out
	}
	if tool, _ := cmd.Flags().GetString("tool"); tool != "" {
		cfg.Tool = tool
	}
	if f, _ := cmd.Flags().GetString("filter"); f != "" {
		cfg.Filter = f
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
	}
	if cmd.Flags().Changed("no-sudo") {
		cfg.NoSudo, _ = cmd.Flags().GetBool("no-sudo")
	}
	return cfg, nil
}
