package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a snapshot",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSession(cmd)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		recovery, _ := cmd.Flags().GetBool("recovery")

		client := yabsnap.NewClient(cfg.Tool, cfg.Sudo, cfg.NoSudo)
		if recovery {
			err = client.CreateRecovery(cmd.Context(), cfg.DryRun)
		} else {
			err = client.Create(cmd.Context(), cfg.DryRun)
		}
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		msg := "Snapshot created"
		if recovery {
			msg = "Recovery snapshot created"
		}
		if cfg.DryRun {
			msg += " (dry run)"
		}
		pterm.Success.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().Bool("recovery", false, "create a recovery snapshot")
}
