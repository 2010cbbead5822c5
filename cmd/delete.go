package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/snapback/internal/catalog"
	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [timestamp]",
	Short: "Delete the snapshot with the given timestamp",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		timestamp := args[0]
		if _, err := catalog.ParseTimestamp(timestamp); err != nil {
			pterm.Error.Println(err)
			return
		}
		cfg, err := loadSession(cmd)
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed && !cfg.DryRun {
			result, _ := pterm.DefaultInteractiveConfirm.
				Show("Delete snapshot " + timestamp + "?")
			if !result {
				pterm.Info.Println("Delete cancelled.")
				return
			}
		}

		client := yabsnap.NewClient(cfg.Tool, cfg.Sudo, cfg.NoSudo)
		if err := client.Delete(cmd.Context(), timestamp, cfg.DryRun); err != nil {
			pterm.Error.Println(err)
			return
		}
		msg := "Snapshot " + timestamp + " deleted"
		if cfg.DryRun {
			msg += " (dry run)"
		}
		pterm.Success.Println(msg)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolP("yes", "y", false, "delete without confirmation")
}
