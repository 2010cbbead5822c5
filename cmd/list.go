package cmd

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/melih-ucgun/snapback/internal/catalog"
	"github.com/melih-ucgun/snapback/internal/yabsnap"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List snapshots",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadSession(cmd)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		filter, err := catalog.CompileFilter(cfg.Filter)
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		client := yabsnap.NewClient(cfg.Tool, cfg.Sudo, cfg.NoSudo)
		records, err := client.List(cmd.Context())
		if err != nil {
			pterm.Error.Println("Failed to list snapshots:", err)
			return
		}
		records, err = filter.Apply(records)
		if err != nil {
			pterm.Error.Println(err)
			return
		}

		cat, warnings := catalog.Build(records)
		for _, w := range warnings {
			pterm.Warning.Println(w)
		}
		if cat.Empty() {
			pterm.Info.Println("No snapshots found.")
			return
		}

		tableData := [][]string{{"Timestamp", "Created", "Source", "Trigger", "Comment"}}
		for _, r := range cat.Entries() {
			tableData = append(tableData, []string{
				r.Timestamp,
				catalog.FormatTimestamp(r.Timestamp),
				r.Source,
				r.Trigger,
				r.Comment,
			})
		}
		pterm.DefaultTable.WithHasHeader().WithData(tableData).Render()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
