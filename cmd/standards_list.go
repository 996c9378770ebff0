package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/standards"
)

var standardsListCmd = &cobra.Command{
	Use:   "standards:list",
	Short: "List the available coding standards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store := standards.NewStore()
		if cfg.Standards.Dir != "" {
			store = standards.NewStoreFromDir(cfg.Standards.Dir)
		}

		metas, err := store.List()
		if err != nil {
			return err
		}

		headerStyle := lipgloss.NewStyle().Bold(true)
		t := table.New().
			Border(lipgloss.RoundedBorder()).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == table.HeaderRow {
					return headerStyle
				}
				return lipgloss.NewStyle().Padding(0, 1)
			}).
			Headers("Name", "Version", "Languages", "Description")
		for _, m := range metas {
			t.Row(m.Name, m.Version, strings.Join(m.Languages, ", "), m.Description)
		}

		cmd.Println(t.Render())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(standardsListCmd)
}
