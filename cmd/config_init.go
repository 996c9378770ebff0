package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/config"
	"github.com/armature-dev/armature/internal/paths"
)

var configInitForce bool

var configInitCmd = &cobra.Command{
	Use:   "config:init",
	Short: "Write a commented default config file",
	Long: `Creates .armature/config.yaml under the project root with every
setting present and documented. Pass --config to write to a different
location.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfgFile
		if path == "" {
			path = filepath.Join(paths.ResolveConfigDir(projectRoot()), "config.yaml")
		}

		if _, err := os.Stat(path); err == nil && !configInitForce {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", path)
		}

		if err := config.WriteDefaultConfig(path); err != nil {
			return err
		}

		newReporter().Success("Wrote default config to %s", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing config file")

	rootCmd.AddCommand(configInitCmd)
}
