package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/manager"
	"github.com/armature-dev/armature/internal/paths"
	"github.com/armature-dev/armature/internal/registry"
	"github.com/armature-dev/armature/internal/vercalc"
	"github.com/armature-dev/armature/internal/watcher"
)

var (
	updatePython  string
	updateNode    string
	updateProject string
	updateDryRun  bool
	bumpDryRun    bool
	validateWatch bool
)

var versionsShowCmd = &cobra.Command{
	Use:   "versions:show",
	Short: "Display all tracked versions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadManager(false)
		if err != nil {
			return err
		}
		mgr.Show(cmd.OutOrStdout())
		return nil
	},
}

var versionsUpdateCmd = &cobra.Command{
	Use:   "versions:update",
	Short: "Update one or more component versions across the project",
	Long: `Updates the given component versions in the registry and rewrites
every file the registry's patterns cover. Files are patched
independently; a missing or unreadable file is reported and skipped
without aborting the run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var updates []manager.Update
		if updatePython != "" {
			updates = append(updates, manager.Update{Component: manager.ComponentPython, Value: updatePython})
		}
		if updateNode != "" {
			updates = append(updates, manager.Update{Component: manager.ComponentNode, Value: updateNode})
		}
		if updateProject != "" {
			updates = append(updates, manager.Update{Component: manager.ComponentProject, Value: updateProject})
		}
		if len(updates) == 0 {
			return fmt.Errorf("nothing to update: pass at least one of --python, --node, --project")
		}

		mgr, err := loadManager(updateDryRun)
		if err != nil {
			return err
		}
		_, err = mgr.UpdateAll(updates)
		return err
	},
}

var versionsValidateCmd = &cobra.Command{
	Use:   "versions:validate",
	Short: "Check current versions against registry minimums",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr, err := loadManager(false)
		if err != nil {
			return err
		}
		warnings := mgr.ReportValidation()
		if !validateWatch {
			if len(warnings) > 0 {
				return fmt.Errorf("%d version check(s) failed", len(warnings))
			}
			return nil
		}
		return watchValidate(cmd)
	},
}

// watchValidate re-runs version validation whenever the registry file
// changes, until interrupted. The registry is reloaded on each pass so
// edits from other worktrees are picked up.
func watchValidate(cmd *cobra.Command) error {
	regPath := filepath.Join(paths.ResolveConfigDir(projectRoot()), registry.FileName)
	w, err := watcher.New(watcher.DefaultConfig(regPath))
	if err != nil {
		return err
	}
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	if err != nil {
		return err
	}

	rep := newReporter()
	rep.Info("Watching %s (ctrl-c to stop)", regPath)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	for {
		select {
		case <-onChange:
			mgr, err := loadManager(false)
			if err != nil {
				rep.Failure("%v", err)
				continue
			}
			mgr.ReportValidation()
		case <-ctx.Done():
			return nil
		}
	}
}

var versionsBumpCmd = &cobra.Command{
	Use:   "versions:bump <component> <patch|minor|major>",
	Short: "Bump a component version and propagate it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		component, err := manager.ParseComponent(args[0])
		if err != nil {
			return err
		}
		kind, err := vercalc.ParseBumpKind(args[1])
		if err != nil {
			return err
		}
		mgr, err := loadManager(bumpDryRun)
		if err != nil {
			return err
		}
		_, err = mgr.BumpVersion(component, kind)
		return err
	},
}

func init() {
	versionsUpdateCmd.Flags().StringVar(&updatePython, "python", "", "new Python version (e.g. 3.14)")
	versionsUpdateCmd.Flags().StringVar(&updateNode, "node", "", "new Node.js version (e.g. 24)")
	versionsUpdateCmd.Flags().StringVar(&updateProject, "project", "", "new project version (e.g. 1.2.3)")
	versionsUpdateCmd.Flags().BoolVar(&updateDryRun, "dry-run", false, "show diffs without writing files")

	versionsBumpCmd.Flags().BoolVar(&bumpDryRun, "dry-run", false, "show diffs without writing files")

	versionsValidateCmd.Flags().BoolVarP(&validateWatch, "watch", "w", false, "re-validate whenever the registry changes")

	rootCmd.AddCommand(versionsShowCmd)
	rootCmd.AddCommand(versionsUpdateCmd)
	rootCmd.AddCommand(versionsValidateCmd)
	rootCmd.AddCommand(versionsBumpCmd)
}
