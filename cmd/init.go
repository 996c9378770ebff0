package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/git"
	"github.com/armature-dev/armature/internal/registry"
	"github.com/armature-dev/armature/internal/scaffold"
	"github.com/armature-dev/armature/internal/vercalc"
)

var (
	initLanguage string
	initName     string
	initForce    bool
	initGit      bool
)

var initCmd = &cobra.Command{
	Use:   "init <path>",
	Short: "Generate a new project skeleton",
	Long: `Creates a new project at the given path from the built-in template
set for the chosen language. Version values come from the current
project's registry when one is present, otherwise from defaults.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest := args[0]

		language := initLanguage
		if language == "" {
			language = cfg.Scaffold.Language
		}
		if language == "" {
			return fmt.Errorf("no language given: pass --language or set scaffold.language in config")
		}

		name := initName
		if name == "" {
			name = filepath.Base(dest)
		}

		ctx := scaffold.Context{
			Name:    name,
			Author:  cfg.Scaffold.Author,
			License: cfg.Scaffold.License,
		}

		// Seed template versions from the enclosing project's registry
		// when one exists; a missing registry is fine here.
		if reg, err := registry.Load(projectRoot()); err == nil {
			ctx.ProjectVersion = reg.Get("project")
			ctx.PythonVersion = reg.Get("python")
			ctx.NodeVersion = reg.Get("node")
			if ctx.PythonVersion != "" {
				if target, err := vercalc.TargetID(ctx.PythonVersion); err == nil {
					ctx.PythonTarget = target
				}
				if window, err := vercalc.SupportedWindow(ctx.PythonVersion); err == nil {
					ctx.PythonWindow = window
				}
			}
		}

		gen := scaffold.New()
		if err := gen.Create(dest, language, ctx, initForce); err != nil {
			return err
		}

		rep := newReporter()
		rep.Success("Created %s project %q at %s", language, name, dest)

		if initGit {
			exec := git.NewRealExecutor(dest)
			if !exec.IsRepo() {
				if err := exec.InitRepo(); err != nil {
					return fmt.Errorf("initializing git repository: %w", err)
				}
			}
			if err := exec.AddAll(); err != nil {
				return fmt.Errorf("staging generated files: %w", err)
			}
			if err := exec.Commit("Initial commit"); err != nil && !errors.Is(err, git.ErrNothingToCommit) {
				return fmt.Errorf("committing generated files: %w", err)
			}
			if branch, err := exec.CurrentBranch(); err == nil {
				rep.Success("Initialized git repository on branch %s", branch)
			} else {
				rep.Success("Initialized git repository")
			}
		}
		return nil
	},
}

func init() {
	initCmd.Flags().StringVarP(&initLanguage, "language", "l", "", "project language (python, typescript)")
	initCmd.Flags().StringVarP(&initName, "name", "n", "", "project name (default: destination basename)")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing files")
	initCmd.Flags().BoolVar(&initGit, "git", false, "initialize a git repository with an initial commit")

	rootCmd.AddCommand(initCmd)
}
