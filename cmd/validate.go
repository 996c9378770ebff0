package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/armature-dev/armature/internal/standards"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Validate a project against its language standards",
	Long: `Detects the languages used in a project and checks it against the
matching built-in standards: required files and directories, source
file naming, line length, and trailing whitespace. Override the
built-in definitions with standards.dir in config.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := projectRoot()
		if len(args) == 1 {
			root = args[0]
		}

		store := standards.NewStore()
		if cfg.Standards.Dir != "" {
			store = standards.NewStoreFromDir(cfg.Standards.Dir)
		}

		result, err := store.ValidateProject(root)
		if err != nil {
			return err
		}

		rep := newReporter()
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = fmt.Sprintf("%s: %s", issue.Path, msg)
			}
			if issue.Line > 0 {
				msg = fmt.Sprintf("%s (line %d)", msg, issue.Line)
			}
			switch issue.Severity {
			case standards.SeverityError:
				rep.Failure("%s", msg)
			case standards.SeverityWarning:
				rep.Warn("%s", msg)
			default:
				rep.Info("%s", msg)
			}
		}

		rep.Info("Compliance score: %.0f/100", result.Score)

		violations := result.Violations()
		if len(violations) > 0 {
			return fmt.Errorf("%d violation(s) found", len(violations))
		}
		if cfg.Standards.StrictMode {
			if warnings := result.Warnings(); len(warnings) > 0 {
				return fmt.Errorf("strict mode: %d warning(s) found", len(warnings))
			}
		}
		rep.Success("Project is compliant")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
