package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/armature-dev/armature/internal/config"
	"github.com/armature-dev/armature/internal/log"
	"github.com/armature-dev/armature/internal/manager"
	"github.com/armature-dev/armature/internal/registry"
	"github.com/armature-dev/armature/internal/report"
)

var (
	version   = "dev"
	cfgFile   string
	flagRoot  string
	flagDebug bool
	flagQuiet bool
	cfg       config.Config
)

var rootCmd = &cobra.Command{
	Use:   "armature",
	Short: "Project scaffolding and coding standards management",
	Long: `Armature generates new project skeletons from templates, validates
existing projects against per-language rule sets, and keeps version
numbers synchronized across every file in a repository.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	// Runs after initConfig has unmarshalled the file, so a bad
	// config fails every subcommand up front.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.Validate(cfg)
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: .armature/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&flagRoot, "root", "r", "",
		"project root (default: current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false,
		"write debug logs to .armature/debug.log")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false,
		"suppress per-file progress output")

	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("ui.quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

func initConfig() {
	defaults := config.Defaults()
	viper.SetDefault("ui.color", defaults.UI.Color)
	viper.SetDefault("ui.quiet", defaults.UI.Quiet)
	viper.SetDefault("scaffold.license", defaults.Scaffold.License)
	viper.SetDefault("scaffold.language", defaults.Scaffold.Language)
	viper.SetDefault("standards.strict_mode", defaults.Standards.StrictMode)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .armature/config.yaml (current directory)
		// 2. ~/.config/armature/config.yaml (user config)
		if _, err := os.Stat(".armature/config.yaml"); err == nil {
			viper.SetConfigFile(".armature/config.yaml")
		} else {
			home, _ := os.UserHomeDir()
			viper.AddConfigPath(filepath.Join(home, ".config", "armature"))
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
		}
	}

	// A missing config file means defaults; any other read error is
	// surfaced when the config is actually consulted.
	_ = viper.ReadInConfig()
	_ = viper.Unmarshal(&cfg)

	if flagDebug || os.Getenv("ARMATURE_DEBUG") != "" {
		if _, err := log.Init(filepath.Join(projectRoot(), ".armature", "debug.log")); err == nil {
			log.SetEnabled(true)
			// --debug captures everything; the env var alone keeps the
			// log at info and above.
			if flagDebug {
				log.SetMinLevel(log.LevelDebug)
			} else {
				log.SetMinLevel(log.LevelInfo)
			}
		}
	}
}

// projectRoot resolves the project root from the --root flag, the
// config file, or the working directory.
func projectRoot() string {
	if flagRoot != "" {
		return flagRoot
	}
	if cfg.Root != "" {
		return cfg.Root
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// newReporter builds the output sink commands print through, honoring
// ui.color and --quiet.
func newReporter() report.Reporter {
	var rep report.Reporter
	if cfg.UI.Color {
		rep = report.NewConsole(os.Stdout)
	} else {
		rep = report.NewPlainConsole(os.Stdout)
	}
	if flagQuiet || cfg.UI.Quiet {
		rep = report.NewQuiet(rep)
	}
	return rep
}

// loadManager loads the registry for the project root and wraps it in
// a Manager. Registry absence is the one fatal startup error.
func loadManager(dryRun bool) (*manager.Manager, error) {
	reg, err := registry.Load(projectRoot())
	if err != nil {
		return nil, err
	}

	var opts []manager.Option
	if dryRun {
		opts = append(opts, manager.WithDryRun())
	}
	return manager.New(reg, newReporter(), opts...), nil
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
