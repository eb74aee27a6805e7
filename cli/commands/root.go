package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dbschema-go/dbschema/cli/internal/ui"
	"github.com/dbschema-go/dbschema/cli/internal/update"
	"github.com/dbschema-go/dbschema/cli/internal/version"
	"github.com/dbschema-go/dbschema/internal/debug"
)

var (
	cfgFile      string
	verbose      bool
	noColor      bool
	skipEnvCheck bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dbschema",
	Short: "dbschema - declarative Postgres schema compiler",
	Long: `dbschema compiles an HCL-style schema configuration into:
- Postgres DDL
- a Prisma schema
- a JSON description of the resolved configuration

and runs transactional tests against a schema with an embedded or
real Postgres instance.`,
	Version: version.Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColor {
			os.Setenv("NO_COLOR", "1")
		}
		debug.Init(verbose)
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := cmd.Help(); err != nil {
			ui.PrintError("Failed to show help: %v", err)
			os.Exit(1)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: .dbschema.yaml in ., $HOME or $HOME/.config/dbschema)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&skipEnvCheck, "skip-env-check", false, "skip environment variable checks")
	rootCmd.PersistentFlags().Bool("no-telemetry", false, "disable telemetry collection")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("no_color", rootCmd.PersistentFlags().Lookup("no-color"))
	viper.BindPFlag("skip_env_check", rootCmd.PersistentFlags().Lookup("skip-env-check"))

	var checkUpdate bool

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  "Print the version number and build information for dbschema",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			if verbose {
				fmt.Println(info.FullString())
			} else {
				fmt.Println(info.String())
			}
			if checkUpdate {
				if err := update.CheckForUpdates(info.Version); err != nil {
					ui.PrintError("Update check failed: %v", err)
				}
			}
		},
	}
	versionCmd.Flags().BoolVar(&checkUpdate, "check-update", false, "check whether a newer release is available")

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			ui.PrintError("Failed to get home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath(fmt.Sprintf("%s/.config/dbschema", home))
		viper.SetConfigType("yaml")
		viper.SetConfigName(".dbschema")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			ui.PrintInfo("Using config file: %s", viper.ConfigFileUsed())
		}
	}
}
