package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Iron-Ham/cohort/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "cohort",
	Short: "Constrained group assignment",
	Long: `Cohort assigns a roster of individuals to capacity-bounded groups.

Each individual may ask for a slot and may carry an affinity tag. Slot
requests are always honored, individuals sharing a tag are seated together
whenever capacity allows, and groups only overflow when a small tagged
cluster cannot fit anywhere. Every overflow is reported.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/cohort/config.yaml)")
	rootCmd.PersistentFlags().Int("capacity", 0, "seats per group (overrides engine.capacity_per_group)")
}

// bindFlags ties command flags to their configuration keys. It runs on every
// invocation so bindings survive a viper reset.
func bindFlags() {
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("engine.capacity_per_group", rootCmd.PersistentFlags().Lookup("capacity"))
}

func initConfig() {
	bindFlags()

	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/cohort")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("COHORT")
	// Replace dots with underscores for nested keys in env vars
	// e.g., COHORT_ENGINE_CAPACITY_PER_GROUP for engine.capacity_per_group
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
