package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "eclipse",
	Short: "Solar eclipse path explorer",
	Long: `Eclipse charts every central solar eclipse from 1601 to 2200 by year and
duration, and draws the paths of the eclipses in a movable window of years
on a map of the earth.`,
	SilenceUsage: true,
	RunE:         runTUI,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default .eclipse.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "debug logging")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	addWindowFlags(rootCmd)
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(".eclipse")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("ECLIPSE")
	viper.AutomaticEnv()

	// No config file is fine; defaults apply.
	_ = viper.ReadInConfig()
}

// addWindowFlags registers the flags shared by the commands that show a
// window of years.
func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().Float64("start", 0, "first year of the initial window (default from config)")
	cmd.Flags().Bool("refresh", false, "ignore the cache and fetch from the feature service")
}
