// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bookforge CLI. It builds both
// variants of a problem/solution book from one source tree: a full variant
// with problem statements and a solutions-only variant without them.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the bookforge CLI.
var rootCmd = &cobra.Command{
	Use:   "bookforge",
	Short: "Build both variants of a problem/solution book",
	Long: `bookforge builds two rendered variants of a problem/solution book from
one authored source tree: a full variant showing problem statements and
solutions, and a solutions-only variant that keeps titles, structure, and
solutions but omits the statements.

Problem statements must be wrapped in a problemstatement region inside
their problembox; unwrapped text cannot be told apart from ordinary
content and will appear in both variants. Use lint to find such blocks
and fix to repair them.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bookforge.yaml or ~/.config/bookforge/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bookforge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bookforge"))
		}
	}

	viper.SetEnvPrefix("BOOKFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// stringSetting resolves a string flag against its config key: an
// explicitly set flag wins, then the config file, then the flag default.
func stringSetting(cmd *cobra.Command, flag, key string) string {
	v, _ := cmd.Flags().GetString(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetString(key)
	}
	return v
}

// boolSetting resolves a bool flag against its config key.
func boolSetting(cmd *cobra.Command, flag, key string) bool {
	v, _ := cmd.Flags().GetBool(flag)
	if !cmd.Flags().Changed(flag) && viper.IsSet(key) {
		return viper.GetBool(key)
	}
	return v
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
