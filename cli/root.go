// Package cli implements the estribillo command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/RyanBlaney/estribillo/logging"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "estribillo",
	Short: "Locate and extract the most recognizable segment of audio files",
	Long: `Estribillo analyzes audio recordings and locates the most
recognizable contiguous segment, a heuristic proxy for the chorus.

The detected start times feed two consumers: a playlist manifest with
per-song metadata, and physically trimmed clip files with fades.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		installLogger()
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default estribillo.yaml in . or $HOME/.config/estribillo)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.Bool("no-color", false, "disable colored log output")
	flags.String("ffmpeg", "ffmpeg", "path to the ffmpeg binary")
	flags.String("ffprobe", "ffprobe", "path to the ffprobe binary")

	for _, name := range []string{"log-level", "no-color", "ffmpeg", "ffprobe"} {
		if err := viper.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

// initConfig wires the viper config file and ESTRIBILLO_* environment
// variables under the already-bound flags.
func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("estribillo")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "estribillo"))
		}
	}

	viper.SetEnvPrefix("ESTRIBILLO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// installLogger replaces the library's default logger with a logrus-backed
// one so all components share the CLI's level and formatting.
func installLogger() {
	logger := logging.NewLogrusLoggerWithOptions(logging.LogrusOptions{
		Level:   logging.ParseLevel(viper.GetString("log-level")),
		NoColor: viper.GetBool("no-color"),
	})
	logging.SetGlobalLogger(logger)
}

// Execute runs the root command and reports its exit code
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
