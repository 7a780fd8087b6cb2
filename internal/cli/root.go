// Package cli implements the cyberabsa command tree.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/cyberabsa/internal/checkpoint"
	"github.com/ppiankov/cyberabsa/internal/config"
	"github.com/ppiankov/cyberabsa/internal/predict"
	"github.com/ppiankov/cyberabsa/internal/store"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "cyberabsa",
	Short: "Aspect-based sentiment analysis pipeline for cybersecurity reports",
	Long: `Cyberabsa builds and evaluates an aspect-based sentiment analysis
pipeline over cybersecurity reporting.

It collects advisories and analysis articles from government and research
sources, preprocesses them into a clean corpus, discovers topics by
embedding and clustering, constructs an ATEPC training dataset with
token-level aspect tags, and evaluates sentiment models over the result.
An HTTP service exposes the analyzer for interactive use.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("cyberabsa v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.cyberabsa/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		viper.AddConfigPath(home + "/.cyberabsa")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Environment variables matching CYBERABSA_* override file values,
	// with underscores standing in for key dots.
	viper.SetEnvPrefix("CYBERABSA")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration.
func loadConfig() (config.Config, error) {
	return config.Load(viper.GetViper())
}

// openStore opens the configured corpus store.
func openStore(cfg config.Config) (store.Store, error) {
	return store.New(store.Config{
		Backend: cfg.Storage.Backend,
		Dir:     cfg.Paths.DataDir,
		Path:    cfg.Storage.Path,
	})
}

// newPredictor builds the configured predictor together with the best
// available checkpoint. The lexicon backend runs without checkpoints;
// the server backend requires one.
func newPredictor(cfg config.Config, trained bool) (predict.Predictor, *checkpoint.Descriptor, error) {
	best, err := selectCheckpoint(cfg, trained)
	if err != nil {
		if strings.ToLower(cfg.Model.Backend) == "server" {
			return nil, nil, fmt.Errorf("select checkpoint: %w", err)
		}
		best = &checkpoint.Descriptor{Name: "lexicon-baseline"}
	}

	p, err := predict.New(predict.Config{
		Backend:    cfg.Model.Backend,
		BaseURL:    cfg.Model.BaseURL,
		Timeout:    cfg.Model.Timeout,
		Window:     cfg.Model.Window,
		HTTPProxy:  cfg.Model.HTTPProxy,
		HTTPSProxy: cfg.Model.HTTPSProxy,
		NoProxy:    cfg.Model.NoProxy,
	}, best.Name)
	if err != nil {
		return nil, nil, err
	}

	return p, best, nil
}

func selectCheckpoint(cfg config.Config, trained bool) (*checkpoint.Descriptor, error) {
	if trained {
		return checkpoint.SelectBestTrained(cfg.Paths.CheckpointsDir)
	}
	return checkpoint.SelectBest(cfg.Paths.CheckpointsDir, cfg.Model.CheckpointPrefix)
}
