package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hejijunhao/kerf/internal/config"
	"github.com/hejijunhao/kerf/internal/logging"
)

var (
	cfgPath  string
	depth    string
	logLevel string

	cfg config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "kerf",
	Short: "Analyze application log files",
	Long: `Kerf parses unstructured application log text into structured
entries and reports statistics, per-endpoint summaries, error patterns,
and per-identifier journeys.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if depth != "" {
			cfg.Analysis.Depth = depth
		}
		if logLevel != "" {
			cfg.Logging.Level = logLevel
		}
		log = logging.Init(logging.ParseLevel(cfg.Logging.Level))
		return nil
	},
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to kerf.toml")
	rootCmd.PersistentFlags().StringVar(&depth, "depth", "", "analysis depth: quick, standard, deep")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadDocument reads the log file, enforcing the configured size cap.
// Decoding beyond treating the bytes as text is out of scope: the
// engine expects line-oriented free text.
func loadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if max := cfg.Limits.MaxDocumentBytes; max > 0 && info.Size() > max {
		return "", fmt.Errorf("%s is %d bytes, exceeds limit of %d", path, info.Size(), max)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}
