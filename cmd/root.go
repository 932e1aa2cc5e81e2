package cmd

import (
	"os"

	"github.com/JTMarcu/project-alanna/pkg/config"
	"github.com/JTMarcu/project-alanna/pkg/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

//nolint:gochecknoglobals // Cobra boilerplate
var verbose bool

//nolint:gochecknoglobals // Cobra boilerplate
var configFile string

//nolint:gochecknoglobals // Cobra boilerplate
var logFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var logLevel string

//nolint:gochecknoglobals // Cobra boilerplate
var rootCmd = &cobra.Command{
	Use:   "alanna",
	Short: "Lay out résumé PDFs from content tables",
	Long: `alanna turns a CSV content table of (section, subsection, content) rows into a
single-column Letter-size résumé PDF.

It can also tailor a master table to a job description with an LLM, writing a
trimmed table, a cover letter and the rendered PDF.`,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default is $HOME/.alanna/config.json)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "diagnostic log format: console or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level: debug, info, warn or error")
}

// getVerbose returns the verbose flag value.
func getVerbose() (result bool) {
	result = verbose
	return result
}

// getConfigFile returns the config file path.
func getConfigFile() (result string) {
	result = configFile
	return result
}

// newLogger builds the diagnostic logger. Flags win over cfg, and --verbose raises the default level to info.
func newLogger(cfg config.LoggingConfig) (logger *zap.Logger, err error) {
	level := cfg.Level
	if getVerbose() && level == "" {
		level = "info"
	}
	if logLevel != "" {
		level = logLevel
	}

	format := cfg.Format
	if logFormat != "" {
		format = logFormat
	}

	logger, err = logging.New(logging.Config{Level: level, Format: format})
	return logger, err
}

// loggingFromConfig returns the logging section of the config file, or defaults when it cannot be read.
func loggingFromConfig() (section config.LoggingConfig) {
	cfg, err := config.Read(getConfigFile())
	if err != nil {
		return section
	}
	section = cfg.Logging
	return section
}
