// Package cli implements the sparc-chat command line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/q-sparc/sparc-chat/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "sparc-chat",
	Short: "Conversational access to a neural connectivity knowledge base",
	Long: `sparc-chat answers natural-language questions about neural connectivity.

At startup it loads the connectivity records, embeds each connection into
a similarity index, and then answers questions by retrieving the most
relevant connections and asking a language model to explain them. Answers
carry a structured table of the cited pathways alongside the prose.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default: sparc-chat.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
