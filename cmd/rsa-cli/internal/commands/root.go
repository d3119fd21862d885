package commands

import (
	"os"

	"github.com/spf13/cobra"
)

// DefaultConfigPath is used when neither --config nor CONFIG_PATH is set
const DefaultConfigPath = "configs/cli.yaml"

// NewRootCommand builds the rsa-cli command tree
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "rsa-cli",
		Short: "Textbook RSA command line tool",
		Long: `rsa-cli generates textbook RSA key pairs from scratch, encrypts and decrypts
text with them, and tests numbers for primality with Miller-Rabin.

Keys can be kept as plain files ("e n" / "d n") or in a keystore database
configured in the configuration file (sqlite by default, postgres optional).

Textbook RSA has no padding and is not secure for real data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	rootCmd.PersistentFlags().String(ConfigFlag, configPath, "Path to the configuration file")

	InitRSACommands(rootCmd)
	InitKeystoreCommands(rootCmd)

	return rootCmd
}
