package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arokys4/rsa-project/internal/domain/cryptoalg"
	"github.com/arokys4/rsa-project/internal/infrastructure/cryptography"
	"github.com/arokys4/rsa-project/internal/pkg/config"
	"github.com/arokys4/rsa-project/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// ConfigFlag is the persistent flag holding the configuration file path
const ConfigFlag = "config"

// environment is what every command needs once flags are parsed
type environment struct {
	config *config.CliConfig
	logger logger.Logger
}

// setupEnvironment loads the configuration named by --config and initializes the logger
func setupEnvironment(cmd *cobra.Command) (*environment, error) {
	var configPath string
	if flag := cmd.Flag(ConfigFlag); flag != nil {
		configPath = flag.Value.String()
	}

	cfg, err := config.InitializeCliConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}

	if err := logger.InitLogger(&cfg.Logger); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	loggerInstance, err := logger.GetLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to get logger instance: %w", err)
	}

	return &environment{config: cfg, logger: loggerInstance}, nil
}

// newRSAProcessor creates an engine with its own entropy-seeded random source
func newRSAProcessor(env *environment) (cryptoalg.RSAProcessor, error) {
	processor, err := cryptography.NewRSAProcessor(env.logger, cryptography.NewRandomSource(), env.config.Engine.MillerRabinRounds)
	if err != nil {
		return nil, fmt.Errorf("failed to create RSA processor: %w", err)
	}
	return processor, nil
}

// readMessage returns the --message text or the content of --input-file; exactly one must be set
func readMessage(cmd *cobra.Command) ([]byte, error) {
	message, err := cmd.Flags().GetString("message")
	if err != nil {
		return nil, fmt.Errorf("invalid message flag: %w", err)
	}
	inputFile, err := cmd.Flags().GetString("input-file")
	if err != nil {
		return nil, fmt.Errorf("invalid input-file flag: %w", err)
	}

	messageSet := cmd.Flags().Changed("message")
	switch {
	case messageSet && inputFile != "":
		return nil, errors.New("use either --message or --input-file, not both")
	case messageSet:
		return []byte(message), nil
	case inputFile != "":
		data, err := os.ReadFile(filepath.Clean(inputFile))
		if err != nil {
			return nil, fmt.Errorf("failed to read input file: %w", err)
		}
		return data, nil
	default:
		return nil, errors.New("one of --message or --input-file is required")
	}
}

// writeOutput writes data to --output-file, or to the command's stdout when it is unset
func writeOutput(cmd *cobra.Command, data []byte) error {
	outputFile, err := cmd.Flags().GetString("output-file")
	if err != nil {
		return fmt.Errorf("invalid output-file flag: %w", err)
	}

	if outputFile == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	if err := os.WriteFile(filepath.Clean(outputFile), data, 0600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

func addMessageFlags(cmd *cobra.Command, messageUsage string) {
	cmd.Flags().StringP("message", "m", "", messageUsage)
	cmd.Flags().StringP("input-file", "", "", "Path to the input file")
	cmd.Flags().StringP("output-file", "", "", "Path to the output file (stdout when empty)")
}
