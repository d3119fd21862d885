package commands

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/arokys4/rsa-project/internal/infrastructure/cryptography"

	"github.com/spf13/cobra"
)

// RSACommandHandler handles the file based RSA commands.
type RSACommandHandler struct{}

// GenerateKeysCmd generates a key pair and writes it to the --pub and --priv files
func (h *RSACommandHandler) GenerateKeysCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}

	bits, err := cmd.Flags().GetInt("bits")
	if err != nil {
		return fmt.Errorf("invalid bits flag: %w", err)
	}
	if bits == 0 {
		bits = env.config.Engine.KeyBits
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		return fmt.Errorf("invalid rounds flag: %w", err)
	}
	pubPath, err := cmd.Flags().GetString("pub")
	if err != nil {
		return fmt.Errorf("invalid pub flag: %w", err)
	}
	privPath, err := cmd.Flags().GetString("priv")
	if err != nil {
		return fmt.Errorf("invalid priv flag: %w", err)
	}

	processor, err := newRSAProcessor(env)
	if err != nil {
		return err
	}

	pair, err := processor.GenerateKeys(cmd.Context(), bits, rounds)
	if err != nil {
		return err
	}

	if err := processor.SavePublicKeyToFile(&pair.Public, pubPath); err != nil {
		return err
	}
	if err := processor.SavePrivateKeyToFile(&pair.Private, privPath); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated %d-bit RSA key pair\npublic key:  %s\nprivate key: %s\n",
		pair.Bits(), pubPath, privPath)
	return nil
}

// EncryptCmd encrypts --message or --input-file with the public key in --pub
func (h *RSACommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}

	pubPath, err := cmd.Flags().GetString("pub")
	if err != nil {
		return fmt.Errorf("invalid pub flag: %w", err)
	}
	message, err := readMessage(cmd)
	if err != nil {
		return err
	}

	processor, err := newRSAProcessor(env)
	if err != nil {
		return err
	}

	pub, err := processor.ReadPublicKey(pubPath)
	if err != nil {
		return err
	}

	blocks, err := processor.EncryptString(message, pub)
	if err != nil {
		return err
	}

	return writeOutput(cmd, []byte(cryptography.FormatCiphertext(blocks)))
}

// DecryptCmd decrypts ciphertext text from --message or --input-file with the private key in --priv
func (h *RSACommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}

	privPath, err := cmd.Flags().GetString("priv")
	if err != nil {
		return fmt.Errorf("invalid priv flag: %w", err)
	}
	input, err := readMessage(cmd)
	if err != nil {
		return err
	}

	blocks, err := cryptography.ParseCiphertext(string(input))
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		return errors.New("input contains no ciphertext numbers")
	}

	processor, err := newRSAProcessor(env)
	if err != nil {
		return err
	}

	priv, err := processor.ReadPrivateKey(privPath)
	if err != nil {
		return err
	}

	plain, err := processor.DecryptString(blocks, priv)
	if err != nil {
		return err
	}

	return writeOutput(cmd, plain)
}

// IsPrimeCmd runs Miller-Rabin on --number
func (h *RSACommandHandler) IsPrimeCmd(cmd *cobra.Command, _ []string) error {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return err
	}

	number, err := cmd.Flags().GetString("number")
	if err != nil {
		return fmt.Errorf("invalid number flag: %w", err)
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		return fmt.Errorf("invalid rounds flag: %w", err)
	}
	if rounds == 0 {
		rounds = env.config.Engine.MillerRabinRounds
	}

	n, ok := new(big.Int).SetString(strings.TrimSpace(number), 10)
	if !ok {
		return fmt.Errorf("%q is not a decimal integer", number)
	}

	processor, err := newRSAProcessor(env)
	if err != nil {
		return err
	}

	prime, err := processor.IsProbablePrime(n, rounds)
	if err != nil {
		return err
	}

	if prime {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is probably prime (%d rounds)\n", n, rounds)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is composite\n", n)
	}
	return nil
}

// InitRSACommands registers the file based RSA commands
func InitRSACommands(rootCmd *cobra.Command) {
	handler := &RSACommandHandler{}

	var generateKeysCmd = &cobra.Command{
		Use:   "generate-keys",
		Short: "Generate an RSA key pair and save it to files",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateKeysCmd,
	}
	generateKeysCmd.Flags().IntP("bits", "b", 0, "Modulus size in bits (configured default when 0)")
	generateKeysCmd.Flags().IntP("rounds", "r", 0, "Miller-Rabin rounds (configured default when 0)")
	generateKeysCmd.Flags().StringP("pub", "", "rsa_key.pub", "Path to the public key file")
	generateKeysCmd.Flags().StringP("priv", "", "rsa_key", "Path to the private key file")
	rootCmd.AddCommand(generateKeysCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with a public key file",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("pub", "", "rsa_key.pub", "Path to the public key file")
	addMessageFlags(encryptCmd, "Message to encrypt")
	rootCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt ciphertext with a private key file",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("priv", "", "rsa_key", "Path to the private key file")
	addMessageFlags(decryptCmd, "Ciphertext to decrypt, decimal integers separated by whitespace")
	rootCmd.AddCommand(decryptCmd)

	var isPrimeCmd = &cobra.Command{
		Use:   "is-prime",
		Short: "Test a number for primality with Miller-Rabin",
		Args:  cobra.NoArgs,
		RunE:  handler.IsPrimeCmd,
	}
	isPrimeCmd.Flags().StringP("number", "n", "", "Decimal number to test")
	isPrimeCmd.Flags().IntP("rounds", "r", 0, "Miller-Rabin rounds (configured default when 0)")
	_ = isPrimeCmd.MarkFlagRequired("number")
	rootCmd.AddCommand(isPrimeCmd)
}
