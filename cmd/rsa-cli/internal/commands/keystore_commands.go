package commands

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/arokys4/rsa-project/internal/app"
	"github.com/arokys4/rsa-project/internal/domain/keys"
	"github.com/arokys4/rsa-project/internal/infrastructure/cryptography"
	"github.com/arokys4/rsa-project/internal/infrastructure/persistence"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// KeystoreCommandHandler handles the keystore commands backed by the configured database.
type KeystoreCommandHandler struct{}

// keystoreServices are opened per command; close releases the database
type keystoreServices struct {
	generation keys.KeyGenerationService
	cipher     keys.KeyCipherService
	metadata   keys.KeyMetadataService
	db         *gorm.DB
	env        *environment
}

func (s *keystoreServices) close() {
	if err := persistence.CloseDB(s.db); err != nil {
		s.env.logger.Warn("Failed to close keystore database: ", err)
	}
}

func openKeystore(cmd *cobra.Command) (*keystoreServices, error) {
	env, err := setupEnvironment(cmd)
	if err != nil {
		return nil, err
	}

	db, err := persistence.NewDBConnection(env.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open keystore: %w", err)
	}

	services, err := buildKeystoreServices(env, db)
	if err != nil {
		_ = persistence.CloseDB(db)
		return nil, err
	}
	return services, nil
}

func buildKeystoreServices(env *environment, db *gorm.DB) (*keystoreServices, error) {
	if err := persistence.Migrate(db); err != nil {
		return nil, err
	}

	repo, err := persistence.NewGormKeyRepository(db, env.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key repository: %w", err)
	}

	processor, err := newRSAProcessor(env)
	if err != nil {
		return nil, err
	}

	generation, err := app.NewKeyGenerationService(repo, processor, env.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key generation service: %w", err)
	}
	cipher, err := app.NewKeyCipherService(repo, processor, env.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key cipher service: %w", err)
	}
	metadata, err := app.NewKeyMetadataService(repo, env.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create key metadata service: %w", err)
	}

	return &keystoreServices{
		generation: generation,
		cipher:     cipher,
		metadata:   metadata,
		db:         db,
		env:        env,
	}, nil
}

// GenerateCmd generates a key pair and stores it in the keystore
func (h *KeystoreCommandHandler) GenerateCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	bits, err := cmd.Flags().GetInt("bits")
	if err != nil {
		return fmt.Errorf("invalid bits flag: %w", err)
	}
	if bits == 0 {
		bits = ks.env.config.Engine.KeyBits
	}
	rounds, err := cmd.Flags().GetInt("rounds")
	if err != nil {
		return fmt.Errorf("invalid rounds flag: %w", err)
	}

	metas, err := ks.generation.Generate(cmd.Context(), bits, rounds)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), metas[0].KeyPairID)
	return nil
}

// ListCmd prints stored key metadata as a table
func (h *KeystoreCommandHandler) ListCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	query := keys.NewKeyQuery()
	if query.Type, err = cmd.Flags().GetString("type"); err != nil {
		return fmt.Errorf("invalid type flag: %w", err)
	}
	if query.Limit, err = cmd.Flags().GetInt("limit"); err != nil {
		return fmt.Errorf("invalid limit flag: %w", err)
	}
	if query.Offset, err = cmd.Flags().GetInt("offset"); err != nil {
		return fmt.Errorf("invalid offset flag: %w", err)
	}
	if query.SortBy, err = cmd.Flags().GetString("sort-by"); err != nil {
		return fmt.Errorf("invalid sort-by flag: %w", err)
	}
	if query.SortOrder, err = cmd.Flags().GetString("sort-order"); err != nil {
		return fmt.Errorf("invalid sort-order flag: %w", err)
	}

	metas, err := ks.metadata.List(cmd.Context(), query)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKEY PAIR ID\tTYPE\tBITS\tCREATED")
	for _, meta := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			meta.ID, meta.KeyPairID, meta.Type, meta.KeySize, meta.DateTimeCreated.Format("2006-01-02 15:04:05"))
	}
	return w.Flush()
}

// GetCmd prints the metadata of one key; public keys include their material
func (h *KeystoreCommandHandler) GetCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	keyID, err := cmd.Flags().GetString("id")
	if err != nil {
		return fmt.Errorf("invalid id flag: %w", err)
	}

	meta, err := ks.metadata.GetByID(cmd.Context(), keyID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "id:          %s\n", meta.ID)
	fmt.Fprintf(out, "key pair id: %s\n", meta.KeyPairID)
	fmt.Fprintf(out, "type:        %s\n", meta.Type)
	fmt.Fprintf(out, "bits:        %d\n", meta.KeySize)
	fmt.Fprintf(out, "created:     %s\n", meta.DateTimeCreated.Format("2006-01-02 15:04:05"))
	if meta.Material != "" {
		fmt.Fprintf(out, "material:    %s", meta.Material)
	}
	return nil
}

// EncryptCmd encrypts with the public key of --key-pair-id
func (h *KeystoreCommandHandler) EncryptCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	keyPairID, err := cmd.Flags().GetString("key-pair-id")
	if err != nil {
		return fmt.Errorf("invalid key-pair-id flag: %w", err)
	}
	message, err := readMessage(cmd)
	if err != nil {
		return err
	}

	ciphertext, err := ks.cipher.Encrypt(cmd.Context(), keyPairID, message)
	if err != nil {
		return err
	}
	return writeOutput(cmd, []byte(ciphertext))
}

// DecryptCmd decrypts with the private key of --key-pair-id
func (h *KeystoreCommandHandler) DecryptCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	keyPairID, err := cmd.Flags().GetString("key-pair-id")
	if err != nil {
		return fmt.Errorf("invalid key-pair-id flag: %w", err)
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

	plain, err := ks.cipher.Decrypt(cmd.Context(), keyPairID, string(input))
	if err != nil {
		return err
	}
	return writeOutput(cmd, plain)
}

// DeleteCmd deletes both halves of --key-pair-id
func (h *KeystoreCommandHandler) DeleteCmd(cmd *cobra.Command, _ []string) error {
	ks, err := openKeystore(cmd)
	if err != nil {
		return err
	}
	defer ks.close()

	keyPairID, err := cmd.Flags().GetString("key-pair-id")
	if err != nil {
		return fmt.Errorf("invalid key-pair-id flag: %w", err)
	}

	if err := ks.metadata.DeleteByKeyPairID(cmd.Context(), keyPairID); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted key pair %s\n", keyPairID)
	return nil
}

// InitKeystoreCommands registers the keystore command group
func InitKeystoreCommands(rootCmd *cobra.Command) {
	handler := &KeystoreCommandHandler{}

	var keystoreCmd = &cobra.Command{
		Use:   "keystore",
		Short: "Manage RSA key pairs stored in the keystore database",
	}

	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Generate a key pair and store it; prints the key pair ID",
		Args:  cobra.NoArgs,
		RunE:  handler.GenerateCmd,
	}
	generateCmd.Flags().IntP("bits", "b", 0, "Modulus size in bits (configured default when 0)")
	generateCmd.Flags().IntP("rounds", "r", 0, "Miller-Rabin rounds (configured default when 0)")
	keystoreCmd.AddCommand(generateCmd)

	var listCmd = &cobra.Command{
		Use:   "list",
		Short: "List stored keys",
		Args:  cobra.NoArgs,
		RunE:  handler.ListCmd,
	}
	listCmd.Flags().StringP("type", "", "", "Only list keys of this type (public or private)")
	listCmd.Flags().IntP("limit", "", 0, "Maximum number of keys to list")
	listCmd.Flags().IntP("offset", "", 0, "Number of keys to skip")
	listCmd.Flags().StringP("sort-by", "", "date_time_created", "Column to sort by")
	listCmd.Flags().StringP("sort-order", "", "desc", "Sort order (asc or desc)")
	keystoreCmd.AddCommand(listCmd)

	var getCmd = &cobra.Command{
		Use:   "get",
		Short: "Show one stored key",
		Args:  cobra.NoArgs,
		RunE:  handler.GetCmd,
	}
	getCmd.Flags().StringP("id", "", "", "Key ID")
	_ = getCmd.MarkFlagRequired("id")
	keystoreCmd.AddCommand(getCmd)

	var encryptCmd = &cobra.Command{
		Use:   "encrypt",
		Short: "Encrypt text with a stored public key",
		Args:  cobra.NoArgs,
		RunE:  handler.EncryptCmd,
	}
	encryptCmd.Flags().StringP("key-pair-id", "", "", "Key pair ID")
	_ = encryptCmd.MarkFlagRequired("key-pair-id")
	addMessageFlags(encryptCmd, "Message to encrypt")
	keystoreCmd.AddCommand(encryptCmd)

	var decryptCmd = &cobra.Command{
		Use:   "decrypt",
		Short: "Decrypt ciphertext with a stored private key",
		Args:  cobra.NoArgs,
		RunE:  handler.DecryptCmd,
	}
	decryptCmd.Flags().StringP("key-pair-id", "", "", "Key pair ID")
	_ = decryptCmd.MarkFlagRequired("key-pair-id")
	addMessageFlags(decryptCmd, "Ciphertext to decrypt, decimal integers separated by whitespace")
	keystoreCmd.AddCommand(decryptCmd)

	var deleteCmd = &cobra.Command{
		Use:   "delete",
		Short: "Delete both halves of a stored key pair",
		Args:  cobra.NoArgs,
		RunE:  handler.DeleteCmd,
	}
	deleteCmd.Flags().StringP("key-pair-id", "", "", "Key pair ID")
	_ = deleteCmd.MarkFlagRequired("key-pair-id")
	keystoreCmd.AddCommand(deleteCmd)

	rootCmd.AddCommand(keystoreCmd)
}
