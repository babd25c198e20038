package cmd

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newKeysCmd() *cobra.Command {
	var apiKeyBytes int

	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Generate a broker token secret and an admin API key",
		Long: `Generate secure random keys for the service environment.

The API key is printed together with its bcrypt hash. Configure the hash in
API_KEYS so the plain key never has to be stored with the service.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(cmd.OutOrStdout(), apiKeyBytes)
		},
	}

	cmd.Flags().IntVar(&apiKeyBytes, "api-key-bytes", 24, "random bytes in the API key")

	return cmd
}

func runKeys(out io.Writer, apiKeyBytes int) error {
	if apiKeyBytes < 16 {
		return fmt.Errorf("api key needs at least 16 random bytes, got %d", apiKeyBytes)
	}

	// 32 bytes = 256 bits for HS256
	tokenSecret, err := generateSecureKey(32)
	if err != nil {
		return fmt.Errorf("generate broker token secret: %w", err)
	}

	apiKey, err := generateSecureKey(apiKeyBytes)
	if err != nil {
		return fmt.Errorf("generate API key: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(apiKey), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash API key: %w", err)
	}

	fmt.Fprintln(out, "Add these to your .env file:")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "# Broker bearer tokens")
	fmt.Fprintf(out, "BROKER_TOKEN_SECRET=%s\n", tokenSecret)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "# Admin API key (send the plain key in X-API-Key)")
	fmt.Fprintf(out, "API_KEYS=%s\n", hash)
	fmt.Fprintf(out, "# plain key: %s\n", apiKey)
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Never commit these keys to version control.")
	return nil
}

func generateSecureKey(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
