package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a development bearer token for the API",
	Long: `Sign an HS256 token with JWT_SECRET for local testing of the authenticated /v1/resumes,
/v1/generate and /v1/autofill routes. Production tokens are issued by the identity provider.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

var tokenUserID string

func init() {
	tokenCmd.Flags().StringVar(&tokenUserID, "user-id", "", "User UUID to put in the token (default: random)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	userID := uuid.New()
	if tokenUserID != "" {
		id, err := uuid.Parse(tokenUserID)
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		userID = id
	}

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return err
	}
	token, err := server.NewJWTService(jwtConfig).GenerateToken(userID)
	if err != nil {
		return fmt.Errorf("failed to sign token: %w", err)
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), token)
	if verbose {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "user: %s, expires in %dh\n", userID, jwtConfig.ExpirationHours)
	}
	return nil
}
