package cmd

import (
	"fmt"

	"github.com/eventlane/server/internal/auth"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Hash a password for ADMIN_PASSWORD_HASH",
	Long: `Hash a plaintext password with bcrypt. Put the output in the
ADMIN_PASSWORD_HASH environment variable to set the admin credentials.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
