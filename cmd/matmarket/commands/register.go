package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"matmarket/internal/domain"
)

func registerCmd() *cobra.Command {
	var (
		password string
		confirm  string
		terms    bool
	)
	cmd := &cobra.Command{
		Use:   "register <email>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := domain.Registration{
				Email:           args[0],
				Password:        password,
				ConfirmPassword: confirm,
				AcceptedTerms:   terms,
			}
			if err := appCtx.Accounts.Register(cmd.Context(), reg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s. You can now log in.\n", reg.Email)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.Flags().StringVar(&confirm, "confirm", "", "repeat the password")
	cmd.Flags().BoolVar(&terms, "accept-terms", false, "accept the terms and conditions")
	return cmd
}

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Check an email and password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			email := args[0]
			if err := appCtx.Accounts.Authenticate(cmd.Context(), email, password); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Login successful. Welcome, %s!\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "account password")
	return cmd
}
