package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/api"
)

// NewTokenCommand issues API bearer tokens
func NewTokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage API tokens",
	}

	var (
		userID   string
		username string
		role     string
		ttl      time.Duration
		noExpiry bool
	)
	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed token for an actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("CMS_JWT_SECRET is required to issue tokens")
			}

			if noExpiry {
				ttl = 0
			} else if ttl <= 0 {
				return errors.New("--ttl must be positive; use --no-expiry for a token without expiry")
			}

			id := uuid.New()
			if userID != "" {
				if id, err = uuid.Parse(userID); err != nil {
					return fmt.Errorf("invalid user id: %w", err)
				}
			}
			actor := simplecms.Actor{ID: id, Username: username, Role: role}
			token, err := api.IssueToken(api.NewTokenAuth(cfg.JWTSecret), actor, ttl)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(cmd, map[string]interface{}{"actor": actor, "token": token})
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&userID, "user-id", "", "actor id (random when empty)")
	issue.Flags().StringVar(&username, "username", "", "actor username")
	issue.Flags().StringVar(&role, "role", "editor", "actor role")
	issue.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	issue.Flags().BoolVar(&noExpiry, "no-expiry", false, "issue a token without an exp claim")

	cmd.AddCommand(issue)
	return cmd
}
