// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/spf13/cobra"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

type tokenOptions struct {
	clientID     string
	clientSecret string
	tokenURL     string
	issuerURL    string
	scopes       []string
}

var tokenOpts tokenOptions

// tokenCmd fetches a client credentials token usable with --token
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Get an access token using Client Credentials flow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		token, err := fetchToken(cmd.Context(), tokenOpts)
		if err != nil {
			return err
		}

		return writeToken(cmd.OutOrStdout(), format, token)
	},
}

func fetchToken(ctx context.Context, opts tokenOptions) (*oauth2.Token, error) {
	if opts.tokenURL == "" {
		if opts.issuerURL == "" {
			return nil, fmt.Errorf("either --token-url or --issuer-url must be provided")
		}

		provider, err := oidc.NewProvider(ctx, opts.issuerURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create OIDC provider from issuer: %w", err)
		}
		opts.tokenURL = provider.Endpoint().TokenURL
	}

	config := &clientcredentials.Config{
		ClientID:     opts.clientID,
		ClientSecret: opts.clientSecret,
		TokenURL:     opts.tokenURL,
		Scopes:       opts.scopes,
	}

	token, err := config.Token(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	return token, nil
}

func writeToken(out io.Writer, format string, token *oauth2.Token) error {
	if format != "json" {
		_, err := fmt.Fprintln(out, token.AccessToken)
		return err
	}

	return json.NewEncoder(out).Encode(map[string]interface{}{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"expiry":       token.Expiry.Format(time.RFC3339),
	})
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().StringVar(&tokenOpts.clientID, "client-id", "", "Client ID")
	tokenCmd.Flags().StringVar(&tokenOpts.clientSecret, "client-secret", "", "Client Secret")
	tokenCmd.Flags().StringVar(&tokenOpts.tokenURL, "token-url", "", "Token URL")
	tokenCmd.Flags().StringVar(&tokenOpts.issuerURL, "issuer-url", "", "Issuer URL (for OIDC discovery)")
	tokenCmd.Flags().StringSliceVar(&tokenOpts.scopes, "scopes", []string{}, "Scopes (comma-separated)")
	tokenCmd.Flags().String("format", "text", "Output format (text or json)")

	_ = tokenCmd.MarkFlagRequired("client-id")
	_ = tokenCmd.MarkFlagRequired("client-secret")
}
