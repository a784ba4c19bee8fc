package main

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

const keygenBytes = 32

func keygenCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate random secrets for SESSION_SECRETS",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count <= 0 {
				return errors.New("count must be positive")
			}
			for range count {
				secret, err := newSecret()
				if err != nil {
					return err
				}
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), secret); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "number of secrets to generate")
	return cmd
}

func newSecret() (string, error) {
	b := make([]byte, keygenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
