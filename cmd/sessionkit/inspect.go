package main

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionkit/pkg/codec"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

type inspection struct {
	Kind      codec.Kind     `json:"kind"`
	IssuedAt  string         `json:"issuedAt,omitempty"`
	ExpiresAt string         `json:"expiresAt"`
	Body      map[string]any `json:"body"`
}

func inspectCmd() *cobra.Command {
	var (
		kind   string
		name   string
		header string
	)

	cmd := &cobra.Command{
		Use:   "inspect [blob]",
		Short: "Decrypt a sealed cookie and print its payload",
		Long:  "Inspect opens a single blob argument, or reassembles the cookie named --name from a Cookie header given with --cookie.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, chunks, err := buildCodec(cfg)
			if err != nil {
				return err
			}

			var blob string
			switch {
			case len(args) == 1:
				blob = strings.TrimSpace(args[0])
			case header != "":
				blob, err = chunks.Assemble(cookie.FromHeader(header), name)
				if err != nil {
					return err
				}
			default:
				return errors.New("pass a blob or --cookie")
			}

			env, err := codec.OpenKind[map[string]any](c, blob, codec.Kind(kind))
			if err != nil {
				return err
			}

			out := inspection{
				Kind:      env.Kind,
				ExpiresAt: env.ExpiresAt.UTC().Format(time.RFC3339),
				Body:      env.Body,
			}
			if !env.IssuedAt.IsZero() {
				out.IssuedAt = env.IssuedAt.UTC().Format(time.RFC3339)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", codec.KindSession.String(), "expected payload kind")
	cmd.Flags().StringVar(&name, "name", "appSession", "base cookie name to reassemble")
	cmd.Flags().StringVar(&header, "cookie", "", "raw Cookie header")
	return cmd
}
