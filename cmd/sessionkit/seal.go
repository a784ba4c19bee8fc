package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionkit/pkg/chunk"
	"github.com/dmitrymomot/sessionkit/pkg/codec"
	"github.com/dmitrymomot/sessionkit/pkg/cookie"
)

func sealCmd() *cobra.Command {
	var (
		kind string
		name string
		data string
		ttl  time.Duration
	)

	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Seal a JSON payload into cookies",
		Long:  "Seal reads a JSON object from --data or stdin and prints the Set-Cookie headers that store it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, chunks, err := buildCodec(cfg)
			if err != nil {
				return err
			}

			var raw io.Reader = strings.NewReader(data)
			if data == "" {
				raw = cmd.InOrStdin()
			}
			var payload map[string]any
			if err := json.NewDecoder(raw).Decode(&payload); err != nil {
				return fmt.Errorf("decode payload: %w", err)
			}
			if ttl <= 0 {
				return errors.New("ttl must be positive")
			}

			blob, err := codec.SealKind(c, codec.Kind(kind), payload, c.Now().Add(ttl))
			if err != nil {
				return err
			}

			cookies, err := chunks.Plan(cookie.Jar{}, name, blob, cookie.WithMaxAge(max(int(ttl.Seconds()), 1)))
			if err != nil {
				return err
			}
			for _, ck := range cookies {
				if err := cookie.Validate(ck); err != nil {
					return err
				}
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Set-Cookie: %s\n", ck.HTTP().String()); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "kind", "k", codec.KindSession.String(), "payload kind")
	cmd.Flags().StringVar(&name, "name", "appSession", "base cookie name")
	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON payload; stdin when empty")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "time until the payload expires")
	return cmd
}

func buildCodec(cfg *appConfig) (*codec.Codec, *chunk.Assembler, error) {
	c, err := codec.NewFromConfig(cfg.Codec)
	if err != nil {
		return nil, nil, err
	}
	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		return nil, nil, err
	}
	chunks, err := chunk.NewFromConfig(cfg.Chunk, chunk.WithCookieManager(cookies))
	if err != nil {
		return nil, nil, err
	}
	return c, chunks, nil
}
