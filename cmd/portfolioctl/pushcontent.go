package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jaq-h/portfolio-service/internal/content"
	contentsync "github.com/jaq-h/portfolio-service/internal/sync"
)

func pushContentCommand() *cobra.Command {
	var (
		dir     string
		keyList []string
	)

	cmd := &cobra.Command{
		Use:   "push-content",
		Short: "Push local content documents to the config store",
		Long: `Read the local content documents and write them to the remote config
store in a single batch. Without --keys every known document is pushed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var keys []content.Key
			for _, raw := range keyList {
				key, err := content.ParseKey(strings.TrimSpace(raw))
				if err != nil {
					return fmt.Errorf("invalid key %q: %w", raw, err)
				}
				keys = append(keys, key)
			}

			store, err := writeStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = store.Close() }()

			svc := contentsync.New(nil, store, log)
			return svc.PushContent(cmd.Context(), dir, keys)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "content", "directory holding the local content documents")
	cmd.Flags().StringSliceVar(&keyList, "keys", nil, "content keys to push (default: all)")

	return cmd
}
