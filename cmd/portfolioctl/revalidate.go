package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jaq-h/portfolio-service/internal/httpclient"
)

const revalidateTimeout = 10 * time.Second

func revalidateCommand() *cobra.Command {
	var (
		serviceURL string
		all        bool
		paths      []string
		tags       []string
	)

	cmd := &cobra.Command{
		Use:   "revalidate",
		Short: "Trigger render cache revalidation on a running service",
		RunE: func(cmd *cobra.Command, args []string) error {
			secret := os.Getenv("REVALIDATION_SECRET")
			if secret == "" {
				return fmt.Errorf("REVALIDATION_SECRET is not set")
			}
			if !all && len(paths) == 0 && len(tags) == 0 {
				return fmt.Errorf("nothing to revalidate: pass --all, --paths, or --tags")
			}

			body, err := json.Marshal(map[string]any{
				"paths": paths,
				"tags":  tags,
				"all":   all,
			})
			if err != nil {
				return err
			}

			req, err := http.NewRequestWithContext(cmd.Context(), http.MethodPost,
				serviceURL+"/api/revalidate", bytes.NewReader(body))
			if err != nil {
				return err
			}
			req.Header.Set("Content-Type", "application/json")
			req.Header.Set("Authorization", "Bearer "+secret)

			resp, err := httpclient.New(revalidateTimeout).Do(req)
			if err != nil {
				return fmt.Errorf("call revalidate endpoint: %w", err)
			}
			defer resp.Body.Close()

			payload, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("revalidate failed: %s: %s", resp.Status, string(payload))
			}
			fmt.Println(string(payload))
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceURL, "url", "http://localhost:8090", "base URL of the running service")
	cmd.Flags().BoolVar(&all, "all", false, "revalidate every known page")
	cmd.Flags().StringSliceVar(&paths, "paths", nil, "specific paths to revalidate")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "cache tags to revalidate")

	return cmd
}
