package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jaq-h/portfolio-service/internal/blob"
	"github.com/jaq-h/portfolio-service/internal/config"
	"github.com/jaq-h/portfolio-service/internal/configstore"
	"github.com/jaq-h/portfolio-service/internal/logger"
	contentsync "github.com/jaq-h/portfolio-service/internal/sync"
)

func syncMediaCommand() *cobra.Command {
	var (
		sourceDir    string
		images       bool
		icons        bool
		all          bool
		resumePath   string
		dryRun       bool
		force        bool
		updateConfig bool
	)

	cmd := &cobra.Command{
		Use:   "sync-media",
		Short: "Upload local media to object storage",
		Long: `Upload the local images/ and icons/ trees to object storage, skipping
objects that already exist remotely. With --update-config the remote content
documents are patched to reference the uploaded URLs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				images = true
				icons = true
			}
			if !images && !icons && resumePath == "" {
				return fmt.Errorf("nothing to sync: pass --images, --icons, --all, or --resume")
			}

			cfg, log, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if !cfg.Blob.Configured() {
				return fmt.Errorf("object storage is not configured")
			}
			blobClient, err := blob.NewClient(blob.Config{
				Endpoint:  cfg.Blob.Endpoint,
				AccessKey: cfg.Blob.AccessKey,
				SecretKey: cfg.Blob.SecretKey,
				Bucket:    cfg.Blob.Bucket,
				UseSSL:    cfg.Blob.UseSSL,
				PublicURL: cfg.Blob.PublicURL,
			})
			if err != nil {
				return fmt.Errorf("create blob client: %w", err)
			}

			var store *configstore.Store
			if updateConfig {
				store, err = writeStore(cfg)
				if err != nil {
					return err
				}
				defer func() { _ = store.Close() }()
			}

			var docs contentsync.DocumentStore
			if store != nil {
				docs = store
			}
			svc := contentsync.New(blobClient, docs, log)

			results, err := svc.SyncMedia(cmd.Context(), contentsync.MediaOptions{
				SourceDir:  sourceDir,
				Images:     images,
				Icons:      icons,
				ResumePath: resumePath,
				DryRun:     dryRun,
				Force:      force,
			})
			if err != nil {
				return err
			}
			log.Info("media sync complete", logger.Int("uploaded", len(results)))

			if updateConfig && !dryRun {
				if err := svc.PatchConfig(cmd.Context(), results); err != nil {
					return fmt.Errorf("update config documents: %w", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source", "public", "local directory holding images/ and icons/")
	cmd.Flags().BoolVar(&images, "images", false, "sync the images/ tree")
	cmd.Flags().BoolVar(&icons, "icons", false, "sync the icons/ tree")
	cmd.Flags().BoolVar(&all, "all", false, "sync images and icons")
	cmd.Flags().StringVar(&resumePath, "resume", os.Getenv("RESUME_SOURCE"), "path to a resume document to upload")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log planned uploads without writing anything")
	cmd.Flags().BoolVar(&force, "force", false, "re-upload objects that already exist remotely")
	cmd.Flags().BoolVar(&updateConfig, "update-config", false, "patch remote content documents with uploaded URLs")

	return cmd
}

// writeStore connects to the config store with the write credential.
func writeStore(cfg *config.Config) (*configstore.Store, error) {
	if !cfg.ConfigStore.Configured() {
		return nil, fmt.Errorf("config store is not configured")
	}
	client, err := configstore.NewClient(configstore.Config{
		Address:  cfg.ConfigStore.Address,
		Username: cfg.ConfigStore.WriteUsername,
		Password: cfg.ConfigStore.WritePassword,
		DB:       cfg.ConfigStore.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to config store: %w", err)
	}
	return configstore.New(client, cfg.ConfigStore.Timeout), nil
}
