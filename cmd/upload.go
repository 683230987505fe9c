package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarjtakip/tarife-cli/internal/dataset"
	"github.com/sarjtakip/tarife-cli/pkg/kvapi"
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Push the merged dataset to the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if cfg.Upload.BaseURL == "" || cfg.Upload.APIKey == "" {
			return eris.New("upload.base_url and upload.api_key must be set")
		}

		records, err := dataset.Load(cfg.Output.DatasetPath)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return eris.Errorf("no dataset at %s, run the scraper first", cfg.Output.DatasetPath)
		}

		client := kvapi.New(cfg.Upload.BaseURL, cfg.Upload.APIKey)
		if err := client.Update(ctx, records); err != nil {
			return err
		}
		zap.L().Info("dataset uploaded", zap.Int("records", len(records)))

		health, err := client.Health(ctx)
		if err != nil {
			return eris.Wrap(err, "post-upload health check")
		}
		fmt.Printf("uploaded %d records, store reports %s with %d records\n",
			len(records), health.Status, health.DataCount)
		return nil
	},
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the remote store",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfg.Upload.BaseURL == "" {
			return eris.New("upload.base_url must be set")
		}
		client := kvapi.New(cfg.Upload.BaseURL, cfg.Upload.APIKey)
		health, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d records\n", health.Status, health.DataCount)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(healthCmd)
}
