package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"connector-inventory/core/storage"
	"connector-inventory/feature/reconcile"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Log writes the run summary to the application logger, one entry for the
// aggregate and one per unmatched device so operators can grep for them.
func Log(log *zap.Logger, summary *reconcile.Summary) {
	log.Info("reconciliation finished",
		zap.String("run_id", summary.RunID),
		zap.Int("devices_processed", summary.DevicesProcessed),
		zap.Int("connectors_created", summary.ConnectorsCreated),
		zap.Int("unmatched", len(summary.UnmatchedDevices)),
		zap.Int("skipped", len(summary.SkippedDevices)),
		zap.Bool("dry_run", summary.DryRun))

	for _, deviceID := range summary.UnmatchedDevices {
		log.Warn("station not found for device id from cloud topic",
			zap.String("run_id", summary.RunID),
			zap.String("device", deviceID))
	}
}

// Uploader writes run summaries to object storage.
type Uploader struct {
	client storage.Client
	bucket string
	prefix string
}

// NewUploader creates an uploader targeting the configured bucket.
func NewUploader(client storage.Client, bucket string, cfg Config) *Uploader {
	return &Uploader{client: client, bucket: bucket, prefix: cfg.Prefix}
}

// Upload stores the summary as a JSON object and returns the object name.
func (u *Uploader) Upload(ctx context.Context, summary *reconcile.Summary) (string, error) {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check report bucket %s: %w", u.bucket, err)
	}
	if !exists {
		return "", fmt.Errorf("report bucket %s does not exist", u.bucket)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal run summary: %w", err)
	}

	objectName := fmt.Sprintf("%s/connector-sync-%s.json", u.prefix, summary.RunID)
	_, err = u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return "", fmt.Errorf("failed to upload run summary: %w", err)
	}
	return objectName, nil
}
