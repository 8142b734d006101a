// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client to provide a simplified interface for the
// operations the reconciler needs: checking bucket access and uploading run
// reports. This abstraction supports both AWS S3 and self-hosted MinIO
// instances, and makes the storage interactions easy to mock in tests
// (see core/storage/mocks).
package storage
