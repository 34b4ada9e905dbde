// ABOUTME: Package documentation for blob
// ABOUTME: Describes the presigned object storage layer for product attachments

// Package blob provides object storage access for product attachments.
//
// Attachment bytes never pass through the API server. Instead the server
// hands clients short-lived presigned URLs: a PUT URL to upload an
// attachment directly to the bucket, and a GET URL to download one.
// The server only records the storage key alongside the product row.
//
// The implementation targets any S3-compatible endpoint (AWS S3, MinIO)
// via the AWS SDK presign client.
package blob
