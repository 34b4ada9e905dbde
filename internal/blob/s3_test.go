// ABOUTME: Tests for the S3 presigner
// ABOUTME: Uses a stub presign client to verify key generation and URL plumbing

package blob

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPresignClient struct {
	putURL string
	getURL string
	err    error

	lastPutKey string
	lastGetKey string
}

func (s *stubPresignClient) PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastPutKey = *in.Key
	return &v4.PresignedHTTPRequest{URL: s.putURL, Method: "PUT"}, nil
}

func (s *stubPresignClient) PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.lastGetKey = *in.Key
	return &v4.PresignedHTTPRequest{URL: s.getURL, Method: "GET"}, nil
}

func newStubPresigner(stub *stubPresignClient) *S3Presigner {
	return &S3Presigner{client: stub, bucket: "test-bucket", logger: slog.Default()}
}

func TestPresignUpload(t *testing.T) {
	stub := &stubPresignClient{putURL: "https://bucket.example/put"}
	p := newStubPresigner(stub)

	key, url, err := p.PresignUpload(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/put", url)
	assert.Equal(t, key, stub.lastPutKey)
	assert.True(t, strings.HasPrefix(key, "products/"), "key %q should be date-sharded under products/", key)
}

func TestPresignUpload_DistinctKeys(t *testing.T) {
	stub := &stubPresignClient{putURL: "https://bucket.example/put"}
	p := newStubPresigner(stub)

	first, _, err := p.PresignUpload(context.Background())
	require.NoError(t, err)
	second, _, err := p.PresignUpload(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "each upload gets its own storage key")
}

func TestPresignUpload_Error(t *testing.T) {
	stub := &stubPresignClient{err: errors.New("endpoint unreachable")}
	p := newStubPresigner(stub)

	_, _, err := p.PresignUpload(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "presigning upload")
}

func TestPresignDownload(t *testing.T) {
	stub := &stubPresignClient{getURL: "https://bucket.example/get"}
	p := newStubPresigner(stub)

	url, err := p.PresignDownload(context.Background(), "products/2026/08/abc")
	require.NoError(t, err)
	assert.Equal(t, "https://bucket.example/get", url)
	assert.Equal(t, "products/2026/08/abc", stub.lastGetKey)
}

func TestPresignDownload_Error(t *testing.T) {
	stub := &stubPresignClient{err: errors.New("endpoint unreachable")}
	p := newStubPresigner(stub)

	_, err := p.PresignDownload(context.Background(), "products/2026/08/abc")
	require.Error(t, err)
}
