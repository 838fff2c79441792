package storage

import (
	"context"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	key         string
	contentType string
	body        []byte
	deleted     []string
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.key = *in.Key
	f.contentType = *in.ContentType
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakePutter) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deleted = append(f.deleted, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadBytes(t *testing.T) {
	fake := &fakePutter{}
	store := &awsS3{client: fake, bucket: "trace", region: "ap-southeast-1"}

	key, err := store.UploadBytes(context.Background(), "/qr/../qr/TMR-1.png", []byte("png"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "qr/TMR-1.png", key)
	assert.Equal(t, "image/png", fake.contentType)
	assert.Equal(t, "png", string(fake.body))

	link := store.GetPublicLinkKey(key)
	assert.Equal(t, "https://trace.s3.ap-southeast-1.amazonaws.com/qr/TMR-1.png", link)
	assert.Equal(t, key, store.GetObjectKeyFromLink(link))

	require.NoError(t, store.DeleteFile(context.Background(), key))
	assert.Equal(t, []string{key}, fake.deleted)
}

func TestUnconfiguredStore(t *testing.T) {
	store := &awsS3{}

	_, err := store.UploadBytes(context.Background(), "k", nil, "image/png")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.ErrorIs(t, store.DeleteFile(context.Background(), "k"), ErrNotConfigured)
}
