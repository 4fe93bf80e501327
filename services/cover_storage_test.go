package services

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalCoverStorage(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "covers")
	storage, err := NewLocalCoverStorage(dir, "/covers/")
	require.NoError(t, err)

	require.NoError(t, storage.Put(ctx, "a.png", strings.NewReader("data"), "image/png"))
	content, err := os.ReadFile(filepath.Join(dir, "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(content))
	assert.Equal(t, "/covers/a.png", storage.URL("a.png"))

	require.NoError(t, storage.Remove(ctx, "a.png"))
	require.NoError(t, storage.Remove(ctx, "a.png"))
	_, err = os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(err))
}

type fakeS3 struct {
	puts    map[string]string
	deletes []string
}

func (f *fakeS3) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.puts[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)] = aws.ToString(in.ContentType) + ":" + string(data)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.deletes = append(f.deletes, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3CoverStorage(t *testing.T) {
	ctx := context.Background()
	client := &fakeS3{puts: map[string]string{}}
	storage := NewS3CoverStorage(client, "covers", "https://cdn.example.com")

	require.NoError(t, storage.Put(ctx, "b.webp", strings.NewReader("img"), "image/webp"))
	assert.Equal(t, "image/webp:img", client.puts["covers/b.webp"])
	assert.Equal(t, "https://cdn.example.com/b.webp", storage.URL("b.webp"))

	require.NoError(t, storage.Remove(ctx, "b.webp"))
	assert.Equal(t, []string{"b.webp"}, client.deletes)
}

func TestNewCoverStorageSelection(t *testing.T) {
	ctx := context.Background()

	storage, err := NewCoverStorage(ctx, map[string]string{"COVER_DIR": t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalCoverStorage{}, storage)

	_, err = NewCoverStorage(ctx, map[string]string{"COVER_STORAGE": "s3"})
	assert.Error(t, err)

	_, err = NewCoverStorage(ctx, map[string]string{"COVER_STORAGE": "ftp"})
	assert.Error(t, err)
}
