package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	objects  map[string][]byte
	types    map[string]string
	failures int
	gets     int
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Bucket) + "/" + aws.ToString(in.Key)
	f.objects[key] = data
	f.types[key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gets++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("connection reset")
	}
	data, ok := f.objects[aws.ToString(in.Bucket)+"/"+aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func TestKey(t *testing.T) {
	store := NewWithClient(newFakeS3(), "bucket", "")
	userID := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	recordID := uuid.MustParse("22222222-2222-2222-2222-222222222222")

	key := store.Key(userID, recordID, types.TemplateClassic, ".pdf")
	assert.Equal(t, "resumes/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222/classic.pdf", key)

	store = NewWithClient(newFakeS3(), "bucket", "/exports/")
	assert.Equal(t, "exports/11111111-1111-1111-1111-111111111111/22222222-2222-2222-2222-222222222222/modern.docx",
		store.Key(userID, recordID, types.TemplateModern, "docx"))
	assert.Equal(t, "s3://bucket/a/b", store.URI("a/b"))
}

func TestPutAndGet(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "")
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "resumes/a.txt", "text/plain", []byte("JANE DOE")))
	assert.Equal(t, "text/plain", fake.types["bucket/resumes/a.txt"])

	data, err := store.Get(ctx, "resumes/a.txt")
	require.NoError(t, err)
	assert.Equal(t, "JANE DOE", string(data))
}

func TestGet_NotFound(t *testing.T) {
	fake := newFakeS3()
	store := NewWithClient(fake, "bucket", "")

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	assert.Equal(t, 1, fake.gets, "missing keys are not retried")
}

func TestGet_RetriesTransientErrors(t *testing.T) {
	fake := newFakeS3()
	fake.objects["bucket/k"] = []byte("ok")
	fake.failures = 2
	store := NewWithClient(fake, "bucket", "")
	store.backoff = 0

	data, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Equal(t, 3, fake.gets)

	fake.failures = 5
	fake.gets = 0
	_, err = store.Get(context.Background(), "k")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, getAttempts, fake.gets)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("S3_BUCKET", "docs")
	t.Setenv("S3_ENDPOINT", "http://localhost:9000")
	t.Setenv("S3_PATH_STYLE", "true")

	cfg := ConfigFromEnv()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "docs", cfg.Bucket)
	assert.Equal(t, "http://localhost:9000", cfg.Endpoint)
	assert.True(t, cfg.UsePathStyle)

	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
