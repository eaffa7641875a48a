package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: dir})
	require.NoError(t, err)

	p := "applicant_certificates/cert.pdf"
	require.NoError(t, s.Save(ctx, p, bytes.NewReader([]byte("%PDF-1.4")), "application/pdf"))

	data, err := os.ReadFile(filepath.Join(dir, p))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	ok, err := s.Exists(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, p))
	ok, err = s.Exists(ctx, p)
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, p))
	assert.Equal(t, "/storage/"+p, s.URL(p))
}

func TestLocalStorageStaysInsideBase(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewLocalStorage(Config{BasePath: filepath.Join(dir, "root")})
	require.NoError(t, err)

	require.NoError(t, s.Save(ctx, "../../escape.pdf", strings.NewReader("x"), "application/pdf"))
	_, err = os.Stat(filepath.Join(dir, "escape.pdf"))
	assert.True(t, os.IsNotExist(err))

	ok, err := s.Exists(ctx, "escape.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

// failingCloseFile writes to a real file but reports an error on Close,
// the way a deferred flush to a full disk does.
type failingCloseFile struct {
	*os.File
}

func (f failingCloseFile) Close() error {
	_ = f.File.Close()
	return errors.New("no space left on device")
}

func TestWriteFileRemovesFileWhenCloseFails(t *testing.T) {
	full := filepath.Join(t.TempDir(), "cert.pdf")

	err := writeFile(full, strings.NewReader("%PDF-1.4"), func(p string) (io.WriteCloser, error) {
		f, err := os.Create(p)
		if err != nil {
			return nil, err
		}
		return failingCloseFile{f}, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to close file")
	_, statErr := os.Stat(full)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewObjectPath(t *testing.T) {
	p := NewObjectPath("/applicant_kcse_certificates/", "PDF")
	assert.True(t, strings.HasPrefix(p, "applicant_kcse_certificates/"))
	assert.True(t, strings.HasSuffix(p, ".pdf"))
	assert.NotEqual(t, p, NewObjectPath("applicant_kcse_certificates", ".pdf"))
}

type mockObjectAPI struct {
	mock.Mock
}

func (m *mockObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, *in.Key)
	return &s3.PutObjectOutput{}, args.Error(0)
}

func (m *mockObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	args := m.Called(ctx, *in.Key)
	return &s3.DeleteObjectOutput{}, args.Error(0)
}

func (m *mockObjectAPI) HeadObject(ctx context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	args := m.Called(ctx, *in.Key)
	return &s3.HeadObjectOutput{}, args.Error(0)
}

func TestS3Storage(t *testing.T) {
	ctx := context.Background()
	api := new(mockObjectAPI)
	s := &S3Storage{client: api, bucket: "certs", baseURL: "https://cdn.test"}

	api.On("PutObject", ctx, "a/b.pdf").Return(nil).Once()
	api.On("HeadObject", ctx, "a/b.pdf").Return(nil).Once()
	api.On("HeadObject", ctx, "a/missing.pdf").Return(&types.NotFound{}).Once()
	api.On("DeleteObject", ctx, "a/b.pdf").Return(errors.New("boom")).Once()

	require.NoError(t, s.Save(ctx, "a/b.pdf", strings.NewReader("x"), "application/pdf"))

	ok, err := s.Exists(ctx, "a/b.pdf")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Exists(ctx, "a/missing.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Error(t, s.Delete(ctx, "a/b.pdf"))
	assert.Equal(t, "https://cdn.test/a/b.pdf", s.URL("a/b.pdf"))
	api.AssertExpectations(t)
}
