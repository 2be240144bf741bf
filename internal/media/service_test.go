package media

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishantpawar/institute-backend/pkg/config"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

type stubSigner struct {
	signedObject  string
	signedMime    string
	signErr       error
	deletedBucket string
	deletedObject string
	deleteErr     error
}

func (s *stubSigner) DefaultBucket() string { return "institute-media" }

func (s *stubSigner) SignedURL(bucket, object, contentType string, expires time.Duration) (string, error) {
	if s.signErr != nil {
		return "", s.signErr
	}
	s.signedObject = object
	s.signedMime = contentType
	return "https://storage.example/" + object + "?signed", nil
}

func (s *stubSigner) DeleteObject(ctx context.Context, bucket, object string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deletedBucket = bucket
	s.deletedObject = object
	return nil
}

func newTestService(t *testing.T, signer *stubSigner) Service {
	t.Helper()
	svc, err := NewService(signer,
		config.GCSConfig{BucketName: "institute-media", UploadURLExpiry: 15 * time.Minute, DownloadURLExpiry: time.Hour},
		config.MediaConfig{MaxUploadMB: 10},
	)
	require.NoError(t, err)
	return svc
}

func TestSignedUploadImage(t *testing.T) {
	signer := &stubSigner{}
	svc := newTestService(t, signer)

	out, err := svc.SignedUpload(context.Background(), UploadInput{
		Kind:      "image",
		FileName:  "Cover Photo.PNG",
		MimeType:  "image/png",
		SizeBytes: 1024,
	})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.True(t, strings.HasPrefix(out.StorageKey, "media/image/"))
	assert.True(t, strings.HasSuffix(out.StorageKey, "/Cover-Photo.PNG"))
	assert.Equal(t, out.StorageKey, signer.signedObject)
	assert.Equal(t, "image/png", out.ContentType)
	assert.Contains(t, out.UploadURL, "signed")
}

func TestSignedUploadRejectsMimeKindMismatch(t *testing.T) {
	svc := newTestService(t, &stubSigner{})

	_, err := svc.SignedUpload(context.Background(), UploadInput{
		Kind:      "image",
		FileName:  "movie.mp4",
		MimeType:  "video/mp4",
		SizeBytes: 1024,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSignedUploadRejectsOversizedFile(t *testing.T) {
	svc := newTestService(t, &stubSigner{})

	_, err := svc.SignedUpload(context.Background(), UploadInput{
		Kind:      "video",
		FileName:  "lecture.mp4",
		MimeType:  "video/mp4",
		SizeBytes: 11 * 1024 * 1024,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSignedUploadRejectsUnknownKind(t *testing.T) {
	svc := newTestService(t, &stubSigner{})

	_, err := svc.SignedUpload(context.Background(), UploadInput{
		Kind:      "document",
		FileName:  "syllabus.pdf",
		MimeType:  "application/pdf",
		SizeBytes: 100,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestSignedUploadSanitizesTraversal(t *testing.T) {
	signer := &stubSigner{}
	svc := newTestService(t, signer)

	out, err := svc.SignedUpload(context.Background(), UploadInput{
		Kind:      "image",
		FileName:  "../../etc/passwd",
		MimeType:  "image/png",
		SizeBytes: 10,
	})
	require.NoError(t, err)
	assert.NotContains(t, out.StorageKey, "..")
	assert.True(t, strings.HasSuffix(out.StorageKey, "/passwd"))
}

func TestRemove(t *testing.T) {
	signer := &stubSigner{}
	svc := newTestService(t, signer)

	require.NoError(t, svc.Remove(context.Background(), "media/image/abc/cover.png"))
	assert.Equal(t, "institute-media", signer.deletedBucket)
	assert.Equal(t, "media/image/abc/cover.png", signer.deletedObject)

	err := svc.Remove(context.Background(), "  ")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
}

func TestRemoveWrapsStorageFailure(t *testing.T) {
	signer := &stubSigner{deleteErr: errors.New("503")}
	svc := newTestService(t, signer)

	err := svc.Remove(context.Background(), "media/image/abc/cover.png")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeDependency, typed.Code())
}
