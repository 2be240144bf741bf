package media

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"

	"github.com/nishantpawar/institute-backend/pkg/config"
	"github.com/nishantpawar/institute-backend/pkg/enums"
	pkgerrors "github.com/nishantpawar/institute-backend/pkg/errors"
)

var mimeTypesByKind = map[enums.MediaKind][]string{
	enums.MediaKindImage: {"image/png", "image/jpeg", "image/webp", "image/gif"},
	enums.MediaKindVideo: {"video/mp4", "video/webm"},
}

// storageSigner is the GCS surface the service needs.
type storageSigner interface {
	DefaultBucket() string
	SignedURL(bucket, object, contentType string, expires time.Duration) (string, error)
	DeleteObject(ctx context.Context, bucket, object string) error
}

// Service hands out presigned upload URLs and deletes objects that lost
// their owning record.
type Service interface {
	SignedUpload(ctx context.Context, input UploadInput) (*UploadOutput, error)
	Remove(ctx context.Context, storageKey string) error
}

type service struct {
	signer         storageSigner
	uploadTTL      time.Duration
	maxUploadBytes int64
}

// NewService constructs the media service.
func NewService(signer storageSigner, gcsCfg config.GCSConfig, mediaCfg config.MediaConfig) (Service, error) {
	if signer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "storage signer required")
	}
	if gcsCfg.UploadURLExpiry <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upload url expiry must be positive")
	}
	if mediaCfg.MaxUploadMB <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "max upload size must be positive")
	}
	return &service{
		signer:         signer,
		uploadTTL:      gcsCfg.UploadURLExpiry,
		maxUploadBytes: int64(mediaCfg.MaxUploadMB) * 1024 * 1024,
	}, nil
}

// UploadInput models a presign request.
type UploadInput struct {
	Kind      string `json:"kind" validate:"required"`
	FileName  string `json:"fileName" validate:"required"`
	MimeType  string `json:"mimeType" validate:"required"`
	SizeBytes int64  `json:"sizeBytes" validate:"gt=0"`
}

// UploadOutput is returned to the admin client. The client PUTs the file
// to UploadURL with the exact ContentType, then stores StorageKey on the
// owning record.
type UploadOutput struct {
	Success     bool      `json:"success"`
	StorageKey  string    `json:"storageKey"`
	UploadURL   string    `json:"uploadUrl"`
	ContentType string    `json:"contentType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

func (s *service) SignedUpload(ctx context.Context, input UploadInput) (*UploadOutput, error) {
	kind, err := enums.ParseMediaKind(input.Kind)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	fileName := strings.TrimSpace(input.FileName)
	if fileName == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "fileName is required")
	}

	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sizeBytes must be positive")
	}
	if input.SizeBytes > s.maxUploadBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %d byte upload limit", s.maxUploadBytes))
	}

	mimeType := strings.ToLower(strings.TrimSpace(input.MimeType))
	if !isAllowedMime(kind, mimeType) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("mime type %q is not allowed for %s uploads", mimeType, kind))
	}

	storageKey := buildStorageKey(kind, fileName)
	uploadURL, err := s.signer.SignedURL(s.signer.DefaultBucket(), storageKey, mimeType, s.uploadTTL)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "signing upload url")
	}

	return &UploadOutput{
		Success:     true,
		StorageKey:  storageKey,
		UploadURL:   uploadURL,
		ContentType: mimeType,
		ExpiresAt:   time.Now().Add(s.uploadTTL),
	}, nil
}

// Remove deletes the object behind a storage key. Deleting an already
// missing object succeeds.
func (s *service) Remove(ctx context.Context, storageKey string) error {
	storageKey = strings.TrimSpace(storageKey)
	if storageKey == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "storage key required")
	}
	if err := s.signer.DeleteObject(ctx, s.signer.DefaultBucket(), storageKey); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deleting object")
	}
	return nil
}

func isAllowedMime(kind enums.MediaKind, mimeType string) bool {
	for _, candidate := range mimeTypesByKind[kind] {
		if candidate == mimeType {
			return true
		}
	}
	return false
}

func buildStorageKey(kind enums.MediaKind, fileName string) string {
	id := uuid.New()
	cleanName := sanitizeFileName(fileName)
	if cleanName == "" {
		cleanName = id.String()
	}
	return fmt.Sprintf("media/%s/%s/%s", kind, id.String(), cleanName)
}

func sanitizeFileName(name string) string {
	clean := path.Base(strings.TrimSpace(name))
	if clean == "." || clean == "/" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(clean))
	for _, r := range clean {
		switch {
		case r == '/' || r == '\\' || unicode.IsControl(r):
			continue
		case unicode.IsSpace(r):
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_.")
}
