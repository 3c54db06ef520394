package horses

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	pkgerrors "github.com/mlegrand/equilog-backend/pkg/errors"
)

// photoStore is the storage surface needed for horse photos.
type photoStore interface {
	Upload(ctx context.Context, bucket, object, contentType string, data []byte) error
	Delete(ctx context.Context, bucket, object string) error
	SignedReadURL(bucket, object string, expires time.Duration) (string, error)
}

// PhotoUpload carries one decoded multipart image.
type PhotoUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

var filenameSanitizeRe = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// UploadPhoto stores the image under {owner}/{horse}/{unixts}_{filename},
// updates the horse's photo_path, and returns a fresh signed URL. The
// previous object, if any, is deleted best-effort after the path swap.
func (s *service) UploadPhoto(ctx context.Context, ownerID, horseID uuid.UUID, upload PhotoUpload) (*PhotoResult, error) {
	if s.photos == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "photo storage is not configured")
	}

	row, err := s.RequireOwned(ctx, ownerID, horseID)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(upload.ContentType, "image/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo must be an image")
	}
	maxBytes := int64(s.photosCfg.MaxUploadMB) * 1024 * 1024
	if maxBytes > 0 && int64(len(upload.Data)) > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("photo exceeds %d MB", s.photosCfg.MaxUploadMB))
	}
	if len(upload.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "photo is empty")
	}

	object := photoObjectKey(ownerID, horseID, upload.Filename, time.Now())
	bucket := s.storageCfg.PhotoBucket

	if err := s.photos.Upload(ctx, bucket, object, upload.ContentType, upload.Data); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload photo")
	}

	affected, err := s.repo.UpdatePhotoPath(ctx, ownerID, horseID, object)
	if err != nil || affected == 0 {
		// Do not leave the uploaded object orphaned when the row update fails.
		if delErr := s.photos.Delete(ctx, bucket, object); delErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithHorseID(ctx, horseID.String()), "orphaned photo cleanup failed")
		}
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store photo path")
		}
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "horse not found")
	}

	if row.PhotoPath != nil && *row.PhotoPath != object {
		if delErr := s.photos.Delete(ctx, bucket, *row.PhotoPath); delErr != nil && s.logg != nil {
			s.logg.Warn(s.logg.WithHorseID(ctx, horseID.String()), "previous photo cleanup failed")
		}
	}

	url, err := s.photos.SignedReadURL(bucket, object, s.storageCfg.DownloadURLExpiry)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sign photo url")
	}

	return &PhotoResult{PhotoPath: object, PhotoURL: url}, nil
}

func photoObjectKey(ownerID, horseID uuid.UUID, filename string, now time.Time) string {
	base := path.Base(strings.TrimSpace(filename))
	base = filenameSanitizeRe.ReplaceAllString(base, "_")
	if base == "" || base == "." || base == "_" {
		base = "photo"
	}
	return fmt.Sprintf("%s/%s/%d_%s", ownerID, horseID, now.Unix(), base)
}
