package storage

import (
	"Recipe-Sharing/domain"
	"Recipe-Sharing/internal/utils"
	"fmt"
	"io"
	"mime/multipart"
	"slices"

	"github.com/gabriel-vasile/mimetype"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}

// ImageStorage stores uploaded files and hands back the object key under
// which they can be found again. Keys end in the extension of the detected
// content type, never the one the client sent.
type ImageStorage interface {
	UploadFile(fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error)
	DeleteFile(objectKey string) error
	GetPublicLinkKey(objectKey string) string
	GetObjectKeyFromLink(link string) string
}

// NewImageStorage picks the backend named by STORAGE_DRIVER.
func NewImageStorage() (ImageStorage, error) {
	switch utils.GetConfig("STORAGE_DRIVER") {
	case "s3":
		return NewAwsS3()
	case "local", "":
		return NewLocalStorage(utils.GetConfig("LOCAL_STORAGE_DIR"), "/images"), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", utils.GetConfig("STORAGE_DRIVER"))
	}
}

// sniff opens the upload, detects its content type and rewinds it.
func sniff(file *multipart.FileHeader, allowTypes ...string) (multipart.File, *mimetype.MIME, error) {
	f, err := file.Open()
	if err != nil {
		return nil, nil, err
	}

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	if len(allowTypes) > 0 && !slices.ContainsFunc(allowTypes, mtype.Is) {
		f.Close()
		return nil, nil, fmt.Errorf("%w: %s", domain.ErrInvalidImageFormat, mtype.String())
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		f.Close()
		return nil, nil, err
	}

	return f, mtype, nil
}
