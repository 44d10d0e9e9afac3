package usecase

import (
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"inkwell/pkg/s3"

	"github.com/google/uuid"
)

const uploadPrefix = "uploads/"

// StorageClient is the blob-store surface the upload flow needs; satisfied
// by pkg/s3.Client.
type StorageClient interface {
	Upload(key string, body io.ReadSeeker, contentType string) (string, error)
	Get(key string) (*s3.Object, error)
}

type UploadResult struct {
	URL      string `json:"url"`
	FileName string `json:"fileName"`
}

type UploadUseCase interface {
	UploadImage(fileHeader *multipart.FileHeader) (*UploadResult, error)
	GetFile(name string) (*s3.Object, error)
}

type uploadUseCase struct {
	storage StorageClient
	now     func() time.Time
}

func NewUploadUseCase(storage StorageClient) UploadUseCase {
	return &uploadUseCase{storage: storage, now: time.Now}
}

func (uc *uploadUseCase) UploadImage(fileHeader *multipart.FileHeader) (*UploadResult, error) {
	if uc.storage == nil {
		return nil, ErrStoreUnavailable
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("%w: only image uploads are allowed", ErrInvalidInput)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	ext := strings.TrimPrefix(contentType, "image/")
	name := fmt.Sprintf("%d-%s.%s", uc.now().UnixMilli(), uuid.New().String()[:8], ext)

	url, err := uc.storage.Upload(uploadPrefix+name, file, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	return &UploadResult{URL: url, FileName: name}, nil
}

// GetFile fetches an uploaded object by bare file name. Returns ErrNotFound
// when the object does not exist; names with path separators are rejected.
func (uc *uploadUseCase) GetFile(name string) (*s3.Object, error) {
	if uc.storage == nil {
		return nil, ErrStoreUnavailable
	}
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: invalid file name", ErrInvalidInput)
	}

	object, err := uc.storage.Get(uploadPrefix + name)
	if err != nil {
		return nil, err
	}
	if object == nil {
		return nil, ErrNotFound
	}
	return object, nil
}
