package usecase

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"inkwell/pkg/s3"

	"github.com/stretchr/testify/assert"
)

type fakeStorage struct {
	objects map[string]string
	lastKey string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string]string{}}
}

func (f *fakeStorage) Upload(key string, body io.ReadSeeker, contentType string) (string, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	f.objects[key] = string(data)
	f.lastKey = key
	return "http://assets.local/" + key, nil
}

func (f *fakeStorage) Get(key string) (*s3.Object, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, nil
	}
	return &s3.Object{
		Body:          io.NopCloser(strings.NewReader(data)),
		ContentType:   "image/png",
		ContentLength: int64(len(data)),
	}, nil
}

func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write(data)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(1 << 20)
	assert.NoError(t, err)
	return form.File["image"][0]
}

func newTestUploadUseCase(storage StorageClient) *uploadUseCase {
	return &uploadUseCase{
		storage: storage,
		now:     func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

func TestUploadImage_Success(t *testing.T) {
	storage := newFakeStorage()
	uc := newTestUploadUseCase(storage)

	result, err := uc.UploadImage(makeFileHeader(t, "photo.png", "image/png", []byte("png-bytes")))

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(storage.lastKey, "uploads/"))
	assert.True(t, strings.HasSuffix(result.FileName, ".png"))
	assert.Equal(t, "http://assets.local/"+storage.lastKey, result.URL)
	assert.Equal(t, "png-bytes", storage.objects[storage.lastKey])
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	uc := newTestUploadUseCase(newFakeStorage())

	_, err := uc.UploadImage(makeFileHeader(t, "notes.txt", "text/plain", []byte("hi")))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadImage_StoreUnavailable(t *testing.T) {
	uc := newTestUploadUseCase(nil)

	_, err := uc.UploadImage(makeFileHeader(t, "photo.png", "image/png", []byte("x")))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestGetFile_RoundTrip(t *testing.T) {
	storage := newFakeStorage()
	uc := newTestUploadUseCase(storage)

	result, err := uc.UploadImage(makeFileHeader(t, "photo.png", "image/png", []byte("png-bytes")))
	assert.NoError(t, err)

	object, err := uc.GetFile(result.FileName)
	assert.NoError(t, err)
	data, _ := io.ReadAll(object.Body)
	assert.Equal(t, "png-bytes", string(data))
}

func TestGetFile_NotFound(t *testing.T) {
	uc := newTestUploadUseCase(newFakeStorage())

	_, err := uc.GetFile("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetFile_RejectsTraversal(t *testing.T) {
	uc := newTestUploadUseCase(newFakeStorage())

	for _, name := range []string{"", "../secret", "a/b.png", `a\b.png`} {
		_, err := uc.GetFile(name)
		assert.ErrorIs(t, err, ErrInvalidInput, name)
	}
}
