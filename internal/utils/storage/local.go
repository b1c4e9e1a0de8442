package storage

import (
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// localStorage keeps uploads on disk under root; they are served by the web
// app below urlPrefix.
type localStorage struct {
	root      string
	urlPrefix string
}

func NewLocalStorage(root, urlPrefix string) ImageStorage {
	return &localStorage{
		root:      root,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
	}
}

func (l *localStorage) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowTypes ...string) (string, error) {
	src, mtype, err := sniff(file, allowTypes...)
	if err != nil {
		return "", err
	}
	defer src.Close()

	objectKey := path.Join(folder, fileName+mtype.Extension())
	dst := filepath.Join(l.root, filepath.FromSlash(objectKey))
	if err := os.MkdirAll(filepath.Dir(dst), os.ModePerm); err != nil {
		return "", err
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", err
	}
	return objectKey, nil
}

func (l *localStorage) DeleteFile(objectKey string) error {
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(objectKey)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (l *localStorage) GetPublicLinkKey(objectKey string) string {
	return l.urlPrefix + "/" + objectKey
}

func (l *localStorage) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, l.urlPrefix+"/") {
		return ""
	}
	key := strings.TrimPrefix(link, l.urlPrefix+"/")
	if strings.Contains(key, "..") {
		return ""
	}
	return key
}
