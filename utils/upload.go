package utils

import (
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
)

const (
	MaxFileSize        = 5 * 1024 * 1024
	MaxFilesPerRequest = 10

	PaymentsDir = "payments"
	publicRoot  = "/uploads"
)

// Storage keeps uploaded images on local disk under Root and hands out
// /uploads/... URLs, which the router serves statically. With BaseURL set
// the URLs are absolute.
type Storage struct {
	Root    string
	BaseURL string
}

func NewStorage(root, baseURL string) *Storage {
	return &Storage{Root: root, BaseURL: strings.TrimRight(baseURL, "/")}
}

type pendingFile struct {
	data []byte
	ext  string
}

// SaveImages validates every file first and only then writes, so a bad
// file in the batch leaves nothing behind.
func (s *Storage) SaveImages(field, subdir string, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, apperr.Validation("no files uploaded")
	}
	if len(files) > MaxFilesPerRequest {
		return nil, apperr.Newf(apperr.KindValidation, "at most %d files per request", MaxFilesPerRequest)
	}

	pending := make([]pendingFile, 0, len(files))
	for _, fh := range files {
		pf, err := readImage(fh)
		if err != nil {
			return nil, err
		}
		pending = append(pending, pf)
	}

	dir := filepath.Join(s.Root, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	urls := make([]string, 0, len(pending))
	for _, pf := range pending {
		name := fileName(field, pf.ext)
		if err := os.WriteFile(filepath.Join(dir, name), pf.data, 0o644); err != nil {
			s.RemoveAll(urls)
			return nil, err
		}
		urls = append(urls, s.BaseURL+path.Join(publicRoot, filepath.ToSlash(subdir), name))
	}
	return urls, nil
}

func (s *Storage) SaveImage(field, subdir string, fh *multipart.FileHeader) (string, error) {
	urls, err := s.SaveImages(field, subdir, []*multipart.FileHeader{fh})
	if err != nil {
		return "", err
	}
	return urls[0], nil
}

// Remove deletes the file behind a /uploads URL. Missing files are ignored.
func (s *Storage) Remove(url string) error {
	url = strings.TrimPrefix(url, s.BaseURL)
	rel, ok := strings.CutPrefix(url, publicRoot+"/")
	if !ok || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.Root, filepath.FromSlash(rel)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *Storage) RemoveAll(urls []string) {
	for _, u := range urls {
		_ = s.Remove(u)
	}
}

func readImage(fh *multipart.FileHeader) (pendingFile, error) {
	if fh.Size > MaxFileSize {
		return pendingFile{}, apperr.Newf(apperr.KindValidation, "file %s exceeds 5MB limit", fh.Filename)
	}
	f, err := fh.Open()
	if err != nil {
		return pendingFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return pendingFile{}, err
	}
	if len(data) > MaxFileSize {
		return pendingFile{}, apperr.Newf(apperr.KindValidation, "file %s exceeds 5MB limit", fh.Filename)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return pendingFile{}, apperr.Newf(apperr.KindValidation, "file %s is not an image", fh.Filename)
	}
	return pendingFile{data: data, ext: mt.Extension()}, nil
}

// fileName follows <fieldname>-<timestamp>-<random>.<ext>.
func fileName(field, ext string) string {
	return fmt.Sprintf("%s-%d-%d%s", field, time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)
}

