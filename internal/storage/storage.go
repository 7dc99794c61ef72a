package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrKeyInvalid  = errors.New("storage key invalid")
	ErrWriteFailed = errors.New("storage write failed")
)

// ObjectStorage 媒体文件存储边界
type ObjectStorage interface {
	// UploadImage 写入文件并返回可公开访问的 URL
	UploadImage(ctx context.Context, reader io.Reader, prefix, filename string) (string, error)
	// DeleteImage 按存储键删除文件，键不存在视为成功
	DeleteImage(ctx context.Context, key string) error
	// ExtractKey 从公开 URL 还原存储键，无法还原时返回空串
	ExtractKey(publicURL string) string
}

// LocalStorage 本地磁盘实现
type LocalStorage struct {
	baseDir       string
	publicBaseURL string
}

// NewLocalStorage 创建本地磁盘存储
func NewLocalStorage(baseDir, publicBaseURL string) *LocalStorage {
	return &LocalStorage{
		baseDir:       strings.TrimRight(baseDir, "/"),
		publicBaseURL: strings.TrimRight(publicBaseURL, "/"),
	}
}

// UploadImage 以随机键名写入文件
func (s *LocalStorage) UploadImage(ctx context.Context, reader io.Reader, prefix, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	key := fmt.Sprintf("%s/%s%s", strings.Trim(prefix, "/"), uuid.NewString(), ext)

	target := filepath.Join(s.baseDir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	defer out.Close()
	if _, err := io.Copy(out, reader); err != nil {
		_ = os.Remove(target)
		return "", fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return s.publicBaseURL + "/" + key, nil
}

// DeleteImage 删除存储键对应的文件
func (s *LocalStorage) DeleteImage(ctx context.Context, key string) error {
	cleaned := strings.Trim(key, "/")
	if cleaned == "" || strings.Contains(cleaned, "..") {
		return ErrKeyInvalid
	}
	target := filepath.Join(s.baseDir, filepath.FromSlash(cleaned))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// ExtractKey 从公开 URL 还原存储键
func (s *LocalStorage) ExtractKey(publicURL string) string {
	trimmed := strings.TrimSpace(publicURL)
	if trimmed == "" || s.publicBaseURL == "" {
		return ""
	}
	if !strings.HasPrefix(trimmed, s.publicBaseURL+"/") {
		return ""
	}
	return strings.TrimPrefix(trimmed, s.publicBaseURL+"/")
}
