package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"caseforge_backend/internal/config"
	"caseforge_backend/internal/util"
)

func TestLocalStoreAndDelete(t *testing.T) {
	dir := t.TempDir()
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: dir}})

	url, err := svc.Store(context.Background(), "avatars/u1", &FileUpload{
		Filename:    "me.PNG",
		ContentType: "image/png",
		Size:        4,
		Reader:      strings.NewReader("data"),
	}, util.AllowedImageExtensions)
	if err != nil {
		t.Fatalf("Store() error = %v", err)
	}
	if !strings.HasPrefix(url, "/uploads/avatars/u1/") || !strings.HasSuffix(url, ".png") {
		t.Fatalf("url = %q", url)
	}

	key := strings.TrimPrefix(url, "/uploads/")
	got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(key)))
	if err != nil || string(got) != "data" {
		t.Fatalf("stored file = %q, %v", got, err)
	}

	if err := svc.Delete(context.Background(), key); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(key))); !os.IsNotExist(err) {
		t.Errorf("file still present after delete: %v", err)
	}
}

func TestStoreRejectsExtension(t *testing.T) {
	svc := NewStorageService(&config.Config{Storage: config.StorageConfig{Type: util.StorageLocal, LocalPath: t.TempDir()}})
	_, err := svc.Store(context.Background(), "avatars", &FileUpload{Filename: "me.svg", Reader: strings.NewReader("")}, util.AllowedImageExtensions)
	if !errors.Is(err, util.ErrUnsupportedFile) {
		t.Fatalf("Store() error = %v, want ErrUnsupportedFile", err)
	}
}

func TestProviderURLs(t *testing.T) {
	cfg := &config.StorageConfig{
		MinioBucket: "caseforge",
		S3Bucket:    "cases",
		S3Region:    "eu-west-1",
		OSSBucket:   "cf",
		OSSEndpoint: "oss-cn-hangzhou.aliyuncs.com",
	}

	tests := []struct {
		name     string
		provider StorageProvider
		want     string
	}{
		{"local", &LocalStorageProvider{Config: cfg}, "/uploads/a/b.pdf"},
		{"minio", &MinioStorageProvider{Config: cfg}, "/caseforge/a/b.pdf"},
		{"s3", &S3StorageProvider{Config: cfg}, "https://cases.s3.eu-west-1.amazonaws.com/a/b.pdf"},
		{"s3 public", &S3StorageProvider{Config: &config.StorageConfig{S3PublicURL: "https://cdn.example.com/"}}, "https://cdn.example.com/a/b.pdf"},
		{"oss", &OSSStorageProvider{Config: cfg}, "https://cf.oss-cn-hangzhou.aliyuncs.com/a/b.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.provider.GetURL("a/b.pdf"); got != tt.want {
				t.Errorf("GetURL() = %q, want %q", got, tt.want)
			}
		})
	}
}
