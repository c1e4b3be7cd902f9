package minio

import (
	"Gazette/internal/api/config"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ImageStore 帖子图片存储，对象 key 写入 posts.image
type ImageStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewImageStore(client *minio.Client, cfg config.MinIOConfig) *ImageStore {
	scheme := "http"
	if cfg.ExternalUseSSL {
		scheme = "https"
	}
	return &ImageStore{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: fmt.Sprintf("%s://%s/%s/", scheme, cfg.ExternalEndpoint, cfg.Bucket),
	}
}

// Upload 上传文件到MinIO
func (s *ImageStore) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if s.client == nil {
		return "", fmt.Errorf("minio client is not initialized")
	}

	info, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return info.Key, nil
}

// Delete 删除MinIO中的文件
func (s *ImageStore) Delete(ctx context.Context, objectName string) error {
	if s.client == nil {
		return fmt.Errorf("minio client is not initialized")
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// PublicURL 获取文件的公共访问URL
func (s *ImageStore) PublicURL(objectName string) string {
	return s.publicBase + objectName
}
