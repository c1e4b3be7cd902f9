package service

import (
	"context"
	"io"
)

// ImageStore 帖子图片的对象存储，posts.image 保存对象 key
type ImageStore interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Delete(ctx context.Context, objectName string) error
	PublicURL(objectName string) string
}
