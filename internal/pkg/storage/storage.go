package storage

import (
	"context"
	"errors"
	"io"
	"mime"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound 对象不存在
var ErrNotFound = errors.New("object not found")

// ErrBucketMismatch 请求的 bucket 与后端配置不一致
var ErrBucketMismatch = errors.New("bucket not served by this storage")

// ErrUnsupported 后端不支持该操作
var ErrUnsupported = errors.New("operation not supported by this storage")

// Storage 存储接口
type Storage interface {
	// Upload 上传文件（服务端上传），返回访问URL
	Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error)

	// Download 下载文件
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// GetPresignedUploadURL 获取预签名上传URL（客户端直传）
	GetPresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error)

	// GetPresignedDownloadURL 获取预签名下载URL
	GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error)

	// Delete 删除文件
	Delete(ctx context.Context, key string) error

	// Exists 检查文件是否存在
	Exists(ctx context.Context, key string) (bool, error)

	// GetStorageType 获取存储类型
	GetStorageType() string
}

// BucketPresigner 可以为任意 bucket 生成预签名URL的存储（如 S3）
type BucketPresigner interface {
	PresignBucketObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error)
}

// StorageType 存储类型
type StorageType string

const (
	StorageTypeLocal StorageType = "local" // 本地文件系统
	StorageTypeOSS   StorageType = "oss"   // 阿里云OSS
	StorageTypeS3    StorageType = "s3"    // AWS S3 / MinIO
)

// ClampExpiry 请求的过期时间不能超过后端配置的上限（秒，<=0 表示不限制）
func ClampExpiry(requested time.Duration, maxSeconds int) time.Duration {
	if maxSeconds <= 0 {
		return requested
	}
	limit := time.Duration(maxSeconds) * time.Second
	if requested <= 0 || requested > limit {
		return limit
	}
	return requested
}

// ContentTypeByExt 根据扩展名推断 Content-Type
func ContentTypeByExt(filename string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(filename))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
