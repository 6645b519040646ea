package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"slpece/internal/pkg/storage"
)

// DefaultRegion 未配置区域时使用；MinIO 默认也接受该区域
const DefaultRegion = "us-east-1"

// S3Storage AWS S3 / MinIO 存储（基于 minio-go）
type S3Storage struct {
	client        *minio.Client
	bucket        string
	presignExpiry int // 预签名URL过期时间（秒）
}

// Options S3 连接参数
type Options struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	PresignExpiry   int
}

// NewS3Storage 创建 S3 存储
// Region 为空时使用 DefaultRegion：minio-go 只有在区域已知时才在本地计算预签名，
// 否则每次预签名都会请求 GetBucketLocation
func NewS3Storage(opts Options) (*S3Storage, error) {
	if opts.Endpoint == "" {
		return nil, fmt.Errorf("s3 endpoint is required")
	}
	if opts.Region == "" {
		opts.Region = DefaultRegion
	}

	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}

	return &S3Storage{
		client:        client,
		bucket:        opts.Bucket,
		presignExpiry: opts.PresignExpiry,
	}, nil
}

// Upload 上传文件（服务端上传）
func (s *S3Storage) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) (string, error) {
	if _, err := s.client.PutObject(ctx, s.bucket, key, data, size, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	u := *s.client.EndpointURL()
	u.Path = "/" + s.bucket + "/" + key
	return u.String(), nil
}

// Download 下载文件
func (s *S3Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, key)
		}
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}
	return obj, nil
}

// GetPresignedUploadURL 获取预签名上传URL（客户端直传）
func (s *S3Storage) GetPresignedUploadURL(ctx context.Context, key string, contentType string, expiresIn time.Duration) (string, error) {
	expiry := storage.ClampExpiry(expiresIn, s.presignExpiry)
	u, err := s.client.PresignedPutObject(ctx, s.bucket, key, expiry)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned upload URL: %w", err)
	}
	return u.String(), nil
}

// GetPresignedDownloadURL 获取配置 bucket 下对象的预签名下载URL
func (s *S3Storage) GetPresignedDownloadURL(ctx context.Context, key string, expiresIn time.Duration) (string, error) {
	return s.PresignBucketObject(ctx, s.bucket, key, expiresIn)
}

// PresignBucketObject 获取任意 bucket 下对象的预签名下载URL
func (s *S3Storage) PresignBucketObject(ctx context.Context, bucket, key string, expiresIn time.Duration) (string, error) {
	expiry := storage.ClampExpiry(expiresIn, s.presignExpiry)
	u, err := s.client.PresignedGetObject(ctx, bucket, key, expiry, make(url.Values))
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned download URL: %w", err)
	}
	return u.String(), nil
}

// Delete 删除文件
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists 检查文件是否存在
func (s *S3Storage) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{}); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file existence: %w", err)
	}
	return true, nil
}

// GetStorageType 获取存储类型
func (s *S3Storage) GetStorageType() string {
	return string(storage.StorageTypeS3)
}

func isNotFound(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == 404
}
