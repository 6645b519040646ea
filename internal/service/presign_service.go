package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"slpece/internal/pkg/storage"
)

// ErrObjectNotFound 存储中不存在该对象
var ErrObjectNotFound = errors.New("object not found")

// DefaultPresignExpiry 未指定 expires_in 时的过期时间
const DefaultPresignExpiry = time.Hour

// PresignService 预签名URL服务
type PresignService struct {
	storage storage.Storage
}

// NewPresignService 创建预签名服务
func NewPresignService(st storage.Storage) *PresignService {
	return &PresignService{storage: st}
}

// PresignResult 预签名结果
type PresignResult struct {
	URL    string `json:"url"`
	Bucket string `json:"bucket,omitempty"`
	Key    string `json:"key"`
}

// GetDownloadURL 解析 s3://bucket/key 并生成下载URL
// 后端能为任意 bucket 签名时使用 URI 中的 bucket，否则按 key 在已配置的存储中签名，
// 此时对象必须已存在
func (s *PresignService) GetDownloadURL(ctx context.Context, s3URI string, expiresIn time.Duration) (*PresignResult, error) {
	ref, err := storage.ParseS3URI(s3URI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if expiresIn <= 0 {
		expiresIn = DefaultPresignExpiry
	}

	var url string
	if presigner, ok := s.storage.(storage.BucketPresigner); ok {
		url, err = presigner.PresignBucketObject(ctx, ref.Bucket, ref.Key, expiresIn)
	} else {
		var exists bool
		if exists, err = s.storage.Exists(ctx, ref.Key); err != nil {
			return nil, fmt.Errorf("check object: %w", err)
		}
		if !exists {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, ref.Key)
		}
		url, err = s.storage.GetPresignedDownloadURL(ctx, ref.Key, expiresIn)
	}
	if err != nil {
		if errors.Is(err, storage.ErrBucketMismatch) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("presign download: %w", err)
	}

	return &PresignResult{URL: url, Bucket: ref.Bucket, Key: ref.Key}, nil
}

// GetUploadURL 生成客户端直传URL
func (s *PresignService) GetUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) (*PresignResult, error) {
	key, err := cleanKey(key)
	if err != nil {
		return nil, err
	}
	if expiresIn <= 0 {
		expiresIn = DefaultPresignExpiry
	}

	url, err := s.storage.GetPresignedUploadURL(ctx, key, contentType, expiresIn)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupported) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("presign upload: %w", err)
	}
	return &PresignResult{URL: url, Key: key}, nil
}

// cleanKey 规范化对象 key，拒绝空 key 与目录穿越
func cleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: key must not contain '..'", ErrInvalidInput)
		}
	}
	key = strings.TrimPrefix(path.Clean("/"+key), "/")
	if key == "" {
		return "", fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	return key, nil
}
