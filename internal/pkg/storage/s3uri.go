package storage

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidS3URI s3 URI 格式错误
var ErrInvalidS3URI = errors.New("invalid s3 uri, expected s3://bucket/key")

// ObjectRef bucket + key
type ObjectRef struct {
	Bucket string
	Key    string
}

// ParseS3URI 解析 s3://bucket/path/to/key
// 也接受虚拟主机风格的 https://bucket.s3.<region>.amazonaws.com/key
func ParseS3URI(raw string) (ObjectRef, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ObjectRef{}, ErrInvalidS3URI
	}

	u, err := url.Parse(raw)
	if err != nil {
		return ObjectRef{}, ErrInvalidS3URI
	}

	var ref ObjectRef
	switch strings.ToLower(u.Scheme) {
	case "s3":
		ref = ObjectRef{Bucket: u.Host, Key: strings.TrimPrefix(u.Path, "/")}
	case "http", "https":
		host := strings.ToLower(u.Host)
		idx := strings.Index(host, ".s3")
		if idx <= 0 || !strings.HasSuffix(host, ".amazonaws.com") {
			return ObjectRef{}, ErrInvalidS3URI
		}
		ref = ObjectRef{Bucket: u.Host[:idx], Key: strings.TrimPrefix(u.Path, "/")}
	default:
		return ObjectRef{}, ErrInvalidS3URI
	}

	if ref.Bucket == "" || ref.Key == "" || strings.HasSuffix(ref.Key, "/") {
		return ObjectRef{}, ErrInvalidS3URI
	}
	return ref, nil
}
