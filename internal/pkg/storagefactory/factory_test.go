package storagefactory

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"slpece/internal/config"
	"slpece/internal/pkg/storage"
)

func TestNewStorage(t *testing.T) {
	Convey("NewStorage 按类型创建存储", t, func() {
		ctx := context.Background()

		Convey("local", func() {
			s, err := NewStorage(ctx, &config.StorageConfig{
				Type: "local",
				Local: &config.LocalConfig{
					BasePath:      t.TempDir(),
					BaseURL:       "http://localhost:8080/storage",
					PresignExpiry: 3600,
				},
			})
			So(err, ShouldBeNil)
			So(s.GetStorageType(), ShouldEqual, string(storage.StorageTypeLocal))
		})

		Convey("s3", func() {
			s, err := NewStorage(ctx, &config.StorageConfig{
				Type: "s3",
				S3: &config.S3Config{
					Endpoint: "s3.amazonaws.com",
					Region:   "us-east-1",
					Bucket:   "slpece-media",
					UseSSL:   true,
				},
			})
			So(err, ShouldBeNil)
			So(s.GetStorageType(), ShouldEqual, string(storage.StorageTypeS3))

			_, ok := s.(storage.BucketPresigner)
			So(ok, ShouldBeTrue)
		})

		Convey("缺少子配置", func() {
			for _, typ := range []string{"local", "oss", "s3"} {
				s, err := NewStorage(ctx, &config.StorageConfig{Type: typ})
				So(err, ShouldNotBeNil)
				So(s, ShouldBeNil)
			}
		})

		Convey("未知类型", func() {
			_, err := NewStorage(ctx, &config.StorageConfig{Type: "ftp"})
			So(err, ShouldNotBeNil)
		})
	})
}
