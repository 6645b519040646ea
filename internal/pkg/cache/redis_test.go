package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	. "github.com/smartystreets/goconvey/convey"
)

type cachedStory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestRedisCache(t *testing.T) {
	Convey("RedisCache 基本读写", t, func() {
		m := miniredis.RunT(t)
		c := NewFromClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
		ctx := context.Background()

		Convey("未命中返回 ErrMiss", func() {
			var got cachedStory
			So(c.Get(ctx, StoryCacheKey("missing"), &got), ShouldEqual, ErrMiss)
		})

		Convey("Set/Get 往返 JSON", func() {
			So(c.Set(ctx, StoryCacheKey("s1"), cachedStory{ID: "s1", Name: "Lion"}, time.Minute), ShouldBeNil)

			var got cachedStory
			So(c.Get(ctx, StoryCacheKey("s1"), &got), ShouldBeNil)
			So(got.Name, ShouldEqual, "Lion")
		})

		Convey("过期后未命中", func() {
			So(c.Set(ctx, StoryCacheKey("s2"), cachedStory{ID: "s2"}, time.Second), ShouldBeNil)
			m.FastForward(2 * time.Second)

			ok, err := c.Exists(ctx, StoryCacheKey("s2"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("Delete 删除 key", func() {
			So(c.Set(ctx, RevokedTokenKey("jti"), true, time.Minute), ShouldBeNil)
			So(c.Delete(ctx, RevokedTokenKey("jti")), ShouldBeNil)

			ok, err := c.Exists(ctx, RevokedTokenKey("jti"))
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
		})
	})
}
