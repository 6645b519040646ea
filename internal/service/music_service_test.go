package service

import (
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMusicService(t *testing.T) {
	Convey("背景音乐服务", t, func() {
		ctx := context.Background()
		musicRepo := &fakeMusicRepo{}
		categories := newFakeCategoryRepo()
		svc := NewMusicService(musicRepo, categories)

		calm, err := svc.CreateMusic(ctx, &CreateMusicRequest{
			Mood:     "calm",
			Category: "bedtime",
			SubCategories: []SubCategoryInput{
				{Name: "piano", MusicURLs: []string{"https://music/p1.mp3", "https://music/p2.mp3"}},
				{Name: "rain", MusicURLs: []string{"https://music/r1.mp3"}},
			},
		})
		So(err, ShouldBeNil)
		_, err = svc.CreateMusic(ctx, &CreateMusicRequest{
			Mood:          "happy",
			Category:      "adventure",
			SubCategories: []SubCategoryInput{{Name: "drums"}},
		})
		So(err, ShouldBeNil)

		Convey("创建时返回填充后的子分类", func() {
			So(len(calm.SubCategoryIDs), ShouldEqual, 2)
			So(calm.SubCategories[0].SubCategory, ShouldEqual, "piano")
			So(len(calm.SubCategories[0].MusicURLs), ShouldEqual, 2)
		})

		Convey("缺少 mood 或 category", func() {
			_, err := svc.CreateMusic(ctx, &CreateMusicRequest{Category: "bedtime"})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
			_, err = svc.CreateMusic(ctx, &CreateMusicRequest{Mood: "calm"})
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("音乐写入失败时删除子分类", func() {
			musicRepo.createErr = errors.New("boom")
			before := len(categories.items)
			_, err := svc.CreateMusic(ctx, &CreateMusicRequest{
				Mood: "sad", Category: "rainy", SubCategories: []SubCategoryInput{{Name: "cello"}},
			})
			So(err, ShouldNotBeNil)
			So(len(categories.items), ShouldEqual, before)
		})

		Convey("按情绪搜索", func() {
			res, err := svc.SearchMusic(ctx, "calm", "", "")
			So(err, ShouldBeNil)
			So(len(res), ShouldEqual, 1)
			So(len(res[0].SubCategories), ShouldEqual, 2)
		})

		Convey("按子分类过滤", func() {
			res, err := svc.SearchMusic(ctx, "", "bedtime", "rain")
			So(err, ShouldBeNil)
			So(len(res[0].SubCategories), ShouldEqual, 1)
			So(res[0].SubCategories[0].MusicURLs, ShouldResemble, []string{"https://music/r1.mp3"})
		})

		Convey("子分类不存在返回 ErrMusicNotFound", func() {
			_, err := svc.SearchMusic(ctx, "calm", "", "violin")
			So(err, ShouldEqual, ErrMusicNotFound)
		})

		Convey("所有条件区分大小写", func() {
			_, err := svc.SearchMusic(ctx, "", "bedtime", "Rain")
			So(err, ShouldEqual, ErrMusicNotFound)
			_, err = svc.SearchMusic(ctx, "Calm", "", "")
			So(err, ShouldEqual, ErrMusicNotFound)

			res, err := svc.SearchMusic(ctx, " calm ", "", " rain ")
			So(err, ShouldBeNil)
			So(res[0].SubCategories[0].SubCategory, ShouldEqual, "rain")
		})

		Convey("没有匹配返回 ErrMusicNotFound", func() {
			_, err := svc.SearchMusic(ctx, "angry", "", "")
			So(err, ShouldEqual, ErrMusicNotFound)
		})

		Convey("搜索条件为空", func() {
			_, err := svc.SearchMusic(ctx, " ", "", "piano")
			So(errors.Is(err, ErrInvalidInput), ShouldBeTrue)
		})

		Convey("列表与单个查询", func() {
			all, err := svc.ListMusic(ctx)
			So(err, ShouldBeNil)
			So(len(all), ShouldEqual, 2)

			got, err := svc.GetMusic(ctx, calm.ID)
			So(err, ShouldBeNil)
			So(got.Mood, ShouldEqual, "calm")

			_, err = svc.GetMusic(ctx, "6f1c3e2a-0000-4000-8000-000000000000")
			So(err, ShouldEqual, ErrMusicNotFound)
		})
	})
}
