package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/music"
	"slpece/internal/pkg/id"
)

var ErrMusicNotFound = errors.New("background music not found")

// MusicRepository 背景音乐存储
type MusicRepository interface {
	Create(ctx context.Context, m *music.BackgroundMusic) error
	FindByID(ctx context.Context, id string) (*music.BackgroundMusic, error)
	List(ctx context.Context) ([]*music.BackgroundMusic, error)
	Search(ctx context.Context, mood, category string) ([]*music.BackgroundMusic, error)
}

// CategoryRepository 背景音乐子分类存储
type CategoryRepository interface {
	CreateMany(ctx context.Context, categories []*music.Category) error
	FindByIDs(ctx context.Context, ids []string) ([]*music.Category, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// MusicService 背景音乐服务
type MusicService interface {
	CreateMusic(ctx context.Context, req *CreateMusicRequest) (*MusicDetail, error)
	GetMusic(ctx context.Context, musicID string) (*MusicDetail, error)
	ListMusic(ctx context.Context) ([]*MusicDetail, error)

	// SearchMusic mood 与 category 至少提供一个；subCategory 非空时只保留该子分类
	// 三个条件都去掉首尾空白后区分大小写精确匹配
	SearchMusic(ctx context.Context, mood, category, subCategory string) ([]*MusicDetail, error)
}

// SubCategoryInput 创建背景音乐时的子分类
type SubCategoryInput struct {
	Name      string
	MusicURLs []string
}

// CreateMusicRequest 创建背景音乐请求
type CreateMusicRequest struct {
	Mood          string
	Category      string
	SubCategories []SubCategoryInput
}

// MusicDetail 背景音乐及其子分类
type MusicDetail struct {
	music.BackgroundMusic
	SubCategories []*music.Category `json:"subCategories"`
}

type musicService struct {
	music      MusicRepository
	categories CategoryRepository
}

// NewMusicService 创建背景音乐服务
func NewMusicService(musicRepo MusicRepository, categories CategoryRepository) MusicService {
	return &musicService{music: musicRepo, categories: categories}
}

func (r *CreateMusicRequest) validate() error {
	if strings.TrimSpace(r.Mood) == "" {
		return fmt.Errorf("%w: musicmood is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Category) == "" {
		return fmt.Errorf("%w: musicCategory is required", ErrInvalidInput)
	}
	for i, sc := range r.SubCategories {
		if strings.TrimSpace(sc.Name) == "" {
			return fmt.Errorf("%w: subCategories[%d].subCategory is required", ErrInvalidInput, i)
		}
	}
	return nil
}

func (s *musicService) CreateMusic(ctx context.Context, req *CreateMusicRequest) (*MusicDetail, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	categories := make([]*music.Category, 0, len(req.SubCategories))
	categoryIDs := make([]string, 0, len(req.SubCategories))
	for _, sc := range req.SubCategories {
		urls := sc.MusicURLs
		if urls == nil {
			urls = []string{}
		}
		c := &music.Category{ID: id.New(), SubCategory: strings.TrimSpace(sc.Name), MusicURLs: urls}
		categories = append(categories, c)
		categoryIDs = append(categoryIDs, c.ID)
	}

	if err := s.categories.CreateMany(ctx, categories); err != nil {
		s.removeCategories(ctx, categoryIDs)
		return nil, fmt.Errorf("create music categories: %w", err)
	}

	m := &music.BackgroundMusic{
		ID:             id.New(),
		Mood:           strings.TrimSpace(req.Mood),
		Category:       strings.TrimSpace(req.Category),
		SubCategoryIDs: categoryIDs,
	}
	if err := s.music.Create(ctx, m); err != nil {
		log.Error().Err(err).Str("mood", req.Mood).Msg("failed to create background music, removing its categories")
		s.removeCategories(ctx, categoryIDs)
		return nil, fmt.Errorf("create background music: %w", err)
	}

	log.Info().Str("music_id", m.ID).Str("mood", m.Mood).Str("category", m.Category).Msg("background music created")
	return &MusicDetail{BackgroundMusic: *m, SubCategories: categories}, nil
}

func (s *musicService) removeCategories(ctx context.Context, ids []string) {
	if len(ids) == 0 {
		return
	}
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if _, err := s.categories.DeleteByIDs(cleanupCtx, ids); err != nil {
		log.Error().Err(err).Strs("category_ids", ids).Msg("compensating delete of music categories failed")
	}
}

func (s *musicService) GetMusic(ctx context.Context, musicID string) (*MusicDetail, error) {
	mid, ok := id.Normalize(musicID)
	if !ok {
		return nil, ErrMusicNotFound
	}

	m, err := s.music.FindByID(ctx, mid)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrMusicNotFound
		}
		return nil, fmt.Errorf("find background music: %w", err)
	}
	return s.populate(ctx, m, "")
}

func (s *musicService) ListMusic(ctx context.Context) ([]*MusicDetail, error) {
	items, err := s.music.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list background music: %w", err)
	}
	return s.populateAll(ctx, items, "")
}

func (s *musicService) SearchMusic(ctx context.Context, mood, category, subCategory string) ([]*MusicDetail, error) {
	mood = strings.TrimSpace(mood)
	category = strings.TrimSpace(category)
	subCategory = strings.TrimSpace(subCategory)
	if mood == "" && category == "" {
		return nil, fmt.Errorf("%w: musicmood or musicCategory is required", ErrInvalidInput)
	}

	items, err := s.music.Search(ctx, mood, category)
	if err != nil {
		return nil, fmt.Errorf("search background music: %w", err)
	}

	details, err := s.populateAll(ctx, items, subCategory)
	if err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return nil, ErrMusicNotFound
	}
	return details, nil
}

// populateAll 填充子分类；指定 subCategory 时丢弃不含该子分类的音乐
func (s *musicService) populateAll(ctx context.Context, items []*music.BackgroundMusic, subCategory string) ([]*MusicDetail, error) {
	details := make([]*MusicDetail, 0, len(items))
	for _, m := range items {
		d, err := s.populate(ctx, m, subCategory)
		if err != nil {
			return nil, err
		}
		if subCategory != "" && len(d.SubCategories) == 0 {
			continue
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *musicService) populate(ctx context.Context, m *music.BackgroundMusic, subCategory string) (*MusicDetail, error) {
	found, err := s.categories.FindByIDs(ctx, m.SubCategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("find music categories: %w", err)
	}

	byID := make(map[string]*music.Category, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}

	ordered := make([]*music.Category, 0, len(m.SubCategoryIDs))
	for _, cid := range m.SubCategoryIDs {
		c, ok := byID[cid]
		if !ok {
			continue
		}
		if subCategory != "" && c.SubCategory != subCategory {
			continue
		}
		ordered = append(ordered, c)
	}
	return &MusicDetail{BackgroundMusic: *m, SubCategories: ordered}, nil
}
