package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/story"
	"slpece/internal/pkg/cache"
	"slpece/internal/pkg/id"
	"slpece/internal/pkg/metrics"
	"slpece/internal/pkg/storyquiz"
)

var (
	// ErrInvalidInput 参数校验失败，具体原因通过 %w 包装
	ErrInvalidInput  = errors.New("invalid input")
	ErrStoryNotFound = errors.New("story not found")
)

// StoryRepository 故事存储
type StoryRepository interface {
	Create(ctx context.Context, s *story.Story) error
	FindByID(ctx context.Context, id string) (*story.Story, error)
	FindByUserID(ctx context.Context, userID string) ([]*story.Story, error)
	List(ctx context.Context, page, pageSize int64) ([]*story.Story, int64, error)
	Delete(ctx context.Context, id string) error
}

// SectionRepository 故事段落存储
type SectionRepository interface {
	CreateMany(ctx context.Context, sections []*story.Section) error
	FindByIDs(ctx context.Context, ids []string) ([]*story.Section, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
}

// Cache 键值缓存（Redis 实现见 internal/pkg/cache）
type Cache interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Get(ctx context.Context, key string, dest any) error
	Delete(ctx context.Context, keys ...string) error
}

// StoryService 故事库服务
type StoryService interface {
	// CreateStory 先写段落再写故事；故事写入失败时删除已写入的段落
	CreateStory(ctx context.Context, req *CreateStoryRequest) (*StoryDetail, error)

	// GetStory 获取故事（段落按故事顺序填充），配置了缓存时走 cache-aside
	GetStory(ctx context.Context, storyID string) (*StoryDetail, error)

	// ListUserStories 获取用户的全部故事，最新的在前
	ListUserStories(ctx context.Context, userID string) ([]*StoryDetail, error)

	// ListStories 分页获取全部故事（不填充段落）
	ListStories(ctx context.Context, page, pageSize int64) (*ListStoriesResult, error)

	// DeleteStory 删除故事及其段落
	DeleteStory(ctx context.Context, storyID string) error

	// CheckOrder 校验排序小游戏的答案
	CheckOrder(ctx context.Context, storyID string, sectionIDs []string) (*storyquiz.Result, error)
}

// SectionInput 创建故事时的段落
type SectionInput struct {
	Text  string
	Image string
	Audio string
}

// CreateStoryRequest 创建故事请求
type CreateStoryRequest struct {
	UserID             string
	Name               string
	Text               string
	TextColor          string
	TextSize           string
	TextStyle          string
	BackgroundMusicURL string
	Sections           []SectionInput
}

// StoryDetail 故事及其有序段落
type StoryDetail struct {
	story.Story
	Sections []*story.Section `json:"sections"`
}

// ListStoriesResult 分页结果
type ListStoriesResult struct {
	Stories  []*story.Story `json:"stories"`
	Total    int64          `json:"total"`
	Page     int64          `json:"page"`
	PageSize int64          `json:"page_size"`
}

type storyService struct {
	stories  StoryRepository
	sections SectionRepository
	cache    Cache // 可为 nil
}

// NewStoryService 创建故事服务，cache 为 nil 时不使用缓存
func NewStoryService(stories StoryRepository, sections SectionRepository, cache Cache) StoryService {
	return &storyService{stories: stories, sections: sections, cache: cache}
}

func (r *CreateStoryRequest) validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: storyName is required", ErrInvalidInput)
	}
	if len(r.Sections) == 0 {
		return fmt.Errorf("%w: at least one section is required", ErrInvalidInput)
	}
	for i, s := range r.Sections {
		if strings.TrimSpace(s.Text) == "" {
			return fmt.Errorf("%w: sections[%d].storyText is required", ErrInvalidInput, i)
		}
	}
	return nil
}

func (s *storyService) CreateStory(ctx context.Context, req *CreateStoryRequest) (*StoryDetail, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	sections := make([]*story.Section, 0, len(req.Sections))
	sectionIDs := make([]string, 0, len(req.Sections))
	for _, in := range req.Sections {
		sec := &story.Section{
			ID:    id.New(),
			Text:  in.Text,
			Image: in.Image,
			Audio: in.Audio,
		}
		sections = append(sections, sec)
		sectionIDs = append(sectionIDs, sec.ID)
	}

	if err := s.sections.CreateMany(ctx, sections); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create story sections")
		// InsertMany 可能部分成功
		s.removeSections(ctx, sectionIDs)
		return nil, fmt.Errorf("create sections: %w", err)
	}

	st := &story.Story{
		ID:                 id.New(),
		UserID:             req.UserID,
		Name:               req.Name,
		Text:               req.Text,
		TextColor:          req.TextColor,
		TextSize:           req.TextSize,
		TextStyle:          req.TextStyle,
		BackgroundMusicURL: req.BackgroundMusicURL,
		SectionIDs:         sectionIDs,
	}
	if err := s.stories.Create(ctx, st); err != nil {
		log.Error().Err(err).Str("user_id", req.UserID).Msg("failed to create story, removing its sections")
		s.removeSections(ctx, sectionIDs)
		return nil, fmt.Errorf("create story: %w", err)
	}

	log.Info().Str("story_id", st.ID).Str("user_id", st.UserID).Int("sections", len(sections)).Msg("story created")
	return &StoryDetail{Story: *st, Sections: sections}, nil
}

// removeSections 补偿删除，失败只记录日志
func (s *storyService) removeSections(ctx context.Context, ids []string) {
	// 原请求可能已被取消
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	deleted, err := s.sections.DeleteByIDs(cleanupCtx, ids)
	if err != nil {
		log.Error().Err(err).Strs("section_ids", ids).Msg("compensating delete of story sections failed")
		return
	}
	log.Warn().Int64("deleted", deleted).Int("expected", len(ids)).Msg("compensating delete of story sections done")
}

func (s *storyService) GetStory(ctx context.Context, storyID string) (*StoryDetail, error) {
	sid, ok := id.Normalize(storyID)
	if !ok {
		return nil, ErrStoryNotFound
	}

	key := cache.StoryCacheKey(sid)
	if s.cache != nil {
		var cached StoryDetail
		err := s.cache.Get(ctx, key, &cached)
		switch {
		case err == nil:
			metrics.StoryCacheLookups.WithLabelValues("hit").Inc()
			return &cached, nil
		case errors.Is(err, cache.ErrMiss):
			metrics.StoryCacheLookups.WithLabelValues("miss").Inc()
		default:
			metrics.StoryCacheLookups.WithLabelValues("error").Inc()
			log.Warn().Err(err).Str("story_id", sid).Msg("story cache read failed")
		}
	}

	st, err := s.findStory(ctx, sid)
	if err != nil {
		return nil, err
	}
	detail, err := s.populate(ctx, st)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, detail, cache.StoryCacheTTL); err != nil {
			log.Warn().Err(err).Str("story_id", sid).Msg("story cache write failed")
		}
	}
	return detail, nil
}

func (s *storyService) findStory(ctx context.Context, storyID string) (*story.Story, error) {
	st, err := s.stories.FindByID(ctx, storyID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrStoryNotFound
		}
		return nil, fmt.Errorf("find story: %w", err)
	}
	return st, nil
}

// populate 按 SectionIDs 的顺序填充段落，缺失的段落跳过
func (s *storyService) populate(ctx context.Context, st *story.Story) (*StoryDetail, error) {
	found, err := s.sections.FindByIDs(ctx, st.SectionIDs)
	if err != nil {
		return nil, fmt.Errorf("find sections: %w", err)
	}

	byID := make(map[string]*story.Section, len(found))
	for _, sec := range found {
		byID[sec.ID] = sec
	}

	ordered := make([]*story.Section, 0, len(st.SectionIDs))
	for _, sid := range st.SectionIDs {
		sec, ok := byID[sid]
		if !ok {
			log.Warn().Str("story_id", st.ID).Str("section_id", sid).Msg("story references missing section")
			continue
		}
		ordered = append(ordered, sec)
	}
	return &StoryDetail{Story: *st, Sections: ordered}, nil
}

func (s *storyService) ListUserStories(ctx context.Context, userID string) ([]*StoryDetail, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	stories, err := s.stories.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("find user stories: %w", err)
	}

	details := make([]*StoryDetail, 0, len(stories))
	for _, st := range stories {
		d, err := s.populate(ctx, st)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (s *storyService) ListStories(ctx context.Context, page, pageSize int64) (*ListStoriesResult, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	stories, total, err := s.stories.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("list stories: %w", err)
	}
	return &ListStoriesResult{Stories: stories, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *storyService) DeleteStory(ctx context.Context, storyID string) error {
	sid, ok := id.Normalize(storyID)
	if !ok {
		return ErrStoryNotFound
	}

	st, err := s.findStory(ctx, sid)
	if err != nil {
		return err
	}

	if err := s.stories.Delete(ctx, sid); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return ErrStoryNotFound
		}
		return fmt.Errorf("delete story: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, cache.StoryCacheKey(sid)); err != nil {
			log.Warn().Err(err).Str("story_id", sid).Msg("story cache invalidation failed")
		}
	}

	// 故事已删除，段落清理失败只记录日志；孤立段落不会再被读取
	deleted, err := s.sections.DeleteByIDs(context.WithoutCancel(ctx), st.SectionIDs)
	if err != nil {
		log.Error().Err(err).Str("story_id", sid).Strs("section_ids", st.SectionIDs).Msg("failed to delete sections of deleted story")
		return nil
	}

	log.Info().Str("story_id", sid).Int64("sections_deleted", deleted).Msg("story deleted")
	return nil
}

func (s *storyService) CheckOrder(ctx context.Context, storyID string, sectionIDs []string) (*storyquiz.Result, error) {
	detail, err := s.GetStory(ctx, storyID)
	if err != nil {
		return nil, err
	}

	// 以实际存在的段落为准
	expected := make([]string, 0, len(detail.Sections))
	for _, sec := range detail.Sections {
		expected = append(expected, sec.ID)
	}

	res, err := storyquiz.CheckOrder(expected, sectionIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return res, nil
}
