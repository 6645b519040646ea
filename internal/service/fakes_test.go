package service

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/music"
	"slpece/internal/model/story"
)

type fakeStoryRepo struct {
	mu        sync.Mutex
	items     map[string]*story.Story
	order     []string
	createErr error
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{items: map[string]*story.Story{}}
}

func (r *fakeStoryRepo) Create(ctx context.Context, s *story.Story) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *s
	r.items[s.ID] = &cp
	r.order = append(r.order, s.ID)
	return nil
}

func (r *fakeStoryRepo) FindByID(ctx context.Context, id string) (*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.items[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoryRepo) FindByUserID(ctx context.Context, userID string) ([]*story.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*story.Story, 0)
	// 倒序模拟 created_at desc
	for i := len(r.order) - 1; i >= 0; i-- {
		if s, ok := r.items[r.order[i]]; ok && s.UserID == userID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeStoryRepo) List(ctx context.Context, page, pageSize int64) ([]*story.Story, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]*story.Story, 0)
	for i := len(r.order) - 1; i >= 0; i-- {
		if s, ok := r.items[r.order[i]]; ok {
			all = append(all, s)
		}
	}
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= total {
		return []*story.Story{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return all[start:end], total, nil
}

func (r *fakeStoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.items, id)
	return nil
}

type fakeSectionRepo struct {
	mu        sync.Mutex
	items     map[string]*story.Section
	reads     int
	deleteErr error
}

func newFakeSectionRepo() *fakeSectionRepo {
	return &fakeSectionRepo{items: map[string]*story.Section{}}
}

func (r *fakeSectionRepo) CreateMany(ctx context.Context, sections []*story.Section) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sections {
		cp := *s
		r.items[s.ID] = &cp
	}
	return nil
}

func (r *fakeSectionRepo) FindByIDs(ctx context.Context, ids []string) ([]*story.Section, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reads++
	out := make([]*story.Section, 0, len(ids))
	for _, id := range ids {
		if s, ok := r.items[id]; ok {
			cp := *s
			out = append(out, &cp)
		}
	}
	// 模拟 $in 查询不保证顺序
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeSectionRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return 0, r.deleteErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeSectionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

type fakeMusicRepo struct {
	mu        sync.Mutex
	items     []*music.BackgroundMusic
	createErr error
}

func (r *fakeMusicRepo) Create(ctx context.Context, m *music.BackgroundMusic) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	cp := *m
	r.items = append(r.items, &cp)
	return nil
}

func (r *fakeMusicRepo) FindByID(ctx context.Context, id string) (*music.BackgroundMusic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.items {
		if m.ID == id {
			cp := *m
			return &cp, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeMusicRepo) List(ctx context.Context) ([]*music.BackgroundMusic, error) {
	return r.Search(ctx, "", "")
}

func (r *fakeMusicRepo) Search(ctx context.Context, mood, category string) ([]*music.BackgroundMusic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*music.BackgroundMusic, 0)
	for _, m := range r.items {
		if mood != "" && m.Mood != mood {
			continue
		}
		if category != "" && m.Category != category {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

type fakeCategoryRepo struct {
	mu    sync.Mutex
	items map[string]*music.Category
}

func newFakeCategoryRepo() *fakeCategoryRepo {
	return &fakeCategoryRepo{items: map[string]*music.Category{}}
}

func (r *fakeCategoryRepo) CreateMany(ctx context.Context, categories []*music.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range categories {
		cp := *c
		r.items[c.ID] = &cp
	}
	return nil
}

func (r *fakeCategoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*music.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*music.Category, 0, len(ids))
	for _, id := range ids {
		if c, ok := r.items[id]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCategoryRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := r.items[id]; ok {
			delete(r.items, id)
			n++
		}
	}
	return n, nil
}
