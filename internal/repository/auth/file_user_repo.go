package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"slpece/internal/model/auth"
)

// FileUserRepo 基于 JSON 文件的用户仓库，适合单实例部署
// 每次写入都通过临时文件 + rename 原子替换
type FileUserRepo struct {
	path string
	mu   sync.Mutex
}

// NewFileUserRepo 创建文件用户仓库，目录不存在时自动创建
func NewFileUserRepo(path string) (*FileUserRepo, error) {
	if path == "" {
		return nil, errors.New("users file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create users dir: %w", err)
	}
	return &FileUserRepo{path: path}, nil
}

// load 读取全部用户，文件不存在视为空
func (r *FileUserRepo) load() ([]*auth.User, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*auth.User{}, nil
		}
		return nil, fmt.Errorf("read users file: %w", err)
	}
	if len(data) == 0 {
		return []*auth.User{}, nil
	}

	var users []*auth.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("decode users file: %w", err)
	}
	return users, nil
}

func (r *FileUserRepo) save(users []*auth.User) error {
	data, err := json.MarshalIndent(users, "", "  ")
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".users-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, r.path)
}

// Create 创建用户
func (r *FileUserRepo) Create(ctx context.Context, user *auth.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return ErrUsernameTaken
		}
	}

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	stored := *user
	return r.save(append(users, &stored))
}

// FindByID 根据ID查询用户
func (r *FileUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	return r.find(func(u *auth.User) bool { return u.ID == id })
}

// FindByUsername 根据用户名查询用户
func (r *FileUserRepo) FindByUsername(ctx context.Context, username string) (*auth.User, error) {
	return r.find(func(u *auth.User) bool { return u.Username == username })
}

func (r *FileUserRepo) find(match func(*auth.User) bool) (*auth.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if match(u) {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

// UpdateLastLoginAt 更新最后登录时间
func (r *FileUserRepo) UpdateLastLoginAt(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.ID == id {
			now := time.Now()
			u.LastLoginAt = &now
			u.UpdatedAt = now
			return r.save(users)
		}
	}
	return ErrUserNotFound
}

// List 分页查询用户（最新的在前）
func (r *FileUserRepo) List(ctx context.Context, page, pageSize int64) ([]*auth.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, 0, err
	}
	sort.SliceStable(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})

	total := int64(len(users))
	start := (page - 1) * pageSize
	if start >= total {
		return []*auth.User{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return users[start:end], total, nil
}
