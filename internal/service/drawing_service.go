package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog/log"

	"slpece/internal/pkg/id"
	"slpece/internal/pkg/storage"
	"slpece/internal/pkg/svgpath"
)

// ErrDrawingNotFound 画板作品不存在
var ErrDrawingNotFound = errors.New("drawing not found")

// maxDrawingBytes 读取单个作品的上限
const maxDrawingBytes = 4 << 20

// DrawingService 画板作品服务
type DrawingService struct {
	storage storage.Storage
}

// NewDrawingService 创建画板服务
func NewDrawingService(st storage.Storage) *DrawingService {
	return &DrawingService{storage: st}
}

// SaveDrawingRequest 保存画板请求
type SaveDrawingRequest struct {
	UserID  string
	Strokes []svgpath.Stroke
	Style   svgpath.Style
}

// SaveDrawingResult 保存结果
type SaveDrawingResult struct {
	ID   string `json:"id"`
	Key  string `json:"key"`
	URL  string `json:"url"`
	Path string `json:"path"` // SVG path 数据
}

// SaveDrawing 渲染 SVG 并写入存储
func (s *DrawingService) SaveDrawing(ctx context.Context, req *SaveDrawingRequest) (*SaveDrawingResult, error) {
	userID, err := pathSegment("user_id", req.UserID)
	if err != nil {
		return nil, err
	}

	svg, err := svgpath.Render(req.Strokes, req.Style)
	if err != nil {
		if errors.Is(err, svgpath.ErrNoStrokes) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, err
	}

	drawingID := id.New()
	key := drawingKey(userID, drawingID)
	url, err := s.storage.Upload(ctx, key, strings.NewReader(svg), int64(len(svg)), "image/svg+xml")
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload drawing")
		return nil, fmt.Errorf("upload drawing: %w", err)
	}

	log.Info().Str("user_id", userID).Str("key", key).Msg("drawing saved")
	return &SaveDrawingResult{ID: drawingID, Key: key, URL: url, Path: svgpath.PathData(req.Strokes)}, nil
}

// GetDrawing 读取已保存的 SVG
func (s *DrawingService) GetDrawing(ctx context.Context, userID, drawingID string) ([]byte, error) {
	key, err := s.resolveKey(userID, drawingID)
	if err != nil {
		return nil, err
	}

	rc, err := s.storage.Download(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrDrawingNotFound, key)
		}
		return nil, fmt.Errorf("download drawing: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxDrawingBytes))
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}
	return data, nil
}

// DeleteDrawing 删除已保存的作品
func (s *DrawingService) DeleteDrawing(ctx context.Context, userID, drawingID string) error {
	key, err := s.resolveKey(userID, drawingID)
	if err != nil {
		return err
	}

	exists, err := s.storage.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check drawing: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrDrawingNotFound, key)
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete drawing: %w", err)
	}

	log.Info().Str("user_id", userID).Str("key", key).Msg("drawing deleted")
	return nil
}

func (s *DrawingService) resolveKey(userID, drawingID string) (string, error) {
	userID, err := pathSegment("user_id", userID)
	if err != nil {
		return "", err
	}
	drawingID, err = pathSegment("drawing_id", strings.TrimSuffix(drawingID, ".svg"))
	if err != nil {
		return "", err
	}
	return drawingKey(userID, drawingID), nil
}

func drawingKey(userID, drawingID string) string {
	return fmt.Sprintf("drawings/%s/%s.svg", userID, drawingID)
}

// pathSegment 校验作为对象 key 一段的参数
func pathSegment(name, v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrInvalidInput, name)
	}
	if strings.ContainsAny(v, `/\`) || v == "." || v == ".." {
		return "", fmt.Errorf("%w: invalid %s", ErrInvalidInput, name)
	}
	return v, nil
}
