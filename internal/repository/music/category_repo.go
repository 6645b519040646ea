package music

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/music"
)

// CategoryRepo 背景音乐子分类仓库
type CategoryRepo struct {
	collection *mongo.Collection
}

// NewCategoryRepo 创建子分类仓库
func NewCategoryRepo(db *mongo.Database) *CategoryRepo {
	return &CategoryRepo{
		collection: db.Collection((&music.Category{}).Collection()),
	}
}

// CreateMany 批量创建子分类
func (r *CategoryRepo) CreateMany(ctx context.Context, categories []*music.Category) error {
	if len(categories) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(categories))
	for _, c := range categories {
		c.CreatedAt = now
		docs = append(docs, c)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByIDs 按ID批量查询子分类
func (r *CategoryRepo) FindByIDs(ctx context.Context, ids []string) ([]*music.Category, error) {
	categories := make([]*music.Category, 0, len(ids))
	if len(ids) == 0 {
		return categories, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// DeleteByIDs 批量删除子分类
func (r *CategoryRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
