package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/story"
)

// SectionRepo 故事段落仓库
type SectionRepo struct {
	collection *mongo.Collection
}

// NewSectionRepo 创建段落仓库
func NewSectionRepo(db *mongo.Database) *SectionRepo {
	return &SectionRepo{
		collection: db.Collection((&story.Section{}).Collection()),
	}
}

// CreateMany 批量创建段落
func (r *SectionRepo) CreateMany(ctx context.Context, sections []*story.Section) error {
	if len(sections) == 0 {
		return nil
	}
	now := time.Now()
	docs := make([]interface{}, 0, len(sections))
	for _, s := range sections {
		s.CreatedAt = now
		docs = append(docs, s)
	}
	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// FindByIDs 按ID批量查询段落，返回结果不保证顺序
func (r *SectionRepo) FindByIDs(ctx context.Context, ids []string) ([]*story.Section, error) {
	sections := make([]*story.Section, 0, len(ids))
	if len(ids) == 0 {
		return sections, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// DeleteByIDs 批量删除段落，返回删除数量
func (r *SectionRepo) DeleteByIDs(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.collection.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
