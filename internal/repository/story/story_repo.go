package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slpece/internal/model/story"
)

// StoryRepo 故事仓库
type StoryRepo struct {
	collection *mongo.Collection
}

// NewStoryRepo 创建故事仓库
func NewStoryRepo(db *mongo.Database) *StoryRepo {
	return &StoryRepo{
		collection: db.Collection((&story.Story{}).Collection()),
	}
}

// Create 创建故事
func (r *StoryRepo) Create(ctx context.Context, s *story.Story) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err := r.collection.InsertOne(ctx, s)
	return err
}

// FindByID 根据ID查询故事，不存在时返回 mongo.ErrNoDocuments
func (r *StoryRepo) FindByID(ctx context.Context, id string) (*story.Story, error) {
	var s story.Story
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// FindByUserID 查询用户的全部故事（最新的在前）
func (r *StoryRepo) FindByUserID(ctx context.Context, userID string) ([]*story.Story, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	stories := make([]*story.Story, 0)
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, err
	}
	return stories, nil
}

// List 分页查询所有故事
func (r *StoryRepo) List(ctx context.Context, page, pageSize int64) ([]*story.Story, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(pageSize).
		SetSkip((page - 1) * pageSize)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	stories := make([]*story.Story, 0)
	if err := cursor.All(ctx, &stories); err != nil {
		return nil, 0, err
	}
	return stories, total, nil
}

// Delete 删除故事，不存在时返回 mongo.ErrNoDocuments
func (r *StoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
