package music

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"slpece/internal/model/music"
)

// MusicRepo 背景音乐仓库
type MusicRepo struct {
	collection *mongo.Collection
}

// NewMusicRepo 创建背景音乐仓库
func NewMusicRepo(db *mongo.Database) *MusicRepo {
	return &MusicRepo{
		collection: db.Collection((&music.BackgroundMusic{}).Collection()),
	}
}

// Create 创建背景音乐
func (r *MusicRepo) Create(ctx context.Context, m *music.BackgroundMusic) error {
	m.CreatedAt = time.Now()
	_, err := r.collection.InsertOne(ctx, m)
	return err
}

// FindByID 根据ID查询，不存在时返回 mongo.ErrNoDocuments
func (r *MusicRepo) FindByID(ctx context.Context, id string) (*music.BackgroundMusic, error) {
	var m music.BackgroundMusic
	if err := r.collection.FindOne(ctx, bson.M{"id": id}).Decode(&m); err != nil {
		return nil, err
	}
	return &m, nil
}

// List 查询全部背景音乐
func (r *MusicRepo) List(ctx context.Context) ([]*music.BackgroundMusic, error) {
	return r.find(ctx, bson.M{})
}

// Search 按情绪和/或分类精确匹配，空字符串表示不过滤该字段
func (r *MusicRepo) Search(ctx context.Context, mood, category string) ([]*music.BackgroundMusic, error) {
	filter := bson.M{}
	if mood != "" {
		filter["music_mood"] = mood
	}
	if category != "" {
		filter["music_category"] = category
	}
	return r.find(ctx, filter)
}

func (r *MusicRepo) find(ctx context.Context, filter bson.M) ([]*music.BackgroundMusic, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	items := make([]*music.BackgroundMusic, 0)
	if err := cursor.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}
