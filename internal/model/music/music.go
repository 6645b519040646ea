package music

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BackgroundMusic 背景音乐（按情绪与分类组织）
type BackgroundMusic struct {
	ID             string   `bson:"id" json:"id"`
	Mood           string   `bson:"music_mood" json:"musicmood"`
	Category       string   `bson:"music_category" json:"musicCategory"`
	SubCategoryIDs []string `bson:"sub_category_ids" json:"sub_category_ids"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (m *BackgroundMusic) Collection() string { return "background_music" }

// EnsureIndexes 创建和维护索引
func (m *BackgroundMusic) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(m.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "music_mood", Value: 1}, {Key: "music_category", Value: 1}},
			Options: options.Index().SetName("idx_mood_category"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}

// Category 背景音乐子分类
type Category struct {
	ID          string   `bson:"id" json:"id"`
	SubCategory string   `bson:"sub_category" json:"subCategory"`
	MusicURLs   []string `bson:"music_urls" json:"musicURLs"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (c *Category) Collection() string { return "background_music_categories" }

// EnsureIndexes 创建和维护索引
func (c *Category) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(c.Collection())
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("idx_id").SetUnique(true),
	})
	return err
}
