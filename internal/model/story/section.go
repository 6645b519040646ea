package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Section 故事段落
type Section struct {
	ID    string `bson:"id" json:"id"`
	Text  string `bson:"story_text" json:"storyText"`
	Image string `bson:"story_image,omitempty" json:"storyImage,omitempty"` // 图片URL
	Audio string `bson:"story_audio,omitempty" json:"storyAudio,omitempty"` // 音频URL

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}

// Collection 返回集合名称
func (s *Section) Collection() string { return "story_sections" }

// EnsureIndexes 创建和维护索引
func (s *Section) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetName("idx_id").SetUnique(true),
	})
	return err
}
