package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Story 故事实体
// SectionIDs 保存有序的段落ID，段落由 story_sections 集合单独存储
type Story struct {
	ID     string `bson:"id" json:"id"`           // 故事ID（UUID）
	UserID string `bson:"user_id" json:"user_id"` // 创建者

	Name string `bson:"story_name" json:"storyName"` // 故事名称
	Text string `bson:"story" json:"story"`          // 故事全文

	// 展示样式
	TextColor string `bson:"story_text_color,omitempty" json:"storyTextColor,omitempty"`
	TextSize  string `bson:"story_text_size,omitempty" json:"storyTextSize,omitempty"`
	TextStyle string `bson:"story_text_style,omitempty" json:"storyTextStyle,omitempty"`

	BackgroundMusicURL string `bson:"background_music_url,omitempty" json:"backgroundMusicURL,omitempty"`

	SectionIDs []string `bson:"section_ids" json:"section_ids"` // 段落ID（按播放顺序）

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Collection 返回集合名称
func (s *Story) Collection() string { return "stories" }

// EnsureIndexes 创建和维护索引
func (s *Story) EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(s.Collection())
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("idx_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_user_created"),
		},
	}
	_, err := coll.Indexes().CreateMany(ctx, indexes)
	return err
}
