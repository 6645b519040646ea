package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"slpece/internal/model/auth"
	"slpece/internal/model/music"
	"slpece/internal/model/story"
)

// EnsureIndexes 在应用启动时创建所有模型的索引
func EnsureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return EnsureAllIndexes(ctx, db,
		&story.Story{},
		&story.Section{},
		&music.BackgroundMusic{},
		&music.Category{},
		&auth.User{},
	)
}
