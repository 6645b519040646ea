package server

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "slpece/docs"
	"slpece/internal/config"
	"slpece/internal/handler"
	authHandler "slpece/internal/handler/auth"
	mediaHandler "slpece/internal/handler/media"
	musicHandler "slpece/internal/handler/music"
	storyHandler "slpece/internal/handler/story"
	"slpece/internal/pkg/ark"
	"slpece/internal/pkg/inference"
	"slpece/internal/pkg/metrics"
	"slpece/internal/pkg/storage"
	"slpece/internal/pkg/storage/local"
	"slpece/internal/pkg/storygen"
	authRepo "slpece/internal/repository/auth"
	musicRepo "slpece/internal/repository/music"
	storyRepo "slpece/internal/repository/story"
	"slpece/internal/server/middleware"
	"slpece/internal/service"
)

// setupRoutes 设置路由
func (s *Server) setupRoutes() error {
	// 全局中间件
	s.engine.Use(middleware.Recovery())
	s.engine.Use(middleware.RequestID())
	s.engine.Use(middleware.Logger())
	s.engine.Use(middleware.CORS(s.cfg.Server.CORSOrigins))
	s.engine.Use(middleware.Metrics())

	s.setupSystemRoutes()
	s.setupStoryRoutes()
	s.setupMusicRoutes()
	if err := s.setupAuthRoutes(); err != nil {
		return err
	}
	s.setupMediaRoutes()
	return nil
}

// setupSystemRoutes 健康检查、监控、文档、本地存储静态文件
func (s *Server) setupSystemRoutes() {
	deps := make(map[string]handler.Pinger)
	if s.mongo != nil {
		deps["mongo"] = s.mongo
	}
	if s.redis != nil {
		deps["redis"] = s.redis
	}
	healthHandler := handler.NewHealthHandler(deps)
	s.engine.GET("/health", healthHandler.Health)
	s.engine.GET("/ready", healthHandler.Ready)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	s.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger 文档
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if ls, ok := s.storage.(*local.LocalStorage); ok {
		mount := localMountPath(s.cfg.Storage.Local.BaseURL)
		s.engine.Static(mount, ls.BasePath())
		log.Info().Str("path", mount).Str("dir", ls.BasePath()).Msg("serving local storage")
	}
}

// localMountPath 从 base_url 中取出静态文件挂载路径
func localMountPath(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return "/storage"
	}
	return u.Path
}

func (s *Server) setupStoryRoutes() {
	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, story endpoints disabled")
		return
	}
	db := s.mongo.Database()

	// 未配置 Redis 时不走缓存
	var storyCache service.Cache
	if s.redis != nil {
		storyCache = s.redis
	}

	storySvc := service.NewStoryService(storyRepo.NewStoryRepo(db), storyRepo.NewSectionRepo(db), storyCache)
	h := storyHandler.NewHandler(storySvc)

	stories := s.engine.Group("/story-liabrary/stories")
	{
		stories.POST("", h.CreateStory)
		stories.GET("", h.ListStories)
		stories.GET("/user/:user_id", h.ListUserStories)
		stories.GET("/:id", h.GetStory)
		stories.POST("/:id/check-order", h.CheckOrder)
	}
	s.engine.DELETE("/delete-story/:id", h.DeleteStory)
}

func (s *Server) setupMusicRoutes() {
	if s.mongo == nil {
		log.Warn().Msg("MongoDB not configured, music endpoints disabled")
		return
	}
	db := s.mongo.Database()

	musicSvc := service.NewMusicService(musicRepo.NewMusicRepo(db), musicRepo.NewCategoryRepo(db))
	h := musicHandler.NewHandler(musicSvc)

	music := s.engine.Group("/story-music")
	{
		music.POST("/", h.CreateMusic)
		music.GET("/", h.ListMusic)
		music.GET("/search", h.SearchMusic)
		music.GET("/:id", h.GetMusic)
	}
}

func (s *Server) setupAuthRoutes() error {
	var users service.UserRepository
	switch s.cfg.Auth.UserStore {
	case "file":
		repo, err := authRepo.NewFileUserRepo(s.cfg.Auth.UsersFile)
		if err != nil {
			return fmt.Errorf("failed to open users file: %w", err)
		}
		users = repo
	default:
		if s.mongo == nil {
			log.Warn().Msg("MongoDB not configured, auth endpoints disabled")
			return nil
		}
		users = authRepo.NewUserRepo(s.mongo.Database())
	}

	// 未配置 Redis 时退出登录不吊销 token
	var revocations service.RevocationStore
	if s.redis != nil {
		revocations = s.redis
	} else {
		log.Warn().Msg("Redis not configured, logout will not revoke tokens")
	}

	jwtSecret := s.cfg.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = defaultJWTSecret
		log.Warn().Msg("JWT secret not configured, using default (NOT SECURE for production)")
	}

	accessTokenExpiry := s.cfg.Auth.AccessTokenExpiry
	if accessTokenExpiry == 0 {
		accessTokenExpiry = 24 * time.Hour
	}

	authSvc := service.NewAuthService(users, revocations, jwtSecret, accessTokenExpiry)
	h := authHandler.NewHandler(authSvc)

	limiter := middleware.NewRateLimiter("auth", s.cfg.RateLimit.RPS, s.cfg.RateLimit.Burst)
	s.engine.POST("/register", limiter.Middleware(), h.Register)
	s.engine.POST("/login", limiter.Middleware(), h.Login)

	protected := s.engine.Group("")
	protected.Use(middleware.Auth(authSvc.JWT(), authSvc))
	{
		protected.GET("/profile", h.Profile)
		protected.POST("/logout", h.Logout)
	}
	return nil
}

func (s *Server) setupMediaRoutes() {
	var (
		presignSvc     *service.PresignService
		drawingSvc     *service.DrawingService
		recognitionSvc *service.RecognitionService
		storyGenSvc    *service.StoryGenService
	)

	if s.storage != nil {
		presignSvc = service.NewPresignService(s.storage)
		drawingSvc = service.NewDrawingService(s.storage)
	} else {
		log.Warn().Msg("storage not configured, presign and drawing endpoints disabled")
	}

	if s.cfg.Inference.URL != "" {
		var uploads storage.Storage
		if s.cfg.Inference.StoreUploads && s.storage != nil {
			uploads = s.storage
		}
		predictor := inference.NewClient(s.cfg.Inference.URL, s.cfg.Inference.Timeout)
		recognitionSvc = service.NewRecognitionService(predictor, uploads)
	} else {
		log.Warn().Msg("inference url not configured, /predict disabled")
	}

	if generator, err := s.newStoryGenerator(context.Background()); err != nil {
		log.Warn().Err(err).Str("provider", s.cfg.StoryGen.Provider).Msg("failed to initialize story generator, /generate-story disabled")
	} else if generator != nil {
		storyGenSvc = service.NewStoryGenService(generator)
		s.setupIllustrations(storyGenSvc)
	}

	h := mediaHandler.NewHandler(presignSvc, recognitionSvc, storyGenSvc, drawingSvc)

	if presignSvc != nil {
		s3 := s.engine.Group("/s3")
		s3.GET("/get-presigned-url", h.GetPresignedURL)
		s3.GET("/get-presigned-upload-url", h.GetPresignedUploadURL)
	}
	if recognitionSvc != nil {
		s.engine.POST("/predict", h.Predict)
	}
	if storyGenSvc != nil {
		s.engine.POST("/generate-story", h.GenerateStory)
	}
	if drawingSvc != nil {
		drawings := s.engine.Group("/drawings")
		drawings.POST("", h.SaveDrawing)
		drawings.GET("/:user_id/:drawing_id", h.GetDrawing)
		drawings.DELETE("/:user_id/:drawing_id", h.DeleteDrawing)
	}
}

// setupIllustrations 开启时为缺少插图的故事段落生成图片
func (s *Server) setupIllustrations(svc *service.StoryGenService) {
	imgCfg := s.cfg.StoryGen.Images
	if !imgCfg.Enabled {
		return
	}
	if s.storage == nil {
		log.Warn().Msg("storage not configured, story illustrations disabled")
		return
	}
	client, err := ark.NewImageClient(imageClientConfig(imgCfg))
	if err != nil {
		log.Warn().Err(err).Msg("failed to initialize image client, story illustrations disabled")
		return
	}
	svc.WithIllustrations(client, s.storage)
	log.Info().Str("model", imgCfg.Model).Msg("story illustrations enabled")
}

func imageClientConfig(c config.ImagesConfig) ark.ImageConfig {
	return ark.ImageConfig{
		APIKey:    c.APIKey,
		BaseURL:   c.BaseURL,
		Model:     c.Model,
		Size:      c.Size,
		Watermark: c.Watermark,
	}
}

// newStoryGenerator 按 provider 创建故事生成器；未配置时返回 nil
func (s *Server) newStoryGenerator(ctx context.Context) (storygen.Generator, error) {
	cfg := s.cfg.StoryGen
	switch cfg.Provider {
	case "llm":
		return storygen.NewLLMGenerator(ctx, &cfg.AI)
	default:
		if cfg.URL == "" {
			log.Warn().Msg("storygen url not configured, /generate-story disabled")
			return nil, nil
		}
		return storygen.NewHTTPGenerator(cfg.URL, cfg.Timeout), nil
	}
}
