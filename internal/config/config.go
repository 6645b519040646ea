package config

import (
	"errors"
	"time"
)

// Config 应用配置根结构
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Mongo     MongoConfig     `mapstructure:"mongo"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Inference InferenceConfig `mapstructure:"inference"`
	StoryGen  StoryGenConfig  `mapstructure:"storygen"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"` // 为空时允许所有来源
}

// AIConfig AI 服务配置（用于 llm 故事生成）
type AIConfig struct {
	Provider string          `mapstructure:"provider"`
	APIKey   string          `mapstructure:"api_key"`
	Model    string          `mapstructure:"model"`
	BaseURL  string          `mapstructure:"base_url"`
	Options  AIOptionsConfig `mapstructure:"options"`
}

// AIOptionsConfig AI 模型参数
type AIOptionsConfig struct {
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	TopP        float64 `mapstructure:"top_p"`
}

// LogConfig 日志配置 (Zerolog)
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	FilePath   string `mapstructure:"file_path"`
	TimeFormat string `mapstructure:"time_format"`
}

// MongoConfig MongoDB 配置
type MongoConfig struct {
	URI         string `mapstructure:"uri"`
	Database    string `mapstructure:"database"`
	MaxPoolSize uint64 `mapstructure:"max_pool_size"`
	MinPoolSize uint64 `mapstructure:"min_pool_size"`
}

// RedisConfig Redis 配置
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// AuthConfig 认证配置
type AuthConfig struct {
	JWTSecret         string        `mapstructure:"jwt_secret"`          // JWT密钥
	AccessTokenExpiry time.Duration `mapstructure:"access_token_expiry"` // Access Token过期时间
	UserStore         string        `mapstructure:"user_store"`          // 用户存储：mongo / file
	UsersFile         string        `mapstructure:"users_file"`          // file 存储时的 JSON 文件路径
}

// RateLimitConfig 登录/注册限流配置
type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

// StorageConfig 存储配置
type StorageConfig struct {
	Type  string       `mapstructure:"type"` // local, oss, s3
	Local *LocalConfig `mapstructure:"local,omitempty"`
	OSS   *OSSConfig   `mapstructure:"oss,omitempty"`
	S3    *S3Config    `mapstructure:"s3,omitempty"`
}

// LocalConfig 本地文件系统配置
type LocalConfig struct {
	BasePath      string `mapstructure:"base_path"`      // 基础路径
	BaseURL       string `mapstructure:"base_url"`       // 基础URL（用于生成访问URL）
	PresignExpiry int    `mapstructure:"presign_expiry"` // 预签名URL过期时间（秒）
}

// OSSConfig 阿里云OSS配置
type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`          // OSS端点
	Bucket          string `mapstructure:"bucket"`            // Bucket名称
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	AccessKeySecret string `mapstructure:"access_key_secret"` // AccessKey Secret
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// S3Config AWS S3 / MinIO 配置
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`          // 如 s3.amazonaws.com 或 minio:9000
	Region          string `mapstructure:"region"`            // 区域
	Bucket          string `mapstructure:"bucket"`            // 默认 Bucket
	AccessKeyID     string `mapstructure:"access_key_id"`     // AccessKey ID
	SecretAccessKey string `mapstructure:"secret_access_key"` // Secret
	UseSSL          bool   `mapstructure:"use_ssl"`           // 是否使用 HTTPS
	PresignExpiry   int    `mapstructure:"presign_expiry"`    // 预签名URL过期时间（秒）
}

// InferenceConfig 外部识别模型配置
type InferenceConfig struct {
	URL          string        `mapstructure:"url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	StoreUploads bool          `mapstructure:"store_uploads"` // 是否同时把上传的图片写入存储
}

// StoryGenConfig 故事生成配置
type StoryGenConfig struct {
	Provider string        `mapstructure:"provider"` // http / llm
	URL      string        `mapstructure:"url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	AI       AIConfig      `mapstructure:"ai"`
	Images   ImagesConfig  `mapstructure:"images"`
}

// ImagesConfig 故事段落插图（Ark 图片生成）
type ImagesConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	APIKey    string `mapstructure:"api_key"`
	BaseURL   string `mapstructure:"base_url"`
	Model     string `mapstructure:"model"`
	Size      string `mapstructure:"size"`
	Watermark bool   `mapstructure:"watermark"` // 生成的图片是否带 AI 水印
}

// Validate 验证配置有效性
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return errors.New("invalid server port")
	}

	validModes := map[string]bool{"debug": true, "release": true, "test": true}
	if !validModes[c.Server.Mode] {
		return errors.New("invalid server mode, must be debug/release/test")
	}

	switch c.Auth.UserStore {
	case "", "mongo":
	case "file":
		if c.Auth.UsersFile == "" {
			return errors.New("auth.users_file is required when auth.user_store is file")
		}
	default:
		return errors.New("invalid auth.user_store, must be mongo/file")
	}

	switch c.StoryGen.Provider {
	case "", "http", "llm":
	default:
		return errors.New("invalid storygen.provider, must be http/llm")
	}
	if c.StoryGen.Images.Enabled && c.StoryGen.Images.APIKey == "" {
		return errors.New("storygen.images.api_key is required when storygen.images.enabled is true")
	}

	return nil
}
