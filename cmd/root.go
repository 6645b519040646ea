package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slpece/internal/config"
	"slpece/internal/pkg/logger"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "slpece",
	Short: "Slpece - story learning API service",
	Long: `Slpece is the backend of a children's story learning app.
It serves the story library, background music catalogue, user accounts,
animal recognition, story generation and drawing board uploads.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ./configs/config.yaml)")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath("./configs")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.slpece")
	}

	// 环境变量设置
	viper.SetEnvPrefix("SLPECE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// 设置默认值
	setDefaults()

	// 读取配置文件
	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			fmt.Fprintln(os.Stderr, "No config file found, using defaults and environment variables")
		} else {
			fmt.Fprintf(os.Stderr, "Failed to read config: %v\n", err)
			os.Exit(1)
		}
	}

	// 反序列化到结构体
	cfg = &config.Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to unmarshal config: %v\n", err)
		os.Exit(1)
	}

	// 初始化日志
	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}

	log.Debug().Str("config_file", viper.ConfigFileUsed()).Msg("configuration loaded")
}

func setDefaults() {
	// Server
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("server.read_timeout", "30s")
	viper.SetDefault("server.write_timeout", "150s")
	viper.SetDefault("server.cors_origins", []string{})

	// Log
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.time_format", "RFC3339")

	// MongoDB
	viper.SetDefault("mongo.uri", "mongodb://localhost:27017")
	viper.SetDefault("mongo.database", "slpece")
	viper.SetDefault("mongo.max_pool_size", 100)
	viper.SetDefault("mongo.min_pool_size", 10)

	// Redis
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)

	// Auth
	viper.SetDefault("auth.access_token_expiry", "24h")
	viper.SetDefault("auth.user_store", "mongo")
	viper.SetDefault("auth.users_file", "./data/users.json")

	// Rate limit（登录/注册，按客户端 IP）
	viper.SetDefault("rate_limit.rps", 1)
	viper.SetDefault("rate_limit.burst", 5)

	// Storage
	viper.SetDefault("storage.type", "local")
	viper.SetDefault("storage.local.base_path", "./data/storage")
	viper.SetDefault("storage.local.base_url", "http://localhost:8080/storage")
	viper.SetDefault("storage.local.presign_expiry", 3600)
	viper.SetDefault("storage.s3.region", "us-east-1")

	// Inference
	viper.SetDefault("inference.url", "http://localhost:5000/predict")
	viper.SetDefault("inference.timeout", "30s")
	viper.SetDefault("inference.store_uploads", false)

	// Story generation
	viper.SetDefault("storygen.provider", "http")
	viper.SetDefault("storygen.url", "http://localhost:5001/generate-story")
	viper.SetDefault("storygen.timeout", "120s")
	viper.SetDefault("storygen.ai.provider", "ark")
	viper.SetDefault("storygen.ai.options.temperature", 0.8)
	viper.SetDefault("storygen.ai.options.max_tokens", 2048)
	viper.SetDefault("storygen.ai.options.top_p", 1.0)
	viper.SetDefault("storygen.images.enabled", false)
	viper.SetDefault("storygen.images.size", "1024x1024")
	viper.SetDefault("storygen.images.watermark", false)
}

// GetConfig returns the global configuration
func GetConfig() *config.Config {
	return cfg
}
