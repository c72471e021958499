package config

import (
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-default:"local"`
	// DSN selects PostgreSQL. When empty an in-memory store is used.
	DSN         string            `yaml:"dsn" env:"DATABASE_URL"`
	HTTP        HTTPConfig        `yaml:"http"`
	Auth        AuthConfig        `yaml:"auth"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
	Redis       RedisConf         `yaml:"redis"`
	Media       MediaConfig       `yaml:"media"`
}

type HTTPConfig struct {
	Host         string   `yaml:"host" env:"HTTP_HOST"`
	Port         string   `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	BodyLimit    string   `yaml:"body_limit" env-default:"64M"`
	AllowOrigins []string `yaml:"allow_origins" env:"HTTP_ALLOW_ORIGINS" env-separator:","`
}

type AuthConfig struct {
	JWTSecret         string        `yaml:"jwt_secret" env:"JWT_SECRET" env-required:"true"`
	SessionSecret     string        `yaml:"session_secret" env:"SESSION_SECRET" env-required:"true"`
	AccessTTL         time.Duration `yaml:"access_ttl" env-default:"15m"`
	RefreshTTL        time.Duration `yaml:"refresh_ttl" env-default:"168h"`
	InactivityTimeout time.Duration `yaml:"inactivity_timeout" env-default:"2m"`
	AdminEmail        string        `yaml:"admin_email" env:"ADMIN_EMAIL"`
	AdminPassword     string        `yaml:"admin_password" env:"ADMIN_PASSWORD"`
}

type FileStorageConfig struct {
	// Driver is "local" or "s3".
	Driver      string   `yaml:"driver" env:"FILE_STORAGE_DRIVER" env-default:"local"`
	BaseDir     string   `yaml:"base_dir" env-default:"./uploads"`
	BaseURL     string   `yaml:"base_url" env-default:"http://localhost:8080/uploads"`
	MaxSize     int64    `yaml:"max_size" env-default:"52428800"`
	ImageBucket string   `yaml:"image_bucket" env-default:"portfolio-images"`
	VideoBucket string   `yaml:"video_bucket" env-default:"portfolio-videos"`
	S3          S3Config `yaml:"s3"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"us-east-1"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL"`
	UsePathStyle    bool   `yaml:"use_path_style" env-default:"true"`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db"`
}

type MediaConfig struct {
	MigrationBatch int `yaml:"migration_batch" env-default:"10"`
}

// MustLoad reads the config named by CONFIG_PATH.
func MustLoad() *Config {
	path := ResolvePath("")
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(err.Error())
	}

	return cfg
}

func Load(configPath string) (*Config, error) {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, &PathError{Path: configPath}
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ResolvePath prefers an explicit --config value and falls back to CONFIG_PATH.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}

	return os.Getenv("CONFIG_PATH")
}

type PathError struct {
	Path string
}

func (e *PathError) Error() string {
	return "config file does not exist: " + e.Path
}
