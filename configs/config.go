package configs

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. It is loaded once in main and
// injected into the components that need it.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	MinIO    MinIOConfig
	Kafka    KafkaConfig
	JWT      JWTConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type KafkaConfig struct {
	Brokers []string
	Topic   string
}

type JWTConfig struct {
	Secret string
	Expire time.Duration
}

// Load reads configuration from the environment with a .env fallback.
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.SetDefault("EVOTE_HOST", "")
	viper.SetDefault("EVOTE_PORT", "8080")
	viper.SetDefault("EVOTE_READ_TIMEOUT", 30*time.Second)
	viper.SetDefault("EVOTE_WRITE_TIMEOUT", 30*time.Second)
	viper.SetDefault("EVOTE_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("EVOTE_JWT_SECRET", "secret")
	viper.SetDefault("EVOTE_JWT_EXPIRE", "24h")
	viper.SetDefault("MYSQL_USER", "root")
	viper.SetDefault("MYSQL_PASSWORD", "password")
	viper.SetDefault("MYSQL_HOST", "localhost")
	viper.SetDefault("MYSQL_PORT", "3306")
	viper.SetDefault("MYSQL_DB", "evote")
	viper.SetDefault("MINIO_ENDPOINT", "")
	viper.SetDefault("MINIO_ACCESS_KEY", "")
	viper.SetDefault("MINIO_SECRET_KEY", "")
	viper.SetDefault("MINIO_BUCKET", "evote-candidates")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.SetDefault("KAFKA_BROKERS", "")
	viper.SetDefault("KAFKA_TOPIC", "evote.audit")
	viper.AutomaticEnv()

	// Missing .env is fine, environment variables and defaults still apply.
	_ = viper.ReadInConfig()

	expire, err := time.ParseDuration(viper.GetString("EVOTE_JWT_EXPIRE"))
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
		brokers = strings.Split(raw, ",")
	}

	return &Config{
		Server: ServerConfig{
			Host:         viper.GetString("EVOTE_HOST"),
			Port:         viper.GetString("EVOTE_PORT"),
			ReadTimeout:  viper.GetDuration("EVOTE_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("EVOTE_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("EVOTE_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("MYSQL_HOST"),
			Port:     viper.GetString("MYSQL_PORT"),
			User:     viper.GetString("MYSQL_USER"),
			Password: viper.GetString("MYSQL_PASSWORD"),
			DBName:   viper.GetString("MYSQL_DB"),
		},
		MinIO: MinIOConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		Kafka: KafkaConfig{
			Brokers: brokers,
			Topic:   viper.GetString("KAFKA_TOPIC"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("EVOTE_JWT_SECRET"),
			Expire: expire,
		},
	}, nil
}
