package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type AppCfg struct {
	Env          string        `yaml:"env"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
	JWT          struct {
		Secret           string `yaml:"secret"`
		AccessTTLMinutes int    `yaml:"accessTTLMinutes"`
		RefreshTTLDays   int    `yaml:"refreshTTLDays"`
	} `yaml:"jwt"`
}

type MongoCfg struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisCfg struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type AWSCfg struct {
	Region            string `yaml:"region"`
	Bucket            string `yaml:"bucket"`
	Endpoint          string `yaml:"endpoint"`
	PublicRead        bool   `yaml:"publicRead"`
	PresignTTLSeconds int    `yaml:"presignTTLSeconds"`
}

type KafkaCfg struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

type GoogleCfg struct {
	ClientID string `yaml:"clientID"`
}

type SecurityCfg struct {
	PasswordHashCost    int `yaml:"passwordHashCost"`
	AuthRateLimitPerMin int `yaml:"authRateLimitPerMinute"`
}

type CollectionsCfg struct {
	Users    string `yaml:"users"`
	Posts    string `yaml:"posts"`
	Comments string `yaml:"comments"`
	Likes    string `yaml:"likes"`
	Media    string `yaml:"media"`
}

type Config struct {
	App         AppCfg         `yaml:"app"`
	Mongo       MongoCfg       `yaml:"mongo"`
	Redis       RedisCfg       `yaml:"redis"`
	AWS         AWSCfg         `yaml:"aws"`
	Kafka       KafkaCfg       `yaml:"kafka"`
	Google      GoogleCfg      `yaml:"google"`
	Security    SecurityCfg    `yaml:"security"`
	Collections CollectionsCfg `yaml:"collections"`
}

func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	override := func(env string, apply func(string)) {
		if v := os.Getenv(env); v != "" {
			apply(v)
		}
	}

	override("APP_ENV", func(v string) { cfg.App.Env = v })
	override("APP_PORT", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.Port = n
		}
	})
	override("TOKEN_SECRET", func(v string) { cfg.App.JWT.Secret = v })
	override("JWT_ACCESS_TTL_MINUTES", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.JWT.AccessTTLMinutes = n
		}
	})
	override("JWT_REFRESH_TTL_DAYS", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.App.JWT.RefreshTTLDays = n
		}
	})
	override("MONGO_URI", func(v string) { cfg.Mongo.URI = v })
	override("MONGO_DB", func(v string) { cfg.Mongo.Database = v })
	override("REDIS_ADDR", func(v string) { cfg.Redis.Addr = v })
	override("REDIS_PASSWORD", func(v string) { cfg.Redis.Password = v })
	override("AWS_REGION", func(v string) { cfg.AWS.Region = v })
	override("AWS_BUCKET", func(v string) { cfg.AWS.Bucket = v })
	override("AWS_ENDPOINT", func(v string) { cfg.AWS.Endpoint = v })
	override("KAFKA_BROKERS", func(v string) { cfg.Kafka.Brokers = strings.Split(v, ",") })
	override("KAFKA_TOPIC", func(v string) { cfg.Kafka.Topic = v })
	override("GOOGLE_CLIENT_ID", func(v string) { cfg.Google.ClientID = v })
	override("PASSWORD_HASH_COST", func(v string) {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Security.PasswordHashCost = n
		}
	})

	// defaults
	if cfg.App.JWT.AccessTTLMinutes == 0 {
		cfg.App.JWT.AccessTTLMinutes = 15
	}
	if cfg.App.JWT.RefreshTTLDays == 0 {
		cfg.App.JWT.RefreshTTLDays = 7
	}
	if cfg.AWS.PresignTTLSeconds == 0 {
		cfg.AWS.PresignTTLSeconds = 600
	}
	if cfg.Collections.Users == "" {
		cfg.Collections.Users = "users"
	}
	if cfg.Collections.Posts == "" {
		cfg.Collections.Posts = "posts"
	}
	if cfg.Collections.Comments == "" {
		cfg.Collections.Comments = "comments"
	}
	if cfg.Collections.Likes == "" {
		cfg.Collections.Likes = "likes"
	}
	if cfg.Collections.Media == "" {
		cfg.Collections.Media = "media"
	}

	// a missing signing secret is fatal to the process, not per-request
	if cfg.App.JWT.Secret == "" {
		return nil, errors.New("TOKEN_SECRET is required (set in .env or config.yaml)")
	}
	if cfg.Mongo.URI == "" {
		return nil, errors.New("MONGO_URI is required")
	}

	return cfg, nil
}
