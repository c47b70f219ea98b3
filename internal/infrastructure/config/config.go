package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "./config.yaml"

type Config struct {
	HTTP struct {
		Port int `yaml:"port"`
	} `yaml:"http"`
	AWS struct {
		Region          string `yaml:"region"`
		AccessKeyID     string `yaml:"accessKeyId"`
		SecretAccessKey string `yaml:"secretAccessKey"`
	} `yaml:"aws"`
	DynamoDB struct {
		Endpoint         string `yaml:"endpoint"`
		DraftOrdersTable string `yaml:"draftOrdersTable"`
		MediaTable       string `yaml:"mediaTable"`
	} `yaml:"dynamodb"`
	Postgres struct {
		DSN      string `yaml:"DSN"`
		MaxConns int32  `yaml:"maxConns"`
	} `yaml:"postgres"`
	Kafka struct {
		Brokers []string `yaml:"brokers"`
		Topic   string   `yaml:"topic"`
	} `yaml:"kafka"`
	Search struct {
		PageSize int `yaml:"pageSize"`
		DelayMs  int `yaml:"delayMs"`
	} `yaml:"search"`
	Export struct {
		Timezone   string `yaml:"timezone"`
		ChromePath string `yaml:"chromePath"`
		Note       string `yaml:"note"`
		TimeoutSec int    `yaml:"timeoutSec"`
	} `yaml:"export"`
	Logging struct {
		Path     string `yaml:"path"`
		LogLevel string `yaml:"logLevel"` // trace, debug, info, warn, error, fatal, panic
	} `yaml:"logging"`
}

func defaults() Config {
	var c Config
	c.HTTP.Port = 8080
	c.AWS.Region = "us-east-1"
	c.AWS.AccessKeyID = "local"
	c.AWS.SecretAccessKey = "local"
	c.DynamoDB.DraftOrdersTable = "draft_orders"
	c.DynamoDB.MediaTable = "product_media"
	c.Postgres.MaxConns = 4
	c.Kafka.Topic = "draft-orders"
	c.Search.PageSize = 25
	c.Search.DelayMs = 1000
	c.Export.Timezone = "Asia/Kolkata"
	c.Export.TimeoutSec = 30
	c.Logging.LogLevel = "info"
	return c
}

// Load reads the YAML file at CONFIG_PATH (default ./config.yaml) over the defaults and
// then applies environment overrides. A missing file is not an error.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}
	return LoadFile(path)
}

func LoadFile(path string) (Config, error) {
	conf := defaults()
	file, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(file, &conf); err != nil {
			return Config{}, fmt.Errorf("cant unmarshal config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
	default:
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	applyEnv(&conf)
	if err := conf.Validate(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.HTTP.Port = p
		}
	}
	setString(&c.AWS.Region, "AWS_REGION")
	setString(&c.AWS.AccessKeyID, "AWS_ACCESS_KEY_ID")
	setString(&c.AWS.SecretAccessKey, "AWS_SECRET_ACCESS_KEY")
	setString(&c.DynamoDB.Endpoint, "DYNAMODB_ENDPOINT")
	setString(&c.DynamoDB.DraftOrdersTable, "DRAFT_ORDERS_TABLE")
	setString(&c.DynamoDB.MediaTable, "PRODUCT_MEDIA_TABLE")
	setString(&c.Postgres.DSN, "POSTGRES_DSN")
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = nil
		for _, b := range strings.Split(v, ",") {
			if b = strings.TrimSpace(b); b != "" {
				c.Kafka.Brokers = append(c.Kafka.Brokers, b)
			}
		}
	}
	setString(&c.Kafka.Topic, "KAFKA_TOPIC")
	setString(&c.Export.Timezone, "EXPORT_TIMEZONE")
	setString(&c.Export.ChromePath, "CHROME_PATH")
	setString(&c.Logging.Path, "LOG_PATH")
	setString(&c.Logging.LogLevel, "LOG_LEVEL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func (c Config) Validate() error {
	if c.HTTP.Port <= 0 {
		return errors.New("wrong value for http port: must be >0")
	}
	if c.Search.PageSize <= 0 {
		return errors.New("wrong value for search page size: must be >0")
	}
	if c.Search.DelayMs < 0 {
		return errors.New("wrong value for search delay: must be >=0")
	}
	if c.Export.TimeoutSec <= 0 {
		return errors.New("wrong value for export timeout: must be >0 seconds")
	}
	if strings.TrimSpace(c.DynamoDB.DraftOrdersTable) == "" || strings.TrimSpace(c.DynamoDB.MediaTable) == "" {
		return errors.New("dynamodb table names must not be empty")
	}
	if _, err := time.LoadLocation(c.Export.Timezone); err != nil {
		return fmt.Errorf("unknown export timezone %q: %w", c.Export.Timezone, err)
	}
	if _, ok := levels[strings.ToLower(c.Logging.LogLevel)]; !ok {
		return fmt.Errorf("unknown logging level %q", c.Logging.LogLevel)
	}
	return nil
}

var levels = map[string]struct{}{
	"trace": {}, "debug": {}, "info": {}, "warn": {}, "error": {}, "fatal": {}, "panic": {},
}

func (c Config) SearchDelay() time.Duration {
	return time.Duration(c.Search.DelayMs) * time.Millisecond
}

func (c Config) ExportTimeout() time.Duration {
	return time.Duration(c.Export.TimeoutSec) * time.Second
}

// Location is the export timezone; Validate guarantees it loads.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Export.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
