package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v6"
)

type (
	APP struct {
		Name      string `env:"SERVICE_NAME" envDefault:"docmanager"`
		Host      string `env:"SERVICE_HOST"`
		Port      string `env:"SERVICE_PORT" envDefault:"8080"`
		Env       string `env:"SERVICE_ENV" envDefault:"production"`
		JWTSecret string `env:"SERVICE_JWT_SECRET"`

		SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"24h"`
		MaxUploadSize       int64         `env:"MAX_UPLOAD_SIZE" envDefault:"5242880"`
		MaxUploadFiles      int           `env:"MAX_UPLOAD_FILES" envDefault:"10"`
		OrphanSweepInterval time.Duration `env:"ORPHAN_SWEEP_INTERVAL" envDefault:"10m"`

		// bootstrap admin, created on start when both are set
		AdminUsername string `env:"ADMIN_USERNAME"`
		AdminPassword string `env:"ADMIN_PASSWORD"`
		AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`

		ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" envDefault:"10s"`
		IdleTimeout    time.Duration `env:"POSTGRES_IDLE_TIMEOUT" envDefault:"45s"`
		MaxConns       int32         `env:"POSTGRES_MAX_CONNS" envDefault:"0"`
	}
	S3 struct {
		Region          string `env:"S3_REGION" envDefault:"us-east-1"`
		Endpoint        string `env:"S3_ENDPOINT"`
		AccessKeyID     string `env:"S3_ACCESS_KEY_ID"`
		SecretAccessKey string `env:"S3_SECRET_ACCESS_KEY"`
		BucketUploads   string `env:"S3_BUCKET_UPLOADS" envDefault:"user-documents"`
		PublicBaseURL   string `env:"S3_PUBLIC_BASE_URL"`
		PublicRead      bool   `env:"S3_PUBLIC_READ" envDefault:"true"`
		UsePathStyle    bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
	}
	MQ struct {
		Enabled      bool   `env:"RABBITMQ_ENABLED" envDefault:"true"`
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST"`
		Host         string `env:"RABBITMQ_HOST"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" envDefault:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" envDefault:"documents"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"topic"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" envDefault:"document-events"`
	}

	Config struct {
		App APP
		DB  DB
		S3  S3
		MQ  MQ
	}
)

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.App.JWTSecret == "" {
		errs = append(errs, errors.New("SERVICE_JWT_SECRET is required"))
	}
	if c.App.SessionTTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.App.MaxUploadSize <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_SIZE must be positive"))
	}
	if c.App.MaxUploadFiles <= 0 {
		errs = append(errs, errors.New("MAX_UPLOAD_FILES must be positive"))
	}
	if c.S3.BucketUploads == "" {
		errs = append(errs, errors.New("S3_BUCKET_UPLOADS is required"))
	}

	return errors.Join(errs...)
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
