// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string        `yaml:"env"`
	StorageConnectionString string        `yaml:"storage_connection_string"`
	StorageDatabase         string        `yaml:"storage_database"`
	RabbitMQURL             string        `yaml:"rabbitmq_url"`
	RabbitMQMaxRetries      int           `yaml:"rabbitmq_max_retries"`
	RabbitMQRetryDelay      time.Duration `yaml:"rabbitmq_retry_delay"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	MediaStorage            `yaml:"media_storage"`
	Sweep                   `yaml:"sweep"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// RedisConnection структура для настройки подключения к redis.
// Enabled == false переводит кэш в no-op режим, сервис при этом
// работает только с основным хранилищем.
type RedisConnection struct {
	Enabled      bool          `yaml:"enabled" env-default:"true"`
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key"`
	TokenTTL     time.Duration `yaml:"token_ttl"`
}

// MediaStorage структура для настройки блоб-хранилища медиафайлов (S3)
type MediaStorage struct {
	Bucket string `yaml:"bucket"`
	Region string `yaml:"region"`
}

// Sweep структура для настройки фоновой уценки непопулярных домов
type Sweep struct {
	SweepInterval time.Duration `yaml:"sweep_interval" env-default:"1h"`
	SweepLimit    int           `yaml:"sweep_limit" env-default:"5"`
	SweepDiscount int           `yaml:"sweep_discount" env-default:"10"`
}

// MustLoad функция для загрузки конфига, путь берется из переменной окружения CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}
