package config

import (
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"net"
	"os"
	"time"
)

const envPrefix = "MARKET"

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" split_words:"true"`
}

type DatabaseConfig struct {
	Username        string        `yaml:"username"`
	Password        string        `yaml:"password"`
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port"`
	Database        string        `yaml:"database"`
	MaxOpenConns    int           `yaml:"maxOpenConns" split_words:"true"`
	MaxIdleConns    int           `yaml:"maxIdleConns" split_words:"true"`
	ConnMaxLifetime time.Duration `yaml:"connMaxLifetime" split_words:"true"`
	LogLevel        string        `yaml:"logLevel" split_words:"true"`
}

func (c DatabaseConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	Database int           `yaml:"database"`
	StatsTTL time.Duration `yaml:"statsTTL" split_words:"true"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
	Buffer  int      `yaml:"buffer"`
}

func (c KafkaConfig) Enabled() bool {
	return len(c.Brokers) > 0
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type OrdersConfig struct {
	//開啟後庫存不足時訂單失敗
	GuardStock bool `yaml:"guardStock" split_words:"true"`
}

type LogConfig struct {
	Level       string   `yaml:"level"`
	Encoding    string   `yaml:"encoding"`
	OutputPaths []string `yaml:"outputPaths" split_words:"true"`
}

type Config struct {
	ServiceName string         `yaml:"serviceName" split_words:"true"`
	Server      ServerConfig   `yaml:"server"`
	Database    DatabaseConfig `yaml:"database"`
	Redis       RedisConfig    `yaml:"redis"`
	Kafka       KafkaConfig    `yaml:"kafka"`
	JWT         JWTConfig      `yaml:"jwt"`
	Orders      OrdersConfig   `yaml:"orders"`
	Log         LogConfig      `yaml:"log"`
}

func Default() Config {
	return Config{
		ServiceName: "marketplace-orders",
		Server: ServerConfig{
			Addr:            ":3000",
			Mode:            "release",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "127.0.0.1",
			Port:            "3306",
			Database:        "marketplace",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			LogLevel:        "warn",
		},
		Redis: RedisConfig{
			Addr:     "127.0.0.1:6379",
			StatsTTL: 30 * time.Second,
		},
		Kafka: KafkaConfig{
			Buffer: 256,
		},
		JWT: JWTConfig{
			TTL: 24 * time.Hour,
		},
		Log: LogConfig{
			Level:       "info",
			Encoding:    "json",
			OutputPaths: []string{"stdout"},
		},
	}
}

// 讀取設定檔，再以MARKET_開頭的環境變數覆蓋
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, errors.Wrapf(err, "decode %s", filename)
		}
	case os.IsNotExist(err):
		//沒有設定檔時只使用預設值及環境變數
	default:
		return config, errors.Wrapf(err, "open %s", filename)
	}

	if err := envconfig.Process(envPrefix, &config); err != nil {
		return config, errors.Wrap(err, "read environment")
	}
	return config, nil
}
