package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env             string `yaml:"env" env-default:"local"`
	HTTPServer      `yaml:"http_server"`
	PaymentDB       `yaml:"payment_db"`
	LogConfig       `yaml:"log_config"`
	Paystack        `yaml:"paystack"`
	KafkaService    `yaml:"kafka-service"`
	IdentityService `yaml:"identity-service"`
	RetryConfig     `yaml:"retry"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn"`
	MigrationsPath string `yaml:"migrations_path"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
}

type Paystack struct {
	BaseURL        string `yaml:"base_url" env-default:"https://api.paystack.co"`
	SecretKey      string `yaml:"secret_key" env:"PAYSTACK_SECRET_KEY"`
	TimeoutSeconds int    `yaml:"timeout_seconds" env-default:"30"`
}

type KafkaService struct {
	Host  string `yaml:"host"`
	Port  string `yaml:"port"`
	Topic string `yaml:"topic" env-default:"payment-events"`
}

type IdentityService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type RetryConfig struct {
	MaxAttempts     int `yaml:"max_attempts" env-default:"3"`
	CooldownSeconds int `yaml:"cooldown_seconds" env-default:"300"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
