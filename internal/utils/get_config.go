package utils

import (
	"log"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application configuration
	AppURL    string `yaml:"APP_URL" env:"APP_URL"`
	AppPort   string `yaml:"APP_PORT" env:"APP_PORT"`
	LogLevel  string `yaml:"LOG_LEVEL" env:"LOG_LEVEL"`
	LogFormat string `yaml:"LOG_FORMAT" env:"LOG_FORMAT"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER" env:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER" env:"DB_USER"`
	DBName     string `yaml:"DB_NAME" env:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD" env:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT" env:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST" env:"DB_HOST"`
	DBPath     string `yaml:"DB_PATH" env:"DB_PATH"`

	// Identity configuration
	JWTSecret               string `yaml:"JWT_SECRET" env:"JWT_SECRET"`
	RequireConfirmedAccount bool   `yaml:"REQUIRE_CONFIRMED_ACCOUNT" env:"REQUIRE_CONFIRMED_ACCOUNT"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST" env:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT" env:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME" env:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL" env:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD" env:"SMTP_AUTH_PASSWORD"`

	// Image storage configuration
	StorageDriver   string `yaml:"STORAGE_DRIVER" env:"STORAGE_DRIVER"`
	LocalStorageDir string `yaml:"LOCAL_STORAGE_DIR" env:"LOCAL_STORAGE_DIR"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET" env:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION" env:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY" env:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY" env:"AWS_SECRET_KEY"`
}

var config = defaultConfig()

func defaultConfig() Config {
	return Config{
		AppURL:          "http://localhost:8080",
		AppPort:         "8080",
		LogLevel:        "info",
		LogFormat:       "json",
		DBDriver:        "postgres",
		DBPort:          "5432",
		DBPath:          "recipes.db",
		StorageDriver:   "local",
		LocalStorageDir: "./public/images",
	}
}

// LoadConfig reads config.yaml (when present) and lets environment variables
// override any key it sets.
func LoadConfig() {
	loadConfigFile("config.yaml")

	if err := env.Parse(&config); err != nil {
		log.Printf("Error parsing environment: %s\n", err)
	}
}

func loadConfigFile(path string) {
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

// SetConfig replaces the loaded configuration. Used by tests and tools.
func SetConfig(c Config) {
	config = c
}

func GetAppConfig() Config {
	return config
}

func getBoolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func GetConfig(key string) string {
	switch key {
	case "APP_URL":
		return config.AppURL
	case "APP_PORT":
		return config.AppPort
	case "LOG_LEVEL":
		return config.LogLevel
	case "LOG_FORMAT":
		return config.LogFormat
	case "DB_DRIVER":
		return config.DBDriver
	case "DB_USER":
		return config.DBUser
	case "DB_NAME":
		return config.DBName
	case "DB_PASSWORD":
		return config.DBPassword
	case "DB_PORT":
		return config.DBPort
	case "DB_HOST":
		return config.DBHost
	case "DB_PATH":
		return config.DBPath
	case "JWT_SECRET":
		return config.JWTSecret
	case "REQUIRE_CONFIRMED_ACCOUNT":
		return getBoolString(config.RequireConfirmedAccount)
	case "SMTP_HOST":
		return config.SMTPHost
	case "SMTP_PORT":
		return config.SMTPPort
	case "SMTP_SENDER_NAME":
		return config.SMTPSenderName
	case "SMTP_AUTH_EMAIL":
		return config.SMTPAuthEmail
	case "SMTP_AUTH_PASSWORD":
		return config.SMTPAuthPassword
	case "STORAGE_DRIVER":
		return config.StorageDriver
	case "LOCAL_STORAGE_DIR":
		return config.LocalStorageDir
	case "AWS_S3_BUCKET":
		return config.AWSS3Bucket
	case "AWS_S3_REGION":
		return config.AWSS3Region
	case "AWS_ACCESS_KEY":
		return config.AWSAccessKey
	case "AWS_SECRET_KEY":
		return config.AWSSecretKey
	default:
		return ""
	}
}
