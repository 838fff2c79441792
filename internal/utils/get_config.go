package utils

import (
	"log"
	"os"
	"strconv"
	"sync"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort     string `yaml:"APP_PORT"`
	AppURL      string `yaml:"APP_URL"`
	CORSOrigins string `yaml:"CORS_ORIGINS"`

	// Content backend
	BackendURL            string `yaml:"BACKEND_URL"`
	BackendTimeoutSeconds int    `yaml:"BACKEND_TIMEOUT_SECONDS"`
	AttachmentMaxBytes    int    `yaml:"ATTACHMENT_MAX_BYTES"`

	// Database configuration
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT and AES Keys
	JWTSecret string `yaml:"JWT_SECRET"`
	AESKey    string `yaml:"AES_KEY"`

	// Mailing configuration
	SMTPHost         string `yaml:"SMTP_HOST"`
	SMTPPort         string `yaml:"SMTP_PORT"`
	SMTPSenderName   string `yaml:"SMTP_SENDER_NAME"`
	SMTPAuthEmail    string `yaml:"SMTP_AUTH_EMAIL"`
	SMTPAuthPassword string `yaml:"SMTP_AUTH_PASSWORD"`

	// AWS S3 configuration
	AWSS3Bucket  string `yaml:"AWS_S3_BUCKET"`
	AWSS3Region  string `yaml:"AWS_S3_REGION"`
	AWSAccessKey string `yaml:"AWS_ACCESS_KEY"`
	AWSSecretKey string `yaml:"AWS_SECRET_KEY"`
}

var (
	config     Config
	configOnce sync.Once
	configPath = "config.yaml"
)

// LoadConfig reads config.yaml once. Environment variables with the same
// key take precedence over the file.
func LoadConfig() {
	configOnce.Do(func() {
		loadConfigFile(configPath)
	})
}

func loadConfigFile(path string) {
	config = Config{}

	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	applyDefaults(&config)
}

func applyDefaults(c *Config) {
	if c.AppPort == "" {
		c.AppPort = "8080"
	}
	if c.AppURL == "" {
		c.AppURL = "http://localhost:3000"
	}
	if c.BackendURL == "" {
		c.BackendURL = "http://localhost:1337"
	}
	if c.BackendTimeoutSeconds <= 0 {
		c.BackendTimeoutSeconds = 15
	}
	if c.CORSOrigins == "" {
		c.CORSOrigins = "*"
	}
}

func GetConfig(key string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}

	switch key {
	case "APP_PORT":
		return config.AppPort
	case "APP_URL":
		return config.AppURL
	case "CORS_ORIGINS":
		return config.CORSOrigins
	case "BACKEND_URL":
		return config.BackendURL
	case "BACKEND_TIMEOUT_SECONDS":
		return strconv.Itoa(config.BackendTimeoutSeconds)
	case "ATTACHMENT_MAX_BYTES":
		if config.AttachmentMaxBytes <= 0 {
			return ""
		}
		return strconv.Itoa(config.AttachmentMaxBytes)
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
	case "JWT_SECRET":
		return config.JWTSecret
	case "AES_KEY":
		return config.AESKey
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

// GetConfigInt returns the integer value of key, or fallback when unset or malformed.
func GetConfigInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetConfig(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
