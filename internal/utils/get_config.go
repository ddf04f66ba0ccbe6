package utils

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	// Application
	AppPort         string `yaml:"APP_PORT"`
	LogLevel        string `yaml:"LOG_LEVEL"`
	LogFormat       string `yaml:"LOG_FORMAT"`
	MaxItemsPerUser string `yaml:"MAX_ITEMS_PER_USER"`
	CORSOrigins     string `yaml:"CORS_ALLOW_ORIGINS"`

	// Database configuration
	DBDriver   string `yaml:"DB_DRIVER"`
	DBUser     string `yaml:"DB_USER"`
	DBName     string `yaml:"DB_NAME"`
	DBPassword string `yaml:"DB_PASSWORD"`
	DBPort     string `yaml:"DB_PORT"`
	DBHost     string `yaml:"DB_HOST"`

	// JWT
	JWTSecret string `yaml:"JWT_SECRET"`

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

	// Gemini API configuration
	GeminiAPIKey  string `yaml:"GEMINI_API_KEY"`
	GeminiModel   string `yaml:"GEMINI_MODEL"`
	GeminiBaseURL string `yaml:"GEMINI_BASE_URL"`

	// Speech-to-text
	SpeechEnabled  string `yaml:"SPEECH_ENABLED"`
	SpeechLanguage string `yaml:"GOOGLE_SPEECH_LANGUAGE"`

	// Redis
	RedisAddr     string `yaml:"REDIS_ADDR"`
	RedisPassword string `yaml:"REDIS_PASSWORD"`
	RedisDB       string `yaml:"REDIS_DB"`
}

var config Config

// fields maps every config key to its slot in config, so lookups and
// environment overrides share one table.
func fields() map[string]*string {
	return map[string]*string{
		"APP_PORT":               &config.AppPort,
		"LOG_LEVEL":              &config.LogLevel,
		"LOG_FORMAT":             &config.LogFormat,
		"MAX_ITEMS_PER_USER":     &config.MaxItemsPerUser,
		"CORS_ALLOW_ORIGINS":     &config.CORSOrigins,
		"DB_DRIVER":              &config.DBDriver,
		"DB_USER":                &config.DBUser,
		"DB_NAME":                &config.DBName,
		"DB_PASSWORD":            &config.DBPassword,
		"DB_PORT":                &config.DBPort,
		"DB_HOST":                &config.DBHost,
		"JWT_SECRET":             &config.JWTSecret,
		"SMTP_HOST":              &config.SMTPHost,
		"SMTP_PORT":              &config.SMTPPort,
		"SMTP_SENDER_NAME":       &config.SMTPSenderName,
		"SMTP_AUTH_EMAIL":        &config.SMTPAuthEmail,
		"SMTP_AUTH_PASSWORD":     &config.SMTPAuthPassword,
		"AWS_S3_BUCKET":          &config.AWSS3Bucket,
		"AWS_S3_REGION":          &config.AWSS3Region,
		"AWS_ACCESS_KEY":         &config.AWSAccessKey,
		"AWS_SECRET_KEY":         &config.AWSSecretKey,
		"GEMINI_API_KEY":         &config.GeminiAPIKey,
		"GEMINI_MODEL":           &config.GeminiModel,
		"GEMINI_BASE_URL":        &config.GeminiBaseURL,
		"SPEECH_ENABLED":         &config.SpeechEnabled,
		"GOOGLE_SPEECH_LANGUAGE": &config.SpeechLanguage,
		"REDIS_ADDR":             &config.RedisAddr,
		"REDIS_PASSWORD":         &config.RedisPassword,
		"REDIS_DB":               &config.RedisDB,
	}
}

// LoadConfig reads .env (if present) and config.yaml; environment variables
// take precedence over values from the YAML file.
func LoadConfig() {
	LoadConfigFrom("config.yaml")
}

func LoadConfigFrom(path string) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Error reading .env file: %s\n", err)
	}

	config = Config{}
	file, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
	} else if err := yaml.Unmarshal(file, &config); err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
	}

	for key, slot := range fields() {
		if v, ok := os.LookupEnv(key); ok {
			*slot = v
		}
	}
}

func GetConfig(key string) string {
	if slot, ok := fields()[key]; ok {
		return *slot
	}
	return ""
}

// GetConfigInt returns the integer value of key, or def when it is unset or
// not a number.
func GetConfigInt(key string, def int) int {
	v := GetConfig(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func GetConfigBool(key string) bool {
	b, _ := strconv.ParseBool(GetConfig(key))
	return b
}
