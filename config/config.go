package config

import (
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Storage  StorageConfig
	Redis    RedisConfig
	WhatsApp WhatsAppConfig
}

type AppConfig struct {
	Port string
	Env  string
}

// StorageConfig selects the persistence backend. Backend is "file" or
// "redis"; DataDir only applies to the file backend.
type StorageConfig struct {
	Backend string
	DataDir string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// WhatsAppConfig configures the confirmation deep link. CountryCode is the
// international calling code prefixed to patient phone numbers.
type WhatsAppConfig struct {
	CountryCode string
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("STORAGE_BACKEND", "file")
	viper.SetDefault("STORAGE_DATA_DIR", "data")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("WHATSAPP_COUNTRY_CODE", "55")

	// A missing .env is fine, environment variables and defaults apply.
	if err := viper.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		Storage: StorageConfig{
			Backend: viper.GetString("STORAGE_BACKEND"),
			DataDir: viper.GetString("STORAGE_DATA_DIR"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		WhatsApp: WhatsAppConfig{
			CountryCode: viper.GetString("WHATSAPP_COUNTRY_CODE"),
		},
	}

	return config, nil
}
