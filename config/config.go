package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Структура для конфигурации
type Config struct {
	BotToken          string  `yaml:"BotToken"`
	OpenWeatherAPIKey string  `yaml:"OpenWeatherAPIKey"`
	Debug             bool    `yaml:"Debug"`
	UsersFile         string  `yaml:"UsersFile"`
	HTTPTimeoutSec    int     `yaml:"HTTPTimeoutSec"`
	DefaultLat        float64 `yaml:"DefaultLat"`
	DefaultLon        float64 `yaml:"DefaultLon"`
	Language          string  `yaml:"Language"`
}

// Load читает конфигурацию из yaml-файла и применяет поверх неё переменные
// окружения (BOT_TOKEN, OPENWEATHER_API_KEY). Секреты держим в .env,
// остальное — в файле конфигурации.
func Load(path string) (*Config, error) {
	// .env не обязателен, переменные могут прийти из окружения напрямую
	_ = godotenv.Load()

	cfg := &Config{
		UsersFile:      "data/users.json",
		HTTPTimeoutSec: 10,
		// Москва — координаты по умолчанию для прогноза погоды
		DefaultLat: 55.7558,
		DefaultLon: 37.6176,
		Language:   "ru",
	}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("разбор %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.BotToken = v
	}
	if v := os.Getenv("OPENWEATHER_API_KEY"); v != "" {
		cfg.OpenWeatherAPIKey = v
	}

	if cfg.BotToken == "" {
		return nil, errors.New("не задан токен бота (BotToken в config.yaml или BOT_TOKEN в окружении)")
	}

	return cfg, nil
}

// HTTPTimeout возвращает таймаут для исходящих HTTP-запросов.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}
