// Пакет config: загрузка и валидация конфигурации Content Dashboard
// из переменных окружения.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bigkaa/goartstore/content-dashboard/internal/apiclient"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Config содержит все параметры конфигурации Content Dashboard.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- Content API ---

	// Базовый URL backend; пустой: mock-режим
	APIBase string
	// Флаги функций (mock-api принудительно включает mock-режим)
	FeatureFlags []string
	// Публичный URL dashboard, префикс mock-ссылок предпросмотра
	FrontendURL string
	// Метка окружения в боковой панели (только отображение)
	EnvLabel string
	// Путь к CA-сертификату для TLS к backend (опционально)
	APICACertPath string
	// Таймаут HTTP-клиента backend (0: без таймаута)
	APITimeout time.Duration
	// Путь проверки доступности backend относительно APIBase
	APIHealthPath string

	// --- Mock-хранилище ---

	// Имитация сетевой задержки mock-операций
	MockLatency bool
	// Демо-запись при старте
	MockSeed bool

	// --- UI-сессии ---

	SessionTTL time.Duration
	SessionMax int

	// --- topologymetrics ---

	// Группа в метриках зависимостей
	DephealthGroup string
	// Интервал проверки backend
	DephealthCheckInterval time.Duration

	// --- Graceful shutdown ---

	ShutdownTimeout time.Duration
}

// Load загружает конфигурацию из переменных окружения, валидирует
// значения и возвращает Config или ошибку.
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	// CD_PORT: порт HTTP-сервера (по умолчанию 8080)
	cfg.Port, err = getEnvInt("CD_PORT", 8080)
	if err != nil {
		return nil, fmt.Errorf("CD_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("CD_PORT: значение %d вне допустимого диапазона 1-65535", cfg.Port)
	}

	// CD_LOG_LEVEL: уровень логирования (по умолчанию info)
	cfg.LogLevel, err = parseLogLevel(getEnvDefault("CD_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("CD_LOG_LEVEL: %w", err)
	}

	// CD_LOG_FORMAT: формат логов (по умолчанию json)
	cfg.LogFormat = getEnvDefault("CD_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("CD_LOG_FORMAT: недопустимое значение %q, допустимые: json, text", cfg.LogFormat)
	}

	// --- Content API ---

	// CD_API_BASE: без trailing slash; пустое значение включает mock-режим
	cfg.APIBase = strings.TrimRight(strings.TrimSpace(os.Getenv("CD_API_BASE")), "/")

	cfg.FeatureFlags = parseCSV(os.Getenv("CD_FEATURE_FLAGS"))
	cfg.FrontendURL = strings.TrimRight(os.Getenv("CD_FRONTEND_URL"), "/")
	cfg.EnvLabel = getEnvDefault("CD_ENV_LABEL", "development")
	cfg.APICACertPath = os.Getenv("CD_API_CA_CERT_PATH")

	// CD_API_TIMEOUT: таймаут транспорта (по умолчанию 30s), не политика повторов
	cfg.APITimeout, err = getEnvDuration("CD_API_TIMEOUT", 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CD_API_TIMEOUT: %w", err)
	}
	if cfg.APITimeout < 0 {
		return nil, fmt.Errorf("CD_API_TIMEOUT: отрицательное значение %v", cfg.APITimeout)
	}

	// CD_API_HEALTH_PATH: путь проверки backend для topologymetrics (по умолчанию /files)
	cfg.APIHealthPath = getEnvDefault("CD_API_HEALTH_PATH", "/files")
	if !strings.HasPrefix(cfg.APIHealthPath, "/") {
		return nil, fmt.Errorf("CD_API_HEALTH_PATH: путь должен начинаться с /: %q", cfg.APIHealthPath)
	}

	// --- Mock-хранилище ---

	cfg.MockLatency, err = getEnvBool("CD_MOCK_LATENCY", true)
	if err != nil {
		return nil, fmt.Errorf("CD_MOCK_LATENCY: %w", err)
	}
	cfg.MockSeed, err = getEnvBool("CD_MOCK_SEED", true)
	if err != nil {
		return nil, fmt.Errorf("CD_MOCK_SEED: %w", err)
	}

	// --- UI-сессии ---

	// CD_SESSION_TTL: время жизни неактивной сессии (по умолчанию 30m)
	cfg.SessionTTL, err = getEnvDuration("CD_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, fmt.Errorf("CD_SESSION_TTL: %w", err)
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("CD_SESSION_TTL: значение должно быть положительным")
	}

	// CD_SESSION_MAX: максимум одновременных сессий (по умолчанию 1000)
	cfg.SessionMax, err = getEnvInt("CD_SESSION_MAX", 1000)
	if err != nil {
		return nil, fmt.Errorf("CD_SESSION_MAX: %w", err)
	}
	if cfg.SessionMax < 1 {
		return nil, fmt.Errorf("CD_SESSION_MAX: значение %d меньше 1", cfg.SessionMax)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("CD_DEPHEALTH_GROUP", "content-dashboard")
	cfg.DephealthCheckInterval, err = getEnvDuration("CD_DEPHEALTH_CHECK_INTERVAL", 15*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CD_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	// --- Graceful shutdown ---

	// CD_SHUTDOWN_TIMEOUT: таймаут graceful shutdown (по умолчанию 5s)
	cfg.ShutdownTimeout, err = getEnvDuration("CD_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("CD_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

// APIConfig возвращает параметры клиента Content API.
func (c *Config) APIConfig() apiclient.Config {
	return apiclient.Config{
		BaseURL:      c.APIBase,
		FeatureFlags: c.FeatureFlags,
		FrontendURL:  c.FrontendURL,
		CACertPath:   c.APICACertPath,
		Timeout:      c.APITimeout,
	}
}

// MockMode сообщает, работает ли dashboard без backend.
func (c *Config) MockMode() bool {
	return c.APIConfig().MockMode()
}

// SecureCookies: cookie с флагом Secure, если dashboard опубликован по https.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(c.FrontendURL, "https://")
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvBool возвращает логическое значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное логическое значение: %q (true/false)", val)
	}
	return b, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}

// parseCSV разбирает строку, разделённую запятыми, на срез строк.
// Пробелы вокруг элементов убираются, пустые элементы игнорируются.
func parseCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}
