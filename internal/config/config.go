package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shouni/go-utils/envutil"
)

// デフォルト値の定義です。
const (
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
	DefaultListenAddr   = ":8080"
	DefaultOutputFormat = "markdown"
	DefaultOutputDir    = "output"
	DefaultRateInterval = 500 * time.Millisecond
	DefaultMaxParallel  = 4
)

// Config はアプリケーション全体の設定を保持する構造体です。
type Config struct {
	LogLevel  string
	LogFormat string

	// ProjectFile が空の場合は埋め込みのデモプロジェクトを使います。
	ProjectFile  string
	ListenAddr   string
	OutputFormat string
	OutputDir    string

	RateInterval time.Duration
	MaxParallel  int
}

// LoadConfig は環境変数から設定を読み込み、構造体を返します。
func LoadConfig() *Config {
	return &Config{
		LogLevel:     envutil.GetEnv("SCENE_LOG_LEVEL", DefaultLogLevel),
		LogFormat:    envutil.GetEnv("SCENE_LOG_FORMAT", DefaultLogFormat),
		ProjectFile:  envutil.GetEnv("SCENE_PROJECT_FILE", ""),
		ListenAddr:   envutil.GetEnv("SCENE_LISTEN_ADDR", DefaultListenAddr),
		OutputFormat: envutil.GetEnv("SCENE_OUTPUT_FORMAT", DefaultOutputFormat),
		OutputDir:    envutil.GetEnv("SCENE_OUTPUT_DIR", DefaultOutputDir),
		RateInterval: parseDuration(envutil.GetEnv("SCENE_RATE_INTERVAL", ""), DefaultRateInterval),
		MaxParallel:  parseInt(envutil.GetEnv("SCENE_MAX_PARALLEL", ""), DefaultMaxParallel),
	}
}

// NewLogger は設定に従って slog.Logger を生成します。
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(c.LogLevel)}
	var h slog.Handler
	if strings.EqualFold(c.LogFormat, "json") {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(h)
}

// ParseLevel はログレベル名を slog.Level に変換します。未知の値は Info です。
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
