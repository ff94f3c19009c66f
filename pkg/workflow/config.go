package workflow

import (
	"time"
)

// デフォルト値の定義です。
const (
	DefaultRateInterval = 500 * time.Millisecond
	DefaultRateBurst    = 2
	DefaultDebounce     = 100 * time.Millisecond
)

// Config はセッションとファイル監視の動作設定です。
type Config struct {
	// RateInterval はファイル変更による再生成の最小間隔です。
	RateInterval time.Duration
	RateBurst    int
	// Debounce は連続した書き込みを1回の変更にまとめる待ち時間です。
	Debounce time.Duration

	CacheExpiration time.Duration
	MaxParallel     int
}

// DefaultConfig は推奨されるデフォルト設定を返します。
func DefaultConfig() Config {
	return Config{
		RateInterval:    DefaultRateInterval,
		RateBurst:       DefaultRateBurst,
		Debounce:        DefaultDebounce,
		CacheExpiration: 30 * time.Minute,
		MaxParallel:     4,
	}
}
