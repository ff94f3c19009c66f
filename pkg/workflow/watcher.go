package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
)

// Loader はプロジェクトファイルを読み込むためのインターフェースです。
// *parser.ProjectParser がこれを満たします。
type Loader interface {
	LoadFile(path string) (*domain.Project, error)
}

// Reload はファイル変更による再読み込みの結果です。Err が nil でなければ Project は nil です。
type Reload struct {
	Path    string
	Project *domain.Project
	Err     error
}

// Watcher はプロジェクトファイルを fsnotify で監視し、変更のたびに再読み込みします。
// エディタの置き換え保存にも追従できるよう、ファイルではなく親ディレクトリを監視します。
type Watcher struct {
	Path    string
	Reloads <-chan Reload

	reloads  chan Reload
	loader   Loader
	limiter  *rate.Limiter
	debounce time.Duration
	watcher  *fsnotify.Watcher
}

// NewWatcher は path を監視する Watcher を生成します。監視は Run で開始します。
func NewWatcher(path string, loader Loader, cfg Config) (*Watcher, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader は必須です")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("監視対象のパスを解決できません: %w", err)
	}
	if cfg.RateInterval <= 0 {
		cfg.RateInterval = DefaultRateInterval
	}
	if cfg.RateBurst <= 0 {
		cfg.RateBurst = DefaultRateBurst
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify の初期化に失敗しました: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("ディレクトリの監視に失敗しました: %w", err)
	}

	ch := make(chan Reload, 4)
	return &Watcher{
		Path:     abs,
		Reloads:  ch,
		reloads:  ch,
		loader:   loader,
		limiter:  rate.NewLimiter(rate.Every(cfg.RateInterval), cfg.RateBurst),
		debounce: cfg.Debounce,
		watcher:  fw,
	}, nil
}

// Run は ctx がキャンセルされるまで監視を続けます。終了時に Reloads を閉じます。
func (w *Watcher) Run(ctx context.Context) error {
	defer close(w.reloads)
	defer w.watcher.Close()

	var pending time.Time
	ticker := time.NewTicker(w.debounce)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.Path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				pending = time.Now()
			}

		case <-ticker.C:
			if pending.IsZero() || time.Since(pending) < w.debounce {
				continue
			}
			pending = time.Time{}
			if err := w.limiter.Wait(ctx); err != nil {
				return ctx.Err()
			}
			if !w.emit(ctx, w.load()) {
				return ctx.Err()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("ファイル監視でエラーが発生しました", "path", w.Path, "error", err)
		}
	}
}

func (w *Watcher) load() Reload {
	project, err := w.loader.LoadFile(w.Path)
	if err != nil {
		slog.Warn("プロジェクトの再読み込みに失敗しました", "path", w.Path, "error", err)
		return Reload{Path: w.Path, Err: err}
	}
	slog.Info("プロジェクトを再読み込みしました", "path", w.Path, "scenes", len(project.Scenes))
	return Reload{Path: w.Path, Project: project}
}

func (w *Watcher) emit(ctx context.Context, r Reload) bool {
	select {
	case w.reloads <- r:
		return true
	case <-ctx.Done():
		return false
	}
}
