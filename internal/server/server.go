package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

const shutdownTimeout = 5 * time.Second

// NewRouter はセッションを操作する HTTP API のルーターを構築します。
func NewRouter(session *workflow.Session) *chi.Mux {
	h := NewHandlers(session)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", h.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/scenes", h.ListScenes)
		r.Route("/scenes/{id}", func(r chi.Router) {
			r.Get("/", h.GetScene)
			r.Post("/preset", h.ApplyPreset)
			r.Post("/prompt", h.UpdatePrompt)
			r.Get("/canvas", h.GetCanvas)
			r.Put("/canvas", h.SyncCanvas)
			r.Post("/camera/{preset}", h.SetCameraPreset)
			r.Put("/focus/{node}", h.SetFocus)
		})
	})

	return r
}

// requestLogger はリクエストごとにメソッド・パス・処理時間を slog に記録します。
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		slog.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// ListenAndServe は ctx がキャンセルされるまで HTTP サーバーを動かし、終了時はグレースフルに停止します。
func ListenAndServe(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP サーバーを起動します", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("HTTP サーバーが停止しました: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("HTTP サーバーの停止に失敗しました: %w", err)
		}
		slog.Info("HTTP サーバーを停止しました")
		return nil
	}
}
