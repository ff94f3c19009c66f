package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shouni/go-scene-prompt-kit/pkg/adapters"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

// maxCanvasBodyBytes はキャンバス状態のリクエストボディの上限です。
const maxCanvasBodyBytes = 1 << 20

// Handlers は Session を HTTP に公開するハンドラー群です。
type Handlers struct {
	session *workflow.Session
}

// NewHandlers は新しい Handlers を生成します。
func NewHandlers(session *workflow.Session) *Handlers {
	return &Handlers{session: session}
}

func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) ListScenes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"scenes": h.session.SceneIDs()})
}

func (h *Handlers) GetScene(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.Scene(chi.URLParam(r, "id"))
	respond(w, scene, err)
}

func (h *Handlers) GetCanvas(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.Scene(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, adapters.ToCanvasState(scene.Geometry))
}

func (h *Handlers) ApplyPreset(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.ApplyPreset(chi.URLParam(r, "id"))
	respond(w, scene, err)
}

func (h *Handlers) UpdatePrompt(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.UpdatePrompt(chi.URLParam(r, "id"))
	respond(w, scene, err)
}

func (h *Handlers) SyncCanvas(w http.ResponseWriter, r *http.Request) {
	var state adapters.CanvasState
	body := http.MaxBytesReader(w, r.Body, maxCanvasBodyBytes)
	if err := json.NewDecoder(body).Decode(&state); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		writeJSON(w, status, map[string]string{"error": "invalid canvas state: " + err.Error()})
		return
	}
	scene, err := h.session.SyncCanvas(chi.URLParam(r, "id"), state)
	respond(w, scene, err)
}

func (h *Handlers) SetCameraPreset(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.SetCameraPreset(chi.URLParam(r, "id"), chi.URLParam(r, "preset"))
	respond(w, scene, err)
}

func (h *Handlers) SetFocus(w http.ResponseWriter, r *http.Request) {
	scene, err := h.session.SetFocus(chi.URLParam(r, "id"), chi.URLParam(r, "node"))
	respond(w, scene, err)
}

func respond(w http.ResponseWriter, scene domain.Scene, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scene)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrSceneNotFound), errors.Is(err, workflow.ErrNodeNotFound):
		status = http.StatusNotFound
	case errors.Is(err, workflow.ErrUnknownCameraPreset):
		status = http.StatusBadRequest
	default:
		slog.Error("リクエストの処理に失敗しました", "error", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("レスポンスの書き込みに失敗しました", "error", err)
	}
}
