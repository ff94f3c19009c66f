package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shouni/go-scene-prompt-kit/examples"
	"github.com/shouni/go-scene-prompt-kit/pkg/adapters"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	project, err := examples.DefaultProject()
	if err != nil {
		t.Fatal(err)
	}
	session, err := workflow.NewSession(workflow.SessionArgs{Project: project, Config: workflow.DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(NewRouter(session))
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path string, body []byte) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeScene(t *testing.T, resp *http.Response) domain.Scene {
	t.Helper()
	var scene domain.Scene
	if err := json.NewDecoder(resp.Body).Decode(&scene); err != nil {
		t.Fatalf("レスポンスの解析に失敗しました: %v", err)
	}
	return scene
}

func TestRouter_Status(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"ヘルスチェック", http.MethodGet, "/health", http.StatusOK},
		{"シーン一覧", http.MethodGet, "/api/v1/scenes", http.StatusOK},
		{"シーン取得", http.MethodGet, "/api/v1/scenes/scene-1", http.StatusOK},
		{"キャンバス取得", http.MethodGet, "/api/v1/scenes/scene-1/canvas", http.StatusOK},
		{"存在しないシーン", http.MethodGet, "/api/v1/scenes/missing", http.StatusNotFound},
		{"存在しないシーンの再生成", http.MethodPost, "/api/v1/scenes/missing/prompt", http.StatusNotFound},
		{"未知のカメラプリセット", http.MethodPost, "/api/v1/scenes/scene-1/camera/fisheye", http.StatusBadRequest},
		{"存在しないノード", http.MethodPut, "/api/v1/scenes/scene-1/focus/ev-99", http.StatusNotFound},
		{"不正なキャンバス", http.MethodPut, "/api/v1/scenes/scene-1/canvas", http.StatusBadRequest},
		{"未定義のメソッド", http.MethodDelete, "/api/v1/scenes/scene-1", http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body []byte
			if strings.HasSuffix(tt.path, "/canvas") && tt.method == http.MethodPut {
				body = []byte("{not json")
			}
			resp := do(t, srv, tt.method, tt.path, body)
			if resp.StatusCode != tt.want {
				t.Errorf("ステータス: 期待値 %d, 実際の値 %d", tt.want, resp.StatusCode)
			}
		})
	}
}

func TestRouter_PromptFlow(t *testing.T) {
	srv := newTestServer(t)

	t.Run("プロンプトを再生成する", func(t *testing.T) {
		scene := decodeScene(t, do(t, srv, http.MethodPost, "/api/v1/scenes/scene-1/prompt", nil))
		if !strings.HasPrefix(scene.Prompt.RawPrompt, "a late teens female") {
			t.Errorf("rawPrompt: %q", scene.Prompt.RawPrompt)
		}
	})

	t.Run("プリセットを適用する", func(t *testing.T) {
		scene := decodeScene(t, do(t, srv, http.MethodPost, "/api/v1/scenes/scene-1/preset", nil))
		if scene.Geometry.Camera.ID != "cam-faceoff" {
			t.Errorf("face_off のカメラを期待しました: %+v", scene.Geometry.Camera)
		}
	})

	t.Run("フォーカスを変更してからプリセットを適用する", func(t *testing.T) {
		scene := decodeScene(t, do(t, srv, http.MethodPut, "/api/v1/scenes/scene-1/focus/ev-3", nil))
		if scene.FocusNodeID != "ev-3" {
			t.Errorf("focusNodeId: %q", scene.FocusNodeID)
		}
		scene = decodeScene(t, do(t, srv, http.MethodPost, "/api/v1/scenes/scene-1/preset", nil))
		if scene.Geometry.Camera.ID != "cam-rush" {
			t.Errorf("rush_towards のカメラを期待しました: %+v", scene.Geometry.Camera)
		}
	})

	t.Run("キャンバスを同期する", func(t *testing.T) {
		var state adapters.CanvasState
		resp := do(t, srv, http.MethodGet, "/api/v1/scenes/scene-1/canvas", nil)
		if err := json.NewDecoder(resp.Body).Decode(&state); err != nil {
			t.Fatal(err)
		}
		state.Camera.FovDeg = 90
		body, _ := json.Marshal(state)

		scene := decodeScene(t, do(t, srv, http.MethodPut, "/api/v1/scenes/scene-1/canvas", body))
		if !strings.Contains(scene.Prompt.RawPrompt, "wide angle lens") {
			t.Errorf("広角レンズのタグを期待しました: %q", scene.Prompt.RawPrompt)
		}
		if scene.Geometry.Camera.ID != adapters.DefaultCameraID {
			t.Errorf("カメラ ID: %q", scene.Geometry.Camera.ID)
		}
	})

	t.Run("カメラプリセットを適用する", func(t *testing.T) {
		scene := decodeScene(t, do(t, srv, http.MethodPost, "/api/v1/scenes/scene-1/camera/eyelevel", nil))
		if scene.Geometry.Camera.Eye != domain.Vec(0, 1.6, 8) {
			t.Errorf("eye: %+v", scene.Geometry.Camera.Eye)
		}
	})
}

func TestRouter_SyncCanvasBodyLimit(t *testing.T) {
	srv := newTestServer(t)
	before := decodeScene(t, do(t, srv, http.MethodGet, "/api/v1/scenes/scene-1", nil))

	body := []byte(`{"camera": {"id": "` + strings.Repeat("x", maxCanvasBodyBytes) + `"}, "entities": []}`)
	resp := do(t, srv, http.MethodPut, "/api/v1/scenes/scene-1/canvas", body)
	if resp.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("ステータス: 期待値 %d, 実際の値 %d", http.StatusRequestEntityTooLarge, resp.StatusCode)
	}

	after := decodeScene(t, do(t, srv, http.MethodGet, "/api/v1/scenes/scene-1", nil))
	if after.Geometry.Camera != before.Geometry.Camera || len(after.Geometry.Objects) != len(before.Geometry.Objects) {
		t.Errorf("上限を超えたボディでジオメトリが書き換えられました: %+v", after.Geometry.Camera)
	}
}
