package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/publisher"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

// stdoutDir は出力先に標準出力を指定するための値なのだ。
const stdoutDir = "-"

var promptCmd = &cobra.Command{
	Use:   "prompt [scene-id...]",
	Short: "シーンのプロンプトを生成して出力するのだ。",
	Long: `指定したシーン（省略時は全シーン）のプロンプトを生成するのだ。
--apply-preset を付けると、フォーカスノードの構図プリセットを先に適用するのだよ。
出力先は --output-dir、SCENE_OUTPUT_DIR、設定ファイルの順に決まり、"-" なら標準出力なのだ。`,
	RunE: promptCommand,
}

func init() {
	f := promptCmd.Flags()
	f.StringP("format", "f", "", "出力形式（markdown, json, yaml）なのだ。")
	f.StringP("output-dir", "o", "", "出力先ディレクトリなのだ（\"-\" で標準出力なのだ）。")
	f.Bool("apply-preset", false, "生成前に構図プリセットを適用するのだ。")
	f.String("camera", "", "生成前に適用するカメラプリセット（overhead, eyelevel）なのだ。")
	_ = viper.BindPFlag("format", f.Lookup("format"))
	_ = viper.BindPFlag("output-dir", f.Lookup("output-dir"))
}

func promptCommand(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	applyPreset, _ := cmd.Flags().GetBool("apply-preset")
	camera, _ := cmd.Flags().GetString("camera")

	format, err := publisher.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	project, err := loadProject(cfg.ProjectFile)
	if err != nil {
		return fmt.Errorf("プロジェクトの読み込みに失敗したのだ: %w", err)
	}
	session, err := workflow.NewSession(workflow.SessionArgs{Project: project, Config: workflowConfig(cfg)})
	if err != nil {
		return err
	}

	sceneIDs := args
	if len(sceneIDs) == 0 {
		sceneIDs = session.SceneIDs()
	}

	doc := publisher.Document{Title: project.Name}
	for _, id := range sceneIDs {
		scene, err := synthesizeScene(session, id, applyPreset, camera)
		if err != nil {
			return err
		}
		doc.Entries = append(doc.Entries, publisher.NewEntry(scene, scene.Prompt))
	}

	pub := publisher.NewPromptPublisher(format)
	if cfg.OutputDir == stdoutDir {
		return pub.Publish(cmd.OutOrStdout(), doc)
	}
	path, err := pub.PublishFile(cfg.OutputDir, doc)
	if err != nil {
		return err
	}
	slog.Info("プロンプトを書き出したのだ！", "path", path)
	return nil
}

func synthesizeScene(session *workflow.Session, id string, applyPreset bool, camera string) (domain.Scene, error) {
	if applyPreset {
		if _, err := session.ApplyPreset(id); err != nil {
			return domain.Scene{}, fmt.Errorf("プリセットの適用に失敗したのだ: %w", err)
		}
	}
	if camera != "" {
		if _, err := session.SetCameraPreset(id, camera); err != nil {
			return domain.Scene{}, err
		}
	}
	return session.UpdatePrompt(id)
}
