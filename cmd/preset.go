package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shouni/go-scene-prompt-kit/pkg/director"
	"github.com/shouni/go-scene-prompt-kit/pkg/parser"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

var presetCmd = &cobra.Command{
	Use:   "preset <scene-id>",
	Short: "物語のフォーカスノードから構図プリセットを適用するのだ。",
	Long: fmt.Sprintf(`フォーカスノードの compositionPreset に従ってジオメトリを組み立て直し、
プロンプトを再生成するのだ。対応しているプリセット: %v`, director.Presets()),
	Args: cobra.ExactArgs(1),
	RunE: presetCommand,
}

func init() {
	presetCmd.Flags().String("focus", "", "適用前にフォーカスノードを変更するのだ。")
	presetCmd.Flags().String("save", "", "更新後のプロジェクトを保存するファイルなのだ（.json / .yaml）。")
}

func presetCommand(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	focus, _ := cmd.Flags().GetString("focus")
	savePath, _ := cmd.Flags().GetString("save")
	sceneID := args[0]

	project, err := loadProject(cfg.ProjectFile)
	if err != nil {
		return fmt.Errorf("プロジェクトの読み込みに失敗したのだ: %w", err)
	}
	session, err := workflow.NewSession(workflow.SessionArgs{Project: project, Config: workflowConfig(cfg)})
	if err != nil {
		return err
	}

	if focus != "" {
		if _, err := session.SetFocus(sceneID, focus); err != nil {
			return err
		}
	}
	scene, err := session.ApplyPreset(sceneID)
	if err != nil {
		return err
	}

	if savePath != "" {
		if err := parser.SaveFile(savePath, session.Project()); err != nil {
			return err
		}
		slog.Info("プロジェクトを保存したのだ", "path", savePath)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(scene); err != nil {
		return fmt.Errorf("シーンの出力に失敗したのだ: %w", err)
	}
	return enc.Close()
}
