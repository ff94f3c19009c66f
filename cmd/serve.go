package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shouni/go-scene-prompt-kit/internal/config"
	"github.com/shouni/go-scene-prompt-kit/internal/server"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "シーン編集用の HTTP API を起動するのだ。",
	RunE:  serveCommand,
}

func init() {
	serveCmd.Flags().StringP("listen", "l", "", "待ち受けアドレスなのだ（デフォルト :8080）。")
	_ = viper.BindPFlag("listen", serveCmd.Flags().Lookup("listen"))
}

func serveCommand(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	project, err := loadProject(cfg.ProjectFile)
	if err != nil {
		return fmt.Errorf("プロジェクトの読み込みに失敗したのだ: %w", err)
	}
	session, err := workflow.NewSession(workflow.SessionArgs{Project: project, Config: workflowConfig(cfg)})
	if err != nil {
		return err
	}
	if _, err := session.SynthesizeAll(ctx); err != nil {
		return err
	}

	return server.ListenAndServe(ctx, cfg.ListenAddr, server.NewRouter(session))
}

// workflowConfig はアプリ設定からセッションと監視の設定を作るのだ。
func workflowConfig(cfg *config.Config) workflow.Config {
	wc := workflow.DefaultConfig()
	wc.RateInterval = cfg.RateInterval
	wc.MaxParallel = cfg.MaxParallel
	return wc
}
