package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/shouni/go-scene-prompt-kit/pkg/parser"
	"github.com/shouni/go-scene-prompt-kit/pkg/publisher"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "プロジェクトファイルを監視して、変更のたびにプロンプトを書き出すのだ。",
	RunE:  watchCommand,
}

func watchCommand(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	if cfg.ProjectFile == "" {
		return fmt.Errorf("監視するプロジェクトファイル（--project）を指定してほしいのだ")
	}
	format, err := publisher.ParseFormat(cfg.OutputFormat)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pp, err := parser.NewProjectParser()
	if err != nil {
		return err
	}
	project, err := pp.LoadFile(cfg.ProjectFile)
	if err != nil {
		return err
	}
	wc := workflowConfig(cfg)
	session, err := workflow.NewSession(workflow.SessionArgs{Project: project, Config: wc})
	if err != nil {
		return err
	}
	pub := publisher.NewPromptPublisher(format)
	if err := publishAll(ctx, session, pub, cfg.OutputDir); err != nil {
		return err
	}

	w, err := workflow.NewWatcher(cfg.ProjectFile, pp, wc)
	if err != nil {
		return err
	}
	errCh := make(chan error, 1)
	go func() { errCh <- w.Run(ctx) }()

	slog.Info("プロジェクトファイルの監視を始めたのだ", "path", w.Path)
	for r := range w.Reloads {
		if r.Err != nil {
			continue
		}
		session.Replace(r.Project)
		if err := publishAll(ctx, session, pub, cfg.OutputDir); err != nil {
			slog.Error("プロンプトの書き出しに失敗したのだ", "error", err)
		}
	}

	if err := <-errCh; err != nil && !errors.Is(err, ctx.Err()) {
		return err
	}
	return nil
}
