package cmd

import (
	"context"

	"github.com/shouni/go-scene-prompt-kit/pkg/publisher"
	"github.com/shouni/go-scene-prompt-kit/pkg/workflow"
)

// publishAll は全シーンのプロンプトを生成してファイルに書き出すのだ。
func publishAll(ctx context.Context, session *workflow.Session, pub *publisher.PromptPublisher, outputDir string) error {
	specs, err := session.SynthesizeAll(ctx)
	if err != nil {
		return err
	}
	project := session.Project()
	doc := publisher.Document{Title: project.Name}
	for i, scene := range project.Scenes {
		doc.Entries = append(doc.Entries, publisher.NewEntry(scene, specs[i]))
	}
	_, err = pub.PublishFile(outputDir, doc)
	return err
}
