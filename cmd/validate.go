package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shouni/go-scene-prompt-kit/pkg/parser"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file...>",
	Short: "プロジェクトファイルをスキーマで検証するのだ。",
	Args:  cobra.MinimumNArgs(1),
	RunE:  validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	pp, err := parser.NewProjectParser()
	if err != nil {
		return err
	}

	var errs []error
	for _, path := range args {
		if err := validateFile(pp, path); err != nil {
			slog.Error("検証に失敗したのだ", "path", path, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: OK\n", path)
	}
	return errors.Join(errs...)
}

func validateFile(pp *parser.ProjectParser, path string) error {
	format, err := parser.FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return pp.Validate(data, format)
}
