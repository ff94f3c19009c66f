package publisher

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ResolveOutputPath はベースとなるディレクトリパスとファイル名から出力パスを生成します。
// ファイル名にディレクトリ要素が含まれる場合はエラーにします。
func ResolveOutputPath(baseDir, fileName string) (string, error) {
	if fileName == "" || strings.ContainsAny(fileName, `/\`) {
		return "", fmt.Errorf("無効なファイル名です: %q", fileName)
	}
	if baseDir == "" {
		baseDir = "."
	}
	return filepath.Join(baseDir, fileName), nil
}
