package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	clibase "github.com/shouni/go-cli-base"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shouni/go-scene-prompt-kit/examples"
	"github.com/shouni/go-scene-prompt-kit/internal/config"
	"github.com/shouni/go-scene-prompt-kit/pkg/domain"
	"github.com/shouni/go-scene-prompt-kit/pkg/parser"
)

const appName = "scene-prompt"

var rootCmd = newRootCmd()

// newRootCmd は clibase のルートコマンドにアプリ固有のフラグと説明を載せるのだ。
// --config と --verbose は clibase が用意してくれるのだ。
func newRootCmd() *cobra.Command {
	cmd := clibase.NewRootCmd(appName, addAppFlags, preRunAppE)
	cmd.Short = "シーンのジオメトリと物語から画像生成用プロンプトを組み立てるのだ。"
	cmd.Long = `カメラ・キャラクター配置・物語グラフ・世界観から、構造化プロンプトと
最終的なプロンプト文字列を決定論的に生成するのだ。`
	cmd.SilenceUsage = true
	return cmd
}

// addAppFlags は、全コマンド共通のフラグを定義して viper に結び付けるのだ。
func addAppFlags(rootCmd *cobra.Command) {
	pf := rootCmd.PersistentFlags()
	pf.StringP("project", "p", "", "プロジェクトファイル（JSON / YAML）なのだ。省略時はデモプロジェクトを使うのだ。")
	pf.String("log-level", "", "ログレベル（debug, info, warn, error）なのだ。")
	pf.String("log-format", "", "ログ形式（text, json）なのだ。")

	for _, name := range []string{"project", "log-level", "log-format"} {
		_ = viper.BindPFlag(name, pf.Lookup(name))
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.AddCommand(promptCmd, presetCmd, serveCmd, watchCmd, validateCmd)
}

// initConfig は設定ファイルと環境変数を viper に読み込むのだ。
func initConfig() {
	if clibase.Flags.ConfigFile != "" {
		viper.SetConfigFile(clibase.Flags.ConfigFile)
	} else {
		viper.SetConfigName("." + appName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
	}

	viper.SetEnvPrefix("SCENE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "設定ファイルを読み込めなかったのだ: %v\n", err)
		}
	}
}

// appConfig は環境変数のデフォルトに、設定ファイルとフラグの値を重ねた設定を返すのだ。
func appConfig() *config.Config {
	cfg := config.LoadConfig()
	override := func(dst *string, key string) {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}
	override(&cfg.LogLevel, "log-level")
	if clibase.Flags.Verbose {
		cfg.LogLevel = "debug"
	}
	override(&cfg.LogFormat, "log-format")
	override(&cfg.ProjectFile, "project")
	override(&cfg.ListenAddr, "listen")
	override(&cfg.OutputFormat, "format")
	override(&cfg.OutputDir, "output-dir")
	if d := viper.GetDuration("rate-interval"); d > 0 {
		cfg.RateInterval = d
	}
	if n := viper.GetInt("max-parallel"); n > 0 {
		cfg.MaxParallel = n
	}
	return cfg
}

// preRunAppE はロガーを設定するのだ。
func preRunAppE(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	slog.SetDefault(cfg.NewLogger())
	return nil
}

// loadProject は指定ファイル、なければ埋め込みのデモプロジェクトを読み込むのだ。
func loadProject(path string) (*domain.Project, error) {
	if path == "" {
		slog.Info("プロジェクトファイルが指定されていないので、デモプロジェクトを使うのだ")
		return examples.DefaultProject()
	}
	p, err := parser.NewProjectParser()
	if err != nil {
		return nil, err
	}
	return p.LoadFile(path)
}

// Execute は、アプリケーションのメインエントリポイントなのだ。
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
