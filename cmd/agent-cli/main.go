// Package main 对话代理本地命令行，基于内存会话存储运行，便于手动调试
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/session"
	"z-novel-ai-agent/internal/config"
	"z-novel-ai-agent/internal/infrastructure/persistence/memory"
	"z-novel-ai-agent/pkg/logger"
)

var (
	configDir string
	seed      uint64
	logLevel  string
	jsonOut   bool
)

var rootCmd = &cobra.Command{
	Use:   "agent-cli",
	Short: "小说创作对话代理的本地交互终端",
	Long: `agent-cli 在本地启动一个对话会话，逐行读取输入并打印代理回复。

会话状态只保存在内存里，退出即丢弃。输入 /help 查看可用指令。`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.InitWithWriter(os.Stderr, logLevel, "text")
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newService()
		if err != nil {
			return err
		}
		return newREPL(svc, cmd.InOrStdin(), cmd.OutOrStdout(), jsonOut).Run(cmd.Context())
	},
}

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "按行回放文件中的输入，打印每轮回复",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open replay file: %w", err)
		}
		defer f.Close()

		svc, err := newService()
		if err != nil {
			return err
		}
		r := newREPL(svc, f, cmd.OutOrStdout(), jsonOut)
		r.echo = true
		return r.Run(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configDir, "config", "c", "", "配置目录，为空时使用内置默认配置")
	rootCmd.PersistentFlags().Uint64Var(&seed, "seed", 0, "补全器随机种子，0 表示沿用配置")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "日志级别")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "以 JSON 输出每轮结果")

	rootCmd.AddCommand(replayCmd)
}

func newService() (*session.Service, error) {
	cfg := agent.DefaultConfig()
	if configDir != "" {
		appCfg, err := config.LoadFromDir(configDir)
		if err != nil {
			return nil, err
		}
		cfg = agent.FromConfig(appCfg.Agent)
	}
	if seed != 0 {
		cfg.Completer.Seed = seed
	}
	return session.NewService(agent.NewFactory(cfg), memory.NewSessionStore(), nil, nil, session.Options{}), nil
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
