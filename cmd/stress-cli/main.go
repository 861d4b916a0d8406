package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yuqie6/stresssense/internal/bootstrap"
)

// skipCoreAnnotation 标记无需打开存储的命令
const skipCoreAnnotation = "stresssense/skip-core"

// app 命令共享的状态
type app struct {
	cfgFile string
	core    *bootstrap.Core
}

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

// run 构建命令树并执行，结束时总会关闭存储
func run(args []string, in io.Reader, out io.Writer) error {
	a := &app{}
	defer a.close()

	root := a.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	return root.Execute()
}

func (a *app) rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "stress-cli",
		Short:         "StressSense - 每日压力追踪",
		Long:          `StressSense 根据一天 24 小时的休息、学习、游戏与其他活动计算压力分数，给出建议并保存每日汇总。`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if skipCore(cmd) {
				return nil
			}
			core, err := bootstrap.NewCore(bootstrap.Options{
				ConfigPath: a.cfgFile,
				Component:  "cli",
			})
			if err != nil {
				return err
			}
			a.core = core
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "配置文件路径")

	// 添加子命令
	rootCmd.AddCommand(a.evalCmd())
	rootCmd.AddCommand(a.saveCmd())
	rootCmd.AddCommand(a.quickCmd())
	rootCmd.AddCommand(a.historyCmd())
	rootCmd.AddCommand(a.dashboardCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func (a *app) close() {
	if a.core != nil {
		_ = a.core.Close()
		a.core = nil
	}
}

func skipCore(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations[skipCoreAnnotation] == "true" {
			return true
		}
	}
	return false
}
