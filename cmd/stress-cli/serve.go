package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yuqie6/stresssense/internal/httpapi"
)

// serveCmd 本地 JSON API
func (a *app) serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动本地 HTTP 接口",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = a.core.Cfg.Server.Addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := httpapi.Start(ctx, a.core, httpapi.Options{ListenAddr: addr})
			if err != nil {
				return fmt.Errorf("启动 HTTP 服务失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "🌐 已启动: %s（Ctrl+C 停止）\n", srv.BaseURL())
			<-ctx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "监听地址，默认使用配置 server.addr")
	return cmd
}
