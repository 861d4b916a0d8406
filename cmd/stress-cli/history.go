package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
	"github.com/yuqie6/stresssense/internal/watcher"
)

// historyCmd 查看历史，可持续监听文件变化
func (a *app) historyCmd() *cobra.Command {
	var (
		watch bool
		date  string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "查看历史记录与压力走势",
		RunE: func(cmd *cobra.Command, args []string) error {
			load := a.core.History.Previews
			if date != "" {
				if _, err := time.Parse(schema.DateLayout, date); err != nil {
					return fmt.Errorf("日期格式应为 YYYY-MM-DD: %w", err)
				}
				load = func(ctx context.Context) []service.SummaryPreview {
					return a.core.History.PreviewsOn(ctx, date)
				}
			}

			out := cmd.OutOrStdout()
			printHistory(out, load(cmd.Context()))
			if !watch {
				return nil
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			return watchHistory(ctx, out, a.core.Store.Path(), load)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "文件变化时重新输出")
	cmd.Flags().StringVar(&date, "date", "", "只显示某一天的记录 (YYYY-MM-DD)")
	return cmd
}

// watchHistory 阻塞直到 ctx 结束，每次变化重新输出历史
func watchHistory(ctx context.Context, out io.Writer, path string, load func(context.Context) []service.SummaryPreview) error {
	w, err := watcher.NewHistoryWatcher(path, watcher.DefaultDebounce)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\n👀 正在监听 %s，Ctrl+C 退出\n", path)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.Run(ctx) })
	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-w.Changes():
				fmt.Fprintln(out, "\n"+separator)
				printHistory(out, load(ctx))
			}
		}
	})

	return g.Wait()
}
