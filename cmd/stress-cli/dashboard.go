package main

import (
	"github.com/spf13/cobra"

	"github.com/yuqie6/stresssense/internal/tui"
)

// dashboardCmd 交互式看板
func (a *app) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "打开交互式压力看板",
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(tui.New(a.core.NewTracker(), a.core.History))
		},
	}
}
