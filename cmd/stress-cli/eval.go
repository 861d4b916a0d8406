package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yuqie6/stresssense/internal/schema"
	"github.com/yuqie6/stresssense/internal/service"
)

const hoursFlagHelp = `按小时描述一天，例如 "0-7:rest,8-11:study,12:other,13-17:study,18-21:game"，未写到的小时为 rest`

// evalCmd 计算一天的压力而不保存
func (a *app) evalCmd() *cobra.Command {
	var hours string

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "计算压力分数与建议",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := schema.ParseLedgerSpec(hours)
			if err != nil {
				return err
			}
			tracker := a.core.NewTracker()
			tracker.Load(ledger)
			printEvaluation(cmd.OutOrStdout(), tracker.Formula(), tracker.Evaluate())
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", hoursFlagHelp)
	return cmd
}

// saveCmd 计算并追加一条日汇总
func (a *app) saveCmd() *cobra.Command {
	var hours string
	var date string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "计算并保存当天汇总",
		RunE: func(cmd *cobra.Command, args []string) error {
			ledger, err := schema.ParseLedgerSpec(hours)
			if err != nil {
				return err
			}
			tracker := a.core.NewTracker()
			tracker.Load(ledger)

			out := cmd.OutOrStdout()
			printEvaluation(out, tracker.Formula(), tracker.Evaluate())

			rec, err := tracker.SaveDay(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n✅ 已保存 %s 的记录到 %s\n", rec.Date, a.core.Store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&hours, "hours", "", hoursFlagHelp)
	cmd.Flags().StringVar(&date, "date", "", "记录日期 (YYYY-MM-DD)，默认今天")
	return cmd
}

// quickCmd 输入各类总时长的快速模式
func (a *app) quickCmd() *cobra.Command {
	var rest, study, game, other string
	var save bool
	var date string

	cmd := &cobra.Command{
		Use:   "quick",
		Short: "按各类总时长快速估算压力",
		Long:  `快速模式使用总时长公式（7×学习 + 3×游戏 + 4×其他 − 8×休息），未通过参数给出的时长会在终端询问。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			reader := bufio.NewReader(cmd.InOrStdin())
			prompts := []struct {
				flag  string
				label string
				dst   *string
			}{
				{"rest", "休息/睡眠", &rest},
				{"study", "学习/工作", &study},
				{"game", "游戏", &game},
				{"other", "其他", &other},
			}
			for _, p := range prompts {
				if cmd.Flags().Changed(p.flag) {
					continue
				}
				v, err := prompt(reader, out, fmt.Sprintf("请输入%s小时数: ", p.label))
				if err != nil {
					return err
				}
				*p.dst = v
			}

			totals, err := service.ParseHourTotals(rest, study, game, other)
			if err != nil {
				return err
			}
			result := service.QuickAnalyze(totals)
			printQuick(out, result)

			if !save {
				return nil
			}
			if date == "" {
				date = time.Now().Format(schema.DateLayout)
			} else if _, err := time.Parse(schema.DateLayout, date); err != nil {
				return fmt.Errorf("日期格式应为 YYYY-MM-DD: %w", err)
			}
			if err := a.core.Store.Append(cmd.Context(), result.Record(date)); err != nil {
				return fmt.Errorf("保存日汇总失败: %w", err)
			}
			fmt.Fprintf(out, "\n✅ 已保存 %s 的记录到 %s\n", date, a.core.Store.Path())
			return nil
		},
	}

	cmd.Flags().StringVar(&rest, "rest", "", "休息/睡眠小时数")
	cmd.Flags().StringVar(&study, "study", "", "学习/工作小时数")
	cmd.Flags().StringVar(&game, "game", "", "游戏小时数")
	cmd.Flags().StringVar(&other, "other", "", "其他活动小时数")
	cmd.Flags().BoolVar(&save, "save", false, "保存为当天汇总")
	cmd.Flags().StringVar(&date, "date", "", "记录日期 (YYYY-MM-DD)，默认今天")
	return cmd
}

func prompt(r *bufio.Reader, w io.Writer, label string) (string, error) {
	fmt.Fprint(w, label)
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("读取输入失败: %w", err)
	}
	return strings.TrimSpace(line), nil
}
