package service

import "strings"

// previewText 多行建议压成一行后按 rune 截断
func previewText(summary string) string {
	flat := strings.Join(strings.Fields(strings.ReplaceAll(summary, "\n", " / ")), " ")
	return truncateRunes(flat, summaryPreviewRunes)
}

// truncateRunes 超过 max 个 rune 时截断并加省略号
func truncateRunes(s string, max int) string {
	if max <= 0 || s == "" {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}
