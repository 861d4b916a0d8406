package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Up    key.Binding
	Down  key.Binding
	Rest  key.Binding
	Study key.Binding
	Game  key.Binding
	Other key.Binding
	Paint key.Binding
	Save  key.Binding
	Reset key.Binding
	Help  key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "上一小时")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "下一小时")),
		Up:    key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "上一行")),
		Down:  key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "下一行")),
		Rest:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "休息")),
		Study: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "学习")),
		Game:  key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "游戏")),
		Other: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "其他")),
		Paint: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "涂色")),
		Save:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "保存")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "重置")),
		Help:  key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "帮助")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "退出")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Paint, k.Save, k.Reset, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Rest, k.Study, k.Game, k.Other},
		{k.Paint, k.Save, k.Reset, k.Help, k.Quit},
	}
}
