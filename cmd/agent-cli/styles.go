package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("#8BC34A")
	colorInfo    = lipgloss.Color("#2196F3")
	colorWarning = lipgloss.Color("#FFC107")
	colorError   = lipgloss.Color("#e53935")
	colorMuted   = lipgloss.Color("#7a8699")
)

// styles 终端输出样式。渲染器绑定到输出流，非终端输出时自动退化为纯文本。
type styles struct {
	prompt   lipgloss.Style
	agent    lipgloss.Style
	creation lipgloss.Style
	hint     lipgloss.Style
	err      lipgloss.Style
	label    lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		prompt:   r.NewStyle().Foreground(colorAccent).Bold(true),
		agent:    r.NewStyle().Foreground(colorInfo),
		creation: r.NewStyle().Foreground(colorWarning).Bold(true),
		hint:     r.NewStyle().Foreground(colorMuted).Italic(true),
		err:      r.NewStyle().Foreground(colorError),
		label:    r.NewStyle().Bold(true),
	}
}
