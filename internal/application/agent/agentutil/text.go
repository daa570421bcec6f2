// Package agentutil 提供对话设定管线共用的文本工具
package agentutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// Normalize 全角转半角、转小写并去除首尾空白。
// 注意 width.Fold 会把全角标点折叠为半角，匹配规则需同时兼容两种写法。
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

// Fold 仅做全角转半角与去空白，保留大小写，供抽取人名等原文字段使用
func Fold(s string) string {
	return strings.TrimSpace(width.Fold.String(s))
}

// ContainsAny 判断 s 是否包含任一子串，返回第一个命中的子串
func ContainsAny(s string, subs []string) (string, bool) {
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			return sub, true
		}
	}
	return "", false
}

// MatchAll 返回 s 中出现的全部子串，按 subs 的顺序
func MatchAll(s string, subs []string) []string {
	var out []string
	for _, sub := range subs {
		if sub != "" && strings.Contains(s, sub) {
			out = append(out, sub)
		}
	}
	return out
}

// TrimPunct 去除首尾的中英文标点与空白
func TrimPunct(s string) string {
	return strings.Trim(s, " \t\r\n。．.！!？?，,；;：:、\"'“”‘’（）()")
}

// TruncateRunes 按字符数截断
func TruncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max]) + "…"
}
