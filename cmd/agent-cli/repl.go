package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"z-novel-ai-agent/internal/application/agent"
	"z-novel-ai-agent/internal/application/session"
	apperrors "z-novel-ai-agent/pkg/errors"
)

const helpText = `可用指令：
  /state             查看当前设定、就绪度与创作统计
  /feedback <0~1>    提交满意度评分
  /reset             清空会话，重新开始
  /help              显示本帮助
  /quit              退出`

// repl 逐行读取输入，驱动单个会话
type repl struct {
	svc    *session.Service
	in     io.Reader
	out    io.Writer
	json   bool
	echo   bool
	styles styles

	sessionID string
}

func newREPL(svc *session.Service, in io.Reader, out io.Writer, jsonOut bool) *repl {
	return &repl{
		svc:    svc,
		in:     in,
		out:    out,
		json:   jsonOut,
		styles: newStyles(out),
	}
}

// Run 读到 /quit 或输入结束时返回
func (r *repl) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	v, err := r.svc.Create(ctx)
	if err != nil {
		return err
	}
	r.sessionID = v.SessionID

	if !r.json && !r.echo {
		fmt.Fprintln(r.out, r.styles.hint.Render("会话 "+r.sessionID+" 已创建，输入 /help 查看指令。"))
	}

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if !r.json && !r.echo {
			fmt.Fprint(r.out, r.styles.prompt.Render("你> "))
		}
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if r.echo && !r.json {
			fmt.Fprintln(r.out, r.styles.prompt.Render("你> ")+line)
		}

		quit, err := r.handle(ctx, line)
		if err != nil {
			r.printError(err)
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

func (r *repl) handle(ctx context.Context, line string) (bool, error) {
	if !strings.HasPrefix(line, "/") {
		return false, r.send(ctx, line)
	}

	cmd, arg, _ := strings.Cut(line, " ")
	switch strings.ToLower(cmd) {
	case "/quit", "/exit", "/q":
		return true, nil
	case "/help":
		fmt.Fprintln(r.out, r.styles.hint.Render(helpText))
		return false, nil
	case "/state":
		v, err := r.svc.Get(ctx, r.sessionID)
		if err != nil {
			return false, err
		}
		return false, r.printState(v)
	case "/reset":
		v, err := r.svc.Reset(ctx, r.sessionID)
		if err != nil {
			return false, err
		}
		if r.json {
			return false, r.writeJSON(v)
		}
		fmt.Fprintln(r.out, r.styles.hint.Render("会话已重置。"))
		return false, nil
	case "/feedback":
		score, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
		if err != nil {
			return false, apperrors.ErrInvalidParam.WithDetail("score must be a number between 0 and 1")
		}
		res, err := r.svc.Feedback(ctx, r.sessionID, score)
		if err != nil {
			return false, err
		}
		if r.json {
			return false, r.writeJSON(res)
		}
		fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("已记录评分 %.2f，当前创作阈值 %.2f", score, res.Threshold)))
		return false, nil
	default:
		return false, apperrors.ErrInvalidParam.WithDetail("unknown command " + cmd + ", try /help")
	}
}

func (r *repl) send(ctx context.Context, line string) error {
	res, err := r.svc.Send(ctx, r.sessionID, line)
	if err != nil {
		return err
	}
	if r.json {
		return r.writeJSON(res)
	}

	fmt.Fprintln(r.out, r.styles.agent.Render("代理> "+res.Response.Message))
	if d, ok := res.Response.Decision(); ok && d.ShouldCreate {
		fmt.Fprintln(r.out, r.styles.creation.Render(fmt.Sprintf(
			"[创作] 第%d章 策略=%s 触发=%s 字数=%d 置信度=%.2f",
			d.SuggestedChapter, d.Strategy, d.Trigger, d.SuggestedLength, d.Confidence,
		)))
	}
	if score, ok := res.Response.Metadata[agent.MetaReadiness].(float64); ok {
		fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("就绪度 %.2f", score)))
	}
	return nil
}

func (r *repl) printState(v *session.View) error {
	if r.json {
		return r.writeJSON(v)
	}

	settings, err := json.MarshalIndent(v.State.Settings, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	fmt.Fprintln(r.out, r.styles.label.Render("设定："))
	fmt.Fprintln(r.out, string(settings))
	fmt.Fprintf(r.out, "%s %d  %s %v  %s %.2f / %.2f\n",
		r.styles.label.Render("轮次"), v.State.TurnCount,
		r.styles.label.Render("已开始创作"), v.State.CreationStarted,
		r.styles.label.Render("就绪度/阈值"), v.Readiness.Score, v.Threshold,
	)
	fmt.Fprintf(r.out, "%s %d  %s %d  %s %d\n",
		r.styles.label.Render("创作次数"), v.Stats.Creations,
		r.styles.label.Render("当前章节"), v.Stats.CurrentChapter,
		r.styles.label.Render("累计字数"), v.Stats.TotalWords,
	)
	for _, m := range v.Readiness.MissingCritical {
		fmt.Fprintln(r.out, r.styles.hint.Render(fmt.Sprintf("缺少 %s.%s：%s", m.SettingType, m.Field, m.Question)))
	}
	return nil
}

func (r *repl) printError(err error) {
	msg := err.Error()
	if d := apperrors.AsAppError(err).Detail; d != "" {
		msg += " (" + d + ")"
	}
	if r.json {
		_ = r.writeJSON(map[string]string{"error": msg})
		return
	}
	fmt.Fprintln(r.out, r.styles.err.Render("错误："+msg))
}

func (r *repl) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
