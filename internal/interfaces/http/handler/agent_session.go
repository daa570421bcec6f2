package handler

import (
	"strings"

	"github.com/gin-gonic/gin"

	"z-novel-ai-agent/internal/application/session"
	"z-novel-ai-agent/internal/domain/repository"
	"z-novel-ai-agent/internal/interfaces/http/dto"
	"z-novel-ai-agent/pkg/logger"
)

// AgentSessionHandler 对话代理会话处理器
type AgentSessionHandler struct {
	sessions *session.Service
}

// NewAgentSessionHandler 创建会话处理器
func NewAgentSessionHandler(sessions *session.Service) *AgentSessionHandler {
	return &AgentSessionHandler{sessions: sessions}
}

// CreateSession 创建会话
// @Summary 创建对话会话
// @Tags AgentSessions
// @Produce json
// @Success 201 {object} dto.Response[dto.AgentSessionResponse]
// @Router /v1/agent-sessions [post]
func (h *AgentSessionHandler) CreateSession(c *gin.Context) {
	ctx := c.Request.Context()

	view, err := h.sessions.Create(ctx)
	if err != nil {
		logger.Error(ctx, "failed to create agent session", err)
		dto.AppError(c, err)
		return
	}
	dto.Created(c, dto.ToAgentSessionResponse(view))
}

// GetSession 查询会话
// @Summary 查询对话会话
// @Tags AgentSessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.AgentSessionResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/agent-sessions/{sid} [get]
func (h *AgentSessionHandler) GetSession(c *gin.Context) {
	view, err := h.sessions.Get(c.Request.Context(), dto.BindSessionID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToAgentSessionResponse(view))
}

// SendMessage 发送一轮用户输入
// @Summary 发送消息
// @Tags AgentSessions
// @Accept json
// @Produce json
// @Param sid path string true "会话 ID"
// @Param body body dto.SendMessageRequest true "消息"
// @Success 200 {object} dto.Response[dto.AgentReplyResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Router /v1/agent-sessions/{sid}/messages [post]
func (h *AgentSessionHandler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		dto.BadRequest(c, "content is required")
		return
	}

	result, err := h.sessions.Send(ctx, dto.BindSessionID(c), req.Content)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToAgentReplyResponse(result))
}

// SubmitFeedback 提交满意度
// @Summary 提交创作满意度
// @Tags AgentSessions
// @Accept json
// @Produce json
// @Param sid path string true "会话 ID"
// @Param body body dto.FeedbackRequest true "满意度 [0,1]"
// @Success 200 {object} dto.Response[dto.FeedbackResponse]
// @Router /v1/agent-sessions/{sid}/feedback [post]
func (h *AgentSessionHandler) SubmitFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body")
		return
	}

	result, err := h.sessions.Feedback(c.Request.Context(), dto.BindSessionID(c), *req.Score)
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, &dto.FeedbackResponse{
		SessionID: result.SessionID,
		Threshold: result.Threshold,
		Adaptive:  result.Adaptive,
	})
}

// ResetSession 重置会话
// @Summary 重置对话会话
// @Tags AgentSessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Success 200 {object} dto.Response[dto.AgentSessionResponse]
// @Router /v1/agent-sessions/{sid}/reset [post]
func (h *AgentSessionHandler) ResetSession(c *gin.Context) {
	view, err := h.sessions.Reset(c.Request.Context(), dto.BindSessionID(c))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	dto.Success(c, dto.ToAgentSessionResponse(view))
}

// DeleteSession 删除会话
// @Summary 删除对话会话
// @Tags AgentSessions
// @Param sid path string true "会话 ID"
// @Success 204
// @Router /v1/agent-sessions/{sid} [delete]
func (h *AgentSessionHandler) DeleteSession(c *gin.Context) {
	if err := h.sessions.Delete(c.Request.Context(), dto.BindSessionID(c)); err != nil {
		dto.AppError(c, err)
		return
	}
	dto.NoContent(c)
}

// ListTurns 查询轮次日志
// @Summary 查询会话轮次
// @Tags AgentSessions
// @Produce json
// @Param sid path string true "会话 ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.AgentTurnResponse]
// @Router /v1/agent-sessions/{sid}/turns [get]
func (h *AgentSessionHandler) ListTurns(c *gin.Context) {
	pageReq := dto.BindPage(c)

	result, err := h.sessions.Turns(c.Request.Context(), dto.BindSessionID(c), repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		dto.AppError(c, err)
		return
	}
	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToAgentTurnResponses(result.Items), meta)
}
