package api

import (
	"strings"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMessages 查询当前用户的消息流
func (a *API) GetMessages(c *gin.Context) {
	var page transport.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	messages, err := a.Store.GetMessages(c.Request.Context(), userID(c),
		types.MessageQuery{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		transport.InternalServerError(c, "查询消息失败", err)
		return
	}
	transport.SendSuccess(c, messages)
}

// CreateMessage 追加一条消息。只做存储，没有实时推送。
func (a *API) CreateMessage(c *gin.Context) {
	var req struct {
		Sender  string `json:"sender"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if req.Sender == "" {
		req.Sender = "user"
	}
	if req.Sender != "user" && req.Sender != "peer" {
		transport.BadRequest(c, "sender 必须是 user 或 peer")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		transport.BadRequest(c, "消息内容不能为空")
		return
	}

	msg := &model.Message{
		ID:        uuid.NewString(),
		UserID:    userID(c),
		Sender:    req.Sender,
		Content:   req.Content,
		CreatedAt: time.Now().Unix(),
	}
	if err := a.Store.CreateMessage(c.Request.Context(), msg); err != nil {
		transport.InternalServerError(c, "写入消息失败", err)
		return
	}
	transport.SendSuccess(c, msg)
}
