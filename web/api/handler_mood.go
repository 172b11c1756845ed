package api

import (
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/types"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetMoods 查询最近的心情记录，默认返回最近 7 条
func (a *API) GetMoods(c *gin.Context) {
	var page transport.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	moods, err := a.Store.GetRecentMoods(c.Request.Context(), userID(c),
		types.MoodQuery{Limit: page.Limit, Offset: page.Offset})
	if err != nil {
		transport.InternalServerError(c, "查询心情记录失败", err)
		return
	}
	transport.SendSuccess(c, moods)
}

// CreateMood 心情打卡，取值 1-5
func (a *API) CreateMood(c *gin.Context) {
	var req struct {
		Mood int    `json:"mood"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if req.Mood < 1 || req.Mood > 5 {
		transport.BadRequest(c, "心情取值必须在 1-5 之间")
		return
	}

	mood := &model.MoodLog{
		ID:        uuid.NewString(),
		UserID:    userID(c),
		Mood:      req.Mood,
		Note:      req.Note,
		CreatedAt: time.Now().Unix(),
	}
	if err := a.Store.CreateMood(c.Request.Context(), mood); err != nil {
		transport.InternalServerError(c, "写入心情记录失败", err)
		return
	}
	transport.SendSuccess(c, mood)
}
