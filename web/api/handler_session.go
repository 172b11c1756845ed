package api

import (
	"strings"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/store/types"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// 单条学习记录的时长上限（分钟），防止误录入把统计冲垮
const maxSessionMinutes = 1440

// GetSessions 查询当前用户的学习记录
func (a *API) GetSessions(c *gin.Context) {
	var page transport.PaginationQuery
	var rng transport.TimeRangeQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if err := c.ShouldBindQuery(&rng); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	q := types.SessionQuery{Limit: page.Limit, Offset: page.Offset}
	if rng.StartTime > 0 {
		q.StartTime = time.Unix(rng.StartTime, 0).UTC()
	}
	if rng.EndTime > 0 {
		q.EndTime = time.Unix(rng.EndTime, 0).UTC()
	}

	sessions, err := a.Store.GetSessions(c.Request.Context(), userID(c), q)
	if err != nil {
		transport.InternalServerError(c, "查询学习记录失败", err)
		return
	}
	transport.SendSuccess(c, sessions)
}

// CreateSession 记录一次学习并按时长发放经验值
func (a *API) CreateSession(c *gin.Context) {
	var req struct {
		Subject     string `json:"subject"`
		DurationMin int    `json:"durationMin"`
		Completed   bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if strings.TrimSpace(req.Subject) == "" {
		transport.BadRequest(c, "科目不能为空")
		return
	}
	if req.DurationMin <= 0 || req.DurationMin > maxSessionMinutes {
		transport.BadRequest(c, "学习时长必须在 1-1440 分钟之间")
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	sess := &model.StudySession{
		ID:          uuid.NewString(),
		UserID:      uid,
		Subject:     strings.TrimSpace(req.Subject),
		DurationMin: req.DurationMin,
		Completed:   req.Completed,
		CreatedAt:   time.Now().Unix(),
	}
	if err := a.Store.CreateSession(ctx, sess); err != nil {
		transport.InternalServerError(c, "写入学习记录失败", err)
		return
	}

	xp := req.DurationMin / xpMinutesPerPoint
	if xp > 0 {
		if err := a.Store.AddUserXP(ctx, uid, xp); err != nil {
			log.Warn().Err(err).Str("user", uid).Msg("发放学习经验失败")
		}
	}

	transport.SendSuccess(c, gin.H{
		"session":    sess,
		"xp_awarded": xp,
	})
}

// DeleteSession 删除一条学习记录
func (a *API) DeleteSession(c *gin.Context) {
	err := a.Store.DeleteSession(c.Request.Context(), userID(c), c.Param("id"))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "学习记录不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "删除学习记录失败", err)
		return
	}
	transport.SendSuccess(c, gin.H{"status": "deleted"})
}
