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
)

// GetGoals 查询目标，?type=monthly 可按类型过滤
func (a *API) GetGoals(c *gin.Context) {
	goals, err := a.Store.GetGoals(c.Request.Context(), userID(c),
		types.GoalQuery{Type: c.Query("type")})
	if err != nil {
		transport.InternalServerError(c, "查询目标失败", err)
		return
	}
	transport.SendSuccess(c, goals)
}

// CreateGoal 创建目标，类型默认 monthly
func (a *API) CreateGoal(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
		Type  string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		transport.BadRequest(c, "目标标题不能为空")
		return
	}
	if req.Type == "" {
		req.Type = "monthly"
	}

	goal := &model.Goal{
		ID:        uuid.NewString(),
		UserID:    userID(c),
		Title:     strings.TrimSpace(req.Title),
		Type:      req.Type,
		CreatedAt: time.Now().Unix(),
	}
	if err := a.Store.CreateGoal(c.Request.Context(), goal); err != nil {
		transport.InternalServerError(c, "创建目标失败", err)
		return
	}
	transport.SendSuccess(c, goal)
}

// UpdateGoal 更新目标的标题或完成状态
func (a *API) UpdateGoal(c *gin.Context) {
	var req struct {
		Title     *string `json:"title"`
		Completed *bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	ctx := c.Request.Context()
	uid := userID(c)
	goals, err := a.Store.GetGoals(ctx, uid, types.GoalQuery{})
	if err != nil {
		transport.InternalServerError(c, "查询目标失败", err)
		return
	}

	var goal *model.Goal
	for _, g := range goals {
		if g.ID == c.Param("id") {
			goal = g
			break
		}
	}
	if goal == nil {
		transport.NotFound(c, "目标不存在")
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			transport.BadRequest(c, "目标标题不能为空")
			return
		}
		goal.Title = strings.TrimSpace(*req.Title)
	}
	if req.Completed != nil {
		goal.Completed = *req.Completed
	}

	if err := a.Store.UpdateGoal(ctx, goal); err != nil {
		transport.InternalServerError(c, "更新目标失败", err)
		return
	}
	transport.SendSuccess(c, goal)
}

// DeleteGoal 删除目标
func (a *API) DeleteGoal(c *gin.Context) {
	err := a.Store.DeleteGoal(c.Request.Context(), userID(c), c.Param("id"))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "目标不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "删除目标失败", err)
		return
	}
	transport.SendSuccess(c, gin.H{"status": "deleted"})
}
