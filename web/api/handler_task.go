package api

import (
	"strconv"
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

// GetTasks 查询当前用户的任务列表
func (a *API) GetTasks(c *gin.Context) {
	var page transport.PaginationQuery
	if err := c.ShouldBindQuery(&page); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	q := types.TaskQuery{Limit: page.Limit, Offset: page.Offset}
	if v := c.Query("completed"); v != "" {
		completed, err := strconv.ParseBool(v)
		if err != nil {
			transport.BadRequest(c, "completed 参数无效")
			return
		}
		q.Completed = &completed
	}

	tasks, err := a.Store.GetTasks(c.Request.Context(), userID(c), q)
	if err != nil {
		transport.InternalServerError(c, "查询任务失败", err)
		return
	}
	transport.SendSuccess(c, tasks)
}

// CreateTask 创建任务。Type 是自由文本分类，原样保存，
// 大小写归一化只在统计层做。
func (a *API) CreateTask(c *gin.Context) {
	var req struct {
		Title   string `json:"title"`
		Type    string `json:"type"`
		DueDate int64  `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		transport.BadRequest(c, "任务标题不能为空")
		return
	}

	now := time.Now().Unix()
	task := &model.Task{
		ID:        uuid.NewString(),
		UserID:    userID(c),
		Title:     strings.TrimSpace(req.Title),
		Type:      req.Type,
		DueDate:   req.DueDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := a.Store.CreateTask(c.Request.Context(), task); err != nil {
		transport.InternalServerError(c, "创建任务失败", err)
		return
	}
	transport.SendSuccess(c, task)
}

// UpdateTask 部分更新任务字段
func (a *API) UpdateTask(c *gin.Context) {
	var req struct {
		Title   *string `json:"title"`
		Type    *string `json:"type"`
		DueDate *int64  `json:"dueDate"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	ctx := c.Request.Context()
	task, err := a.Store.GetTaskByID(ctx, userID(c), c.Param("id"))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "任务不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "查询任务失败", err)
		return
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			transport.BadRequest(c, "任务标题不能为空")
			return
		}
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Type != nil {
		task.Type = *req.Type
	}
	if req.DueDate != nil {
		task.DueDate = *req.DueDate
	}
	task.UpdatedAt = time.Now().Unix()

	if err := a.Store.UpdateTask(ctx, task); err != nil {
		transport.InternalServerError(c, "更新任务失败", err)
		return
	}
	transport.SendSuccess(c, task)
}

// CompleteTask 标记任务完成并发放经验值。
// 完成时间取当前时刻，周进度按这个时间点归档。
func (a *API) CompleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)
	id := c.Param("id")

	err := a.Store.CompleteTask(ctx, uid, id)
	if err == repo.ErrNotFound {
		transport.NotFound(c, "任务不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "更新任务失败", err)
		return
	}

	// 加经验失败不回滚任务状态，只记日志
	if err := a.Store.AddUserXP(ctx, uid, xpTaskCompleted); err != nil {
		log.Warn().Err(err).Str("user", uid).Msg("发放任务经验失败")
	}

	transport.SendSuccess(c, gin.H{
		"status":     "completed",
		"xp_awarded": xpTaskCompleted,
	})
}

// DeleteTask 删除任务
func (a *API) DeleteTask(c *gin.Context) {
	err := a.Store.DeleteTask(c.Request.Context(), userID(c), c.Param("id"))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "任务不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "删除任务失败", err)
		return
	}
	transport.SendSuccess(c, gin.H{"status": "deleted"})
}
