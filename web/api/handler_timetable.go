package api

import (
	"strings"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// validDays 是课表接受的星期缩写
var validDays = map[string]bool{
	"Mon": true, "Tue": true, "Wed": true,
	"Thu": true, "Fri": true, "Sat": true, "Sun": true,
}

// GetTimetable 查询当前用户的每周课表，按星期和时段排序
func (a *API) GetTimetable(c *gin.Context) {
	entries, err := a.Store.GetTimetable(c.Request.Context(), userID(c))
	if err != nil {
		transport.InternalServerError(c, "查询课表失败", err)
		return
	}
	transport.SendSuccess(c, entries)
}

// CreateTimetableEntry 新增一条课表记录
func (a *API) CreateTimetableEntry(c *gin.Context) {
	var req struct {
		Day     string `json:"day"`
		Slot    string `json:"slot"`
		Subject string `json:"subject"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if !validDays[req.Day] {
		transport.BadRequest(c, "day 必须是 Mon-Sun 的缩写")
		return
	}
	if strings.TrimSpace(req.Slot) == "" || strings.TrimSpace(req.Subject) == "" {
		transport.BadRequest(c, "时段和科目不能为空")
		return
	}

	entry := &model.TimetableEntry{
		ID:      uuid.NewString(),
		UserID:  userID(c),
		Day:     req.Day,
		Slot:    strings.TrimSpace(req.Slot),
		Subject: strings.TrimSpace(req.Subject),
	}
	if err := a.Store.CreateTimetableEntry(c.Request.Context(), entry); err != nil {
		transport.InternalServerError(c, "写入课表失败", err)
		return
	}
	transport.SendSuccess(c, entry)
}

// DeleteTimetableEntry 删除一条课表记录
func (a *API) DeleteTimetableEntry(c *gin.Context) {
	err := a.Store.DeleteTimetableEntry(c.Request.Context(), userID(c), c.Param("id"))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "课表记录不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "删除课表失败", err)
		return
	}
	transport.SendSuccess(c, gin.H{"status": "deleted"})
}
