package api

import (
	"fmt"
	"time"

	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
)

// ExportReport 导出当前用户的学习报告，?format=xlsx|csv|docx
func (a *API) ExportReport(c *gin.Context) {
	ctx := c.Request.Context()

	user, err := a.Store.GetUserByID(ctx, userID(c))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "用户档案不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "查询用户失败", err)
		return
	}

	format := c.DefaultQuery("format", "xlsx")

	var data []byte
	var ext, contentType string
	switch format {
	case "xlsx":
		data, err = a.Export.ExportReportXLSX(ctx, user)
		ext = "xlsx"
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "csv":
		data, err = a.Export.ExportReportCSV(ctx, user)
		ext = "csv"
		contentType = "text/csv; charset=utf-8"
	case "docx":
		data, err = a.Export.ExportReportDOCX(ctx, user)
		ext = "docx"
		contentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	default:
		transport.BadRequest(c, "format 必须是 xlsx、csv 或 docx")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "导出失败", err)
		return
	}

	filename := fmt.Sprintf("study_report_%s.%s", time.Now().UTC().Format("20060102"), ext)
	transport.SendAttachment(c, filename, contentType, data)
}
