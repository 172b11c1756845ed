package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
	"github.com/rs/zerolog/log"
)

// ExportReportDOCX 导出学习报告为 DOCX 格式
func (s *Service) ExportReportDOCX(ctx context.Context, user *model.User) ([]byte, error) {
	data, err := s.buildReport(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().Int("sessions", len(data.Sessions)).Str("user", user.Name).Msg("ExportDOCX processing")

	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("创建DOCX文档失败: %w", err)
	}
	defer doc.Close()

	doc.AddHeading(user.Name+" 的学习报告", 1)
	doc.AddEmptyParagraph()

	writeSummary(doc, data)
	writeSessions(doc, data.Sessions)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("写入DOCX失败: %w", err)
	}

	return buf.Bytes(), nil
}

// writeSummary 写入报告概览段落
func writeSummary(doc *docx.RootDoc, data *reportData) {
	completed := 0
	for _, t := range data.Tasks {
		if t.Completed {
			completed++
		}
	}

	doc.AddHeading("概览", 2)
	lines := []string{
		fmt.Sprintf("等级 %d，经验值 %d", data.User.Level, data.User.XP),
		fmt.Sprintf("任务 %d 个，已完成 %d 个", len(data.Tasks), completed),
		fmt.Sprintf("学习 %d 次，累计 %.1f 小时", data.Totals.Count, float64(data.Totals.Minutes)/60),
		fmt.Sprintf("近4周最长连续学习 %d 天", data.LongestRun),
		fmt.Sprintf("生成时间 %s", data.GeneratedAt.Format(time.RFC3339)),
	}
	for _, line := range lines {
		doc.AddParagraph(line)
	}
}

// writeSessions 按日期分段写入学习记录
func writeSessions(doc *docx.RootDoc, sessions []*model.StudySession) {
	doc.AddEmptyParagraph()
	doc.AddHeading("学习记录", 2)

	currentDate := ""
	for _, sess := range sessions {
		t := time.Unix(sess.CreatedAt, 0).UTC()
		dateStr := t.Format("2006-01-02")

		// 新的日期段落
		if dateStr != currentDate {
			currentDate = dateStr
			doc.AddEmptyParagraph()
			doc.AddHeading(dateStr, 3)
		}

		line := fmt.Sprintf("[%s] %s，%d 分钟", t.Format("15:04"), sess.Subject, sess.DurationMin)
		doc.AddParagraph(line)
	}
}
