package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"
)

// ExportReportXLSX 导出学习报告为 XLSX 格式：
// 概览、任务、学习记录三个工作表。
func (s *Service) ExportReportXLSX(ctx context.Context, user *model.User) ([]byte, error) {
	data, err := s.buildReport(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("tasks", len(data.Tasks)).
		Int("sessions", len(data.Sessions)).
		Str("user", user.Name).
		Msg("ExportXLSX processing")

	f := excelize.NewFile()
	defer f.Close()

	writeOverviewSheet(f, data)
	writeTaskSheet(f, data.Tasks)
	writeSessionSheet(f, data.Sessions)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("写入XLSX失败: %w", err)
	}
	return buf.Bytes(), nil
}

func writeOverviewSheet(f *excelize.File, data *reportData) {
	const sheet = "概览"
	f.SetSheetName("Sheet1", sheet)

	completed := 0
	for _, t := range data.Tasks {
		if t.Completed {
			completed++
		}
	}

	rows := [][]interface{}{
		{"用户", data.User.Name},
		{"等级", data.User.Level},
		{"经验值", data.User.XP},
		{"任务总数", len(data.Tasks)},
		{"已完成任务", completed},
		{"学习次数", data.Totals.Count},
		{"累计学习时长(小时)", fmt.Sprintf("%.1f", float64(data.Totals.Minutes)/60)},
		{"近4周最长连续学习天数", data.LongestRun},
		{"生成时间", data.GeneratedAt.Format(time.RFC3339)},
	}
	for i, row := range rows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			f.SetCellValue(sheet, cell, val)
		}
	}
	f.SetColWidth(sheet, "A", "A", 24)
	f.SetColWidth(sheet, "B", "B", 24)

	// 日历明细：每天的学习分钟数
	base := len(rows) + 2
	f.SetCellValue(sheet, fmt.Sprintf("A%d", base), "日期")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", base), "学习分钟数")
	for i, date := range data.Days {
		m := 0
		if d, ok := data.DailyByDate[date]; ok {
			m = d.Minutes
		}
		f.SetCellValue(sheet, fmt.Sprintf("A%d", base+1+i), date)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", base+1+i), m)
	}
}

func writeTaskSheet(f *excelize.File, tasks []*model.Task) {
	const sheet = "任务"
	f.NewSheet(sheet)

	headers := []string{"标题", "分类", "截止时间", "是否完成", "创建时间"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", "E1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "B", 12)
	f.SetColWidth(sheet, "C", "E", 20)

	for i, t := range tasks {
		row := []interface{}{
			t.Title,
			t.Type,
			formatUnix(t.DueDate),
			boolLabel(t.Completed),
			formatUnix(t.CreatedAt),
		}
		rowNum := i + 2
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(sheet, cell, val)
		}
	}
}

func writeSessionSheet(f *excelize.File, sessions []*model.StudySession) {
	const sheet = "学习记录"
	f.NewSheet(sheet)

	headers := []string{"时间", "科目", "时长(分钟)", "是否完成"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellStyle(sheet, "A1", "D1", headerStyle)
	f.SetColWidth(sheet, "A", "A", 20)
	f.SetColWidth(sheet, "B", "B", 24)
	f.SetColWidth(sheet, "C", "D", 12)

	for i, sess := range sessions {
		row := []interface{}{
			formatUnix(sess.CreatedAt),
			sess.Subject,
			sess.DurationMin,
			boolLabel(sess.Completed),
		}
		rowNum := i + 2
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, rowNum)
			f.SetCellValue(sheet, cell, val)
		}
	}
}

// formatUnix 把 unix 秒格式化为 UTC 时间串，0 表示未设置
func formatUnix(ts int64) string {
	if ts == 0 {
		return ""
	}
	return time.Unix(ts, 0).UTC().Format("2006-01-02 15:04:05")
}
