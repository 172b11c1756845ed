package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/afumu/studydesk/internal/model"
	"github.com/rs/zerolog/log"
)

// ExportReportCSV 导出学习报告为 CSV 格式。
// CSV 是平面结构，这里只放学习记录流水，汇总信息走 XLSX/DOCX。
func (s *Service) ExportReportCSV(ctx context.Context, user *model.User) ([]byte, error) {
	data, err := s.buildReport(ctx, user)
	if err != nil {
		return nil, err
	}

	log.Info().Int("count", len(data.Sessions)).Str("user", user.Name).Msg("ExportCSV processing")

	var buf bytes.Buffer

	// 写入 UTF-8 BOM，确保 Excel 正确识别编码
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)

	header := []string{"时间", "科目", "时长(分钟)", "是否完成"}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("写入CSV表头失败: %w", err)
	}

	for _, sess := range data.Sessions {
		row := []string{
			formatUnix(sess.CreatedAt),
			sess.Subject,
			strconv.Itoa(sess.DurationMin),
			boolLabel(sess.Completed),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("写入CSV数据失败: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("CSV写入错误: %w", err)
	}

	return buf.Bytes(), nil
}
