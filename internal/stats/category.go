package stats

import (
	"math"
	"strings"

	"github.com/afumu/studydesk/internal/model"
)

// Bucket 是分类进度的固定四分类
type Bucket int

const (
	BucketTasks Bucket = iota // 默认桶
	BucketClass
	BucketExams
	BucketFocus // 由学习分钟数派生，不参与任务计数
)

// bucketLabels 是对外展示的固定标签，顺序即响应顺序
var bucketLabels = [4]string{"Tasks", "Class", "Exams", "Focus"}

// Label 返回桶的展示标签
func (b Bucket) Label() string {
	return bucketLabels[b]
}

// NormalizeLabel 把自由文本的任务类型折叠进固定分类。
// 标签大小写不统一（"class"/"Class"/"CLASS"），这里统一折叠一次，
// 聚合分支不再重复做大小写处理。
func NormalizeLabel(raw string) Bucket {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "class":
		return BucketClass
	case "exam", "exams":
		return BucketExams
	default:
		return BucketTasks
	}
}

// CategoricalProgress 把按原始标签分组的统计折叠成固定 4 条分类进度。
// Tasks/Class/Exams 的 Count 是完成率整数百分比（total 为 0 时取 0），
// Focus 的 Count 是累计学习小时数，保留 1 位小数。
func CategoricalProgress(tallies []*model.CategoryTally, totalMinutes int) []model.CategoryPoint {
	var total, completed [4]int
	for _, t := range tallies {
		b := NormalizeLabel(t.Type)
		total[b] += t.Total
		completed[b] += t.Completed
	}

	points := make([]model.CategoryPoint, 0, 4)
	for b := BucketTasks; b <= BucketFocus; b++ {
		var count float64
		if b == BucketFocus {
			count = round1(float64(totalMinutes) / 60)
		} else if total[b] > 0 {
			count = math.Round(float64(completed[b]) / float64(total[b]) * 100)
		}
		points = append(points, model.CategoryPoint{Label: b.Label(), Count: count})
	}
	return points
}

// round1 四舍五入到 1 位小数
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
