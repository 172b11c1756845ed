package stats

import "math"

// 产能得分的权重与封顶值。周学习时长以 28 小时（每天 4 小时）封顶，
// 心情按 1-5 分制折算到 [0,1]。
const (
	weightCompletion = 0.4
	weightStudy      = 0.4
	weightMood       = 0.2
	weeklyHoursCap   = 28.0
	moodScale        = 5.0
)

// ScoreInputs 是产能得分的输入。Has* 标记各数据源是否真的有记录：
// “全空时得分强制为 0”必须是一个显式分支，而不是一堆默认零值
// 恰好算出来的结果。
type ScoreInputs struct {
	CompletionRate float64 // completed/total，无任务时为 0
	WeeklyHours    float64
	AvgMood        float64 // 1-5，无记录时为 0
	HasTasks       bool
	HasStudy       bool
	HasMoods       bool
}

// ProductivityScore 把完成率、封顶周学习时长和平均心情折算成
// 一个 [0,100] 的整数得分。三个数据源全部为空时直接返回 0。
func ProductivityScore(in ScoreInputs) int {
	if !in.HasTasks && !in.HasStudy && !in.HasMoods {
		return 0
	}

	study := in.WeeklyHours / weeklyHoursCap
	if study > 1 {
		study = 1
	}

	score := weightCompletion*in.CompletionRate +
		weightStudy*study +
		weightMood*(in.AvgMood/moodScale)

	return int(math.Round(score * 100))
}
