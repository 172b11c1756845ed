package stats

import "time"

const dateLayout = "2006-01-02"

// CurrentStreak 计算当前连续活跃天数。
// dates 是去重后的活动日期（YYYY-MM-DD，UTC 日历），按倒序排列；
// today 是规范日历下的今日日期。最近一次活动必须落在今天或昨天，
// 否则连续即告中断，返回 0。
func CurrentStreak(dates []string, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	latest, err := time.Parse(dateLayout, dates[0])
	if err != nil {
		return 0
	}

	today = truncateDay(today)
	gap := int(today.Sub(latest).Hours() / 24)
	if gap != 0 && gap != 1 {
		// 最近一次活动既不是今天也不是昨天
		return 0
	}

	streak := 1
	prev := latest
	for _, d := range dates[1:] {
		cur, err := time.Parse(dateLayout, d)
		if err != nil {
			break
		}
		if prev.Sub(cur).Hours() != 24 {
			break
		}
		streak++
		prev = cur
	}
	return streak
}

// LongestRun 计算固定窗口内最长的正值连续段。
// 入参是按天排列的学习分钟数（如周视图的 7 条），
// 返回其中连续 minutes > 0 的最长天数。
func LongestRun(minutes []int) int {
	longest, current := 0, 0
	for _, m := range minutes {
		if m > 0 {
			current++
			if current > longest {
				longest = current
			}
		} else {
			current = 0
		}
	}
	return longest
}
