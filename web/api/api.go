package api

import (
	"context"
	"sync"
	"time"

	"github.com/afumu/studydesk/internal/digest"
	"github.com/afumu/studydesk/internal/stats"
	"github.com/afumu/studydesk/store"
	"github.com/afumu/studydesk/web/export"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// ContextUserID 是认证中间件写入 gin 上下文的键
const ContextUserID = "userID"

// XP 奖励规则：完成任务固定加分，学习按时长折算
const (
	xpTaskCompleted     = 10
	xpMinutesPerPoint   = 5
	digestTallyDeadline = 10 * time.Second
)

// API 封装了 API 处理器所需的所有依赖。
type API struct {
	Store    store.Store
	Engine   *stats.Engine
	Export   *export.Service
	Conf     *Config
	Sessions *SessionManager
	Digest   *digest.Scheduler
	mu       sync.Mutex
}

type Config struct {
	DataDir string
}

// NewAPI 创建一个新的 API 处理器。
func NewAPI(s store.Store, conf *Config) *API {
	a := &API{
		Store:    s,
		Engine:   stats.New(s),
		Export:   &export.Service{Store: s},
		Conf:     conf,
		Sessions: NewSessionManager(),
	}

	// 定时摘要：遍历用户，把当天的任务压力写进日志
	a.Digest = digest.NewScheduler(a.runDigest)

	// 从 viper 恢复摘要配置
	if viper.GetBool("DIGEST_ENABLED") {
		hours := viper.GetInt("DIGEST_INTERVAL_HOURS")
		if hours < 1 {
			hours = 24
		}
		a.Digest.Configure(true, hours)
	}

	return a
}

// runDigest 对每个用户统计一次今日任务压力。
// 单个用户失败不中断整轮，只记一条警告。
func (a *API) runDigest() error {
	ctx, cancel := context.WithTimeout(context.Background(), digestTallyDeadline)
	defer cancel()

	users, err := a.Store.ListUsers(ctx)
	if err != nil {
		return err
	}

	win := stats.ResolveWindow(time.Now(), time.Time{}, time.Time{})
	for _, u := range users {
		tally, err := a.Store.GetTaskTally(ctx, u.ID, win.StartOfToday, win.EndOfToday)
		if err != nil {
			log.Warn().Err(err).Str("user", u.ID).Msg("摘要统计失败，跳过该用户")
			continue
		}
		log.Info().
			Str("user", u.Name).
			Int("due_today", tally.DueToday).
			Int("overdue", tally.Overdue).
			Int("pending", tally.Pending).
			Msg("每日学习摘要")
	}
	return nil
}

// userID 读取认证中间件写入的当前用户 ID
func userID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
