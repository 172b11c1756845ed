package api

import (
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

// GetSystemStatus 返回应用程序的当前状态。
func (a *API) GetSystemStatus(c *gin.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := gin.H{
		"store_initialized": true,
		"data_dir":          a.Conf.DataDir,
		"digest":            a.Digest.GetStatus(),
	}
	transport.SendSuccess(c, status)
}

// GetDigestStatus 返回定时摘要的运行状态
func (a *API) GetDigestStatus(c *gin.Context) {
	transport.SendSuccess(c, a.Digest.GetStatus())
}

// ConfigureDigest 开关定时摘要并持久化配置
func (a *API) ConfigureDigest(c *gin.Context) {
	var req struct {
		Enabled       bool `json:"enabled"`
		IntervalHours int  `json:"interval_hours"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}
	if req.IntervalHours == 0 {
		req.IntervalHours = 24
	}
	if req.IntervalHours < 1 || req.IntervalHours > 168 {
		transport.BadRequest(c, "interval_hours 必须在 1-168 之间")
		return
	}

	a.Digest.Configure(req.Enabled, req.IntervalHours)

	viper.Set("DIGEST_ENABLED", req.Enabled)
	viper.Set("DIGEST_INTERVAL_HOURS", req.IntervalHours)
	if err := viper.WriteConfig(); err != nil {
		// 文件不存在时尝试创建
		if err := viper.WriteConfigAs(".env"); err != nil {
			transport.InternalServerError(c, "保存配置文件失败", err)
			return
		}
	}

	transport.SendSuccess(c, a.Digest.GetStatus())
}

// RunDigestNow 立即触发一轮摘要
func (a *API) RunDigestNow(c *gin.Context) {
	go a.Digest.Run()
	transport.SendSuccess(c, gin.H{"status": "started"})
}
