package middleware

import (
	"net/http"
	"strings"

	"github.com/afumu/studydesk/web/api"
	"github.com/gin-gonic/gin"
)

// AuthMiddleware 登录保护中间件：把会话 token 解析为 userID，
// 写入请求上下文供处理器使用。
func AuthMiddleware(a *api.API) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 白名单路径不需要验证
		path := c.Request.URL.Path
		whitelist := []string{
			"/api/v1/auth/register",
			"/api/v1/auth/login",
			"/health",
		}
		for _, w := range whitelist {
			if strings.HasPrefix(path, w) {
				c.Next()
				return
			}
		}

		// 非 API 路径不需要验证（静态文件等）
		if !strings.HasPrefix(path, "/api/") {
			c.Next()
			return
		}

		// 从 header 或 cookie 获取 token
		token := c.GetHeader("X-Auth-Token")
		if token == "" {
			token, _ = c.Cookie("auth_token")
		}

		userID := ""
		if token != "" {
			userID = a.Sessions.Resolve(token)
		}
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    401,
					"message": "请先登录",
				},
			})
			return
		}

		c.Set(api.ContextUserID, userID)
		c.Next()
	}
}
