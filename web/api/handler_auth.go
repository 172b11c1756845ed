package api

import (
	"strings"
	"time"

	"github.com/afumu/studydesk/internal/model"
	"github.com/afumu/studydesk/store/repo"
	"github.com/afumu/studydesk/web/transport"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// sessionMaxAge 是登录 cookie 的有效期（秒）
const sessionMaxAge = 86400 * 7

// Register 注册新用户并直接建立会话
func (a *API) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Name == "" {
		transport.BadRequest(c, "用户名不能为空")
		return
	}
	if !strings.Contains(req.Email, "@") {
		transport.BadRequest(c, "邮箱格式不正确")
		return
	}
	if len(req.Password) < 6 {
		transport.BadRequest(c, "密码长度不能少于6位")
		return
	}

	if _, err := a.Store.GetUserByEmail(c.Request.Context(), req.Email); err == nil {
		transport.Conflict(c, "邮箱已被注册")
		return
	} else if err != repo.ErrNotFound {
		transport.InternalServerError(c, "查询用户失败", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		transport.InternalServerError(c, "密码加密失败", err)
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Level:        1,
		Badges:       []string{},
		CreatedAt:    time.Now().Unix(),
	}
	if err := a.Store.CreateUser(c.Request.Context(), user); err != nil {
		transport.InternalServerError(c, "创建用户失败", err)
		return
	}

	token, err := a.Sessions.Create(user.ID)
	if err != nil {
		transport.InternalServerError(c, "创建会话失败", err)
		return
	}
	c.SetCookie("auth_token", token, sessionMaxAge, "/", "", false, true)

	transport.SendSuccess(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Login 邮箱密码登录。邮箱不存在和密码错误返回同一个错误，
// 不给探测账号是否存在的机会。
func (a *API) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		transport.BadRequest(c, "参数错误")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, err := a.Store.GetUserByEmail(c.Request.Context(), email)
	if err == repo.ErrNotFound {
		transport.Unauthorized(c, "邮箱或密码错误")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "查询用户失败", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		transport.Unauthorized(c, "邮箱或密码错误")
		return
	}

	token, err := a.Sessions.Create(user.ID)
	if err != nil {
		transport.InternalServerError(c, "创建会话失败", err)
		return
	}
	c.SetCookie("auth_token", token, sessionMaxAge, "/", "", false, true)

	transport.SendSuccess(c, gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout 注销当前会话
func (a *API) Logout(c *gin.Context) {
	token := c.GetHeader("X-Auth-Token")
	if token == "" {
		token, _ = c.Cookie("auth_token")
	}
	if token != "" {
		a.Sessions.Remove(token)
	}
	c.SetCookie("auth_token", "", -1, "/", "", false, true)

	transport.SendSuccess(c, gin.H{"status": "logged_out"})
}

// GetProfile 返回当前登录用户的档案
func (a *API) GetProfile(c *gin.Context) {
	user, err := a.Store.GetUserByID(c.Request.Context(), userID(c))
	if err == repo.ErrNotFound {
		transport.NotFound(c, "用户不存在")
		return
	}
	if err != nil {
		transport.InternalServerError(c, "查询用户失败", err)
		return
	}
	transport.SendSuccess(c, user)
}
