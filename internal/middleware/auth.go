package middleware

import (
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	LoginPath      = "/login"
	AdminLoginPath = "/admin/login"
	DashboardPath  = "/dashboard"
	LandingPath    = "/landing"
)

// SessionResolver 校验令牌并恢复会话
type SessionResolver interface {
	SessionFromToken(token string) (*session.Session, error)
}

// tokenFromRequest 优先读取会话 cookie，其次是 Bearer 头
func tokenFromRequest(c *gin.Context, cookieName string) string {
	if v, err := c.Cookie(cookieName); err == nil && v != "" {
		return v
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// LoadSession 有合法令牌时把会话放进上下文，本身从不拦截请求
func LoadSession(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c, cookieName)
		if token != "" {
			sess, err := resolver.SessionFromToken(token)
			if err != nil {
				logger.Log.Debug("Invalid session token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			} else {
				util.SetSession(c, sess)
			}
		}
		c.Next()
	}
}

// RequireAuth JSON 接口没有会话时返回 401
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetSession(c) == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin JSON 接口：未登录 401，非管理员 403
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := util.GetSession(c)
		if sess == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}
		if !sess.IsAdmin {
			logger.Log.Warn("Admin access denied", zap.String("user_id", sess.UserID), zap.String("path", c.Request.URL.Path))
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuardPage 受保护页面没有会话时跳转到登录页
func GuardPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetSession(c) == nil {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// GuardAdminPage 非管理员跳转到管理员登录页
func GuardAdminPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := util.GetSession(c)
		if sess == nil || !sess.IsAdmin {
			c.Redirect(http.StatusFound, AdminLoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RedirectIfSignedIn 已登录用户访问登录页时直接进入仪表盘
func RedirectIfSignedIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		if util.GetSession(c) != nil {
			c.Redirect(http.StatusFound, DashboardPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RootRedirect "/" 按会话状态跳转到仪表盘或落地页
func RootRedirect(c *gin.Context) {
	if util.GetSession(c) != nil {
		c.Redirect(http.StatusFound, DashboardPath)
		return
	}
	c.Redirect(http.StatusFound, LandingPath)
}
