package controller

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/service"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	oauthStateCookie = "caseforge_oauth_state"
	oauthNextCookie  = "caseforge_oauth_next"
	oauthCookieTTL   = 600
)

type AuthController struct {
	AuthService *service.AuthService
	JWT         config.JWTConfig
}

func NewAuthController(authService *service.AuthService, jwt config.JWTConfig) *AuthController {
	return &AuthController{AuthService: authService, JWT: jwt}
}

// safeNext 只允许站内相对路径，防止开放重定向
// 浏览器把 "/\" 当作 "//"，制表符和换行会被去掉，因此都要拒绝
func safeNext(next string) string {
	const fallback = "/dashboard"
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if strings.ContainsAny(next, "\t\r\n") {
		return fallback
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return fallback
	}
	return next
}

// @Summary Google 登录
// @Description 生成 state 并跳转到 Google 授权页
// @Tags 认证
// @Param next query string false "登录成功后的跳转地址" default(/dashboard)
// @Success 302
// @Router /auth/google/login [get]
func (c *AuthController) GoogleLogin(ctx *gin.Context) {
	state, err := service.NewState()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(oauthStateCookie, state, oauthCookieTTL, "/", "", c.JWT.Secure, true)
	ctx.SetCookie(oauthNextCookie, safeNext(ctx.DefaultQuery("next", "/dashboard")), oauthCookieTTL, "/", "", c.JWT.Secure, true)
	ctx.Redirect(http.StatusFound, c.AuthService.AuthURL(state))
}

// @Summary Google 登录回调
// @Description 校验 state，换取令牌并写入会话 cookie
// @Tags 认证
// @Param state query string true "OAuth state"
// @Param code query string true "授权码"
// @Success 302
// @Failure 401 {string} string "登录失败，返回登录页并显示错误"
// @Router /auth/google/callback [get]
func (c *AuthController) GoogleCallback(ctx *gin.Context) {
	expected, _ := ctx.Cookie(oauthStateCookie)
	next, _ := ctx.Cookie(oauthNextCookie)
	ctx.SetCookie(oauthStateCookie, "", -1, "/", "", c.JWT.Secure, true)
	ctx.SetCookie(oauthNextCookie, "", -1, "/", "", c.JWT.Secure, true)

	if providerErr := ctx.Query("error"); providerErr != "" {
		c.renderLoginError(ctx, "Sign-in was cancelled: "+providerErr)
		return
	}
	if expected == "" || ctx.Query("state") != expected {
		logger.Log.Warn("OAuth state mismatch", zap.String("ip", ctx.ClientIP()))
		c.renderLoginError(ctx, util.ErrInvalidOAuthState.Error())
		return
	}

	token, _, err := c.AuthService.CompleteSignIn(ctx.Request.Context(), ctx.Query("code"))
	if err != nil {
		logger.Log.Error("OAuth sign-in failed", zap.Error(err))
		c.renderLoginError(ctx, "Sign-in failed, please try again")
		return
	}

	c.setSessionCookie(ctx, token)
	ctx.Redirect(http.StatusFound, safeNext(next))
}

func (c *AuthController) renderLoginError(ctx *gin.Context, message string) {
	ctx.HTML(http.StatusUnauthorized, "login.html", gin.H{
		"Title": "Sign in",
		"Error": message,
	})
}

func (c *AuthController) setSessionCookie(ctx *gin.Context, token string) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.JWT.CookieName, token, int(c.JWT.ExpireTime.Seconds()), "/", "", c.JWT.Secure, true)
}

// @Summary 退出登录
// @Description 清除会话 cookie 并发布退出事件
// @Tags 认证
// @Success 302
// @Router /auth/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	c.AuthService.SignOut(util.GetSession(ctx))
	ctx.SetCookie(c.JWT.CookieName, "", -1, "/", "", c.JWT.Secure, true)
	ctx.Redirect(http.StatusFound, "/landing")
}

// @Summary 当前会话
// @Description 返回当前登录用户的会话信息
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=session.Session}
// @Failure 401 {object} util.Response
// @Router /api/auth/session [get]
func (c *AuthController) CurrentSession(ctx *gin.Context) {
	sess := util.GetSession(ctx)
	if sess == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, sess)
}
