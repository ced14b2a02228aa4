package service

import (
	"caseforge_backend/internal/config"
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/session"
	"caseforge_backend/internal/util"
	"caseforge_backend/pkg/logger"
	"caseforge_backend/pkg/monitoring"
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleEndpoint Google OAuth2 授权与换取令牌地址
var GoogleEndpoint = oauth2.Endpoint{
	AuthURL:   "https://accounts.google.com/o/oauth2/auth",
	TokenURL:  "https://oauth2.googleapis.com/token",
	AuthStyle: oauth2.AuthStyleInParams,
}

// GoogleUser userinfo 接口返回的字段
type GoogleUser struct {
	Sub     string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

type AuthService struct {
	Users UserStore
	Hub   *session.Hub
	// Onboarding 非空时在签发会话前同步初始化新用户
	Onboarding  *OnboardingService
	OAuth       *oauth2.Config
	UserInfoURL string
	Cfg         *config.Config

	mu         sync.RWMutex
	adminEmail string
}

func NewAuthService(users UserStore, hub *session.Hub, cfg *config.Config) *AuthService {
	return &AuthService{
		Users: users,
		Hub:   hub,
		OAuth: &oauth2.Config{
			ClientID:     cfg.OAuth.GoogleClientID,
			ClientSecret: cfg.OAuth.GoogleClientSecret,
			RedirectURL:  strings.TrimRight(cfg.Server.BaseURL, "/") + cfg.OAuth.RedirectPath,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     GoogleEndpoint,
		},
		UserInfoURL: googleUserInfoURL,
		Cfg:         cfg,
		adminEmail:  cfg.Admin.Email,
	}
}

// SetAdminEmail 配置热更新时调用
func (s *AuthService) SetAdminEmail(email string) {
	s.mu.Lock()
	s.adminEmail = email
	s.mu.Unlock()
}

// IsAdmin 未配置管理员邮箱时没有人是管理员
func (s *AuthService) IsAdmin(email string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}

// NewState 生成 OAuth state，写入 cookie 后在回调中比对
func NewState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

func (s *AuthService) AuthURL(state string) string {
	return s.OAuth.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// CompleteSignIn 用授权码换取令牌、读取用户信息并签发会话 JWT
func (s *AuthService) CompleteSignIn(ctx context.Context, code string) (string, *session.Session, error) {
	tok, err := s.OAuth.Exchange(ctx, code)
	if err != nil {
		return "", nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}

	gu, err := s.fetchUser(ctx, tok)
	if err != nil {
		return "", nil, err
	}

	user, err := s.Users.UpsertOAuthUser(ctx, &model.User{
		Email:      gu.Email,
		Name:       gu.Name,
		AvatarURL:  gu.Picture,
		Provider:   "google",
		ProviderID: gu.Sub,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to save user: %w", err)
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return "", nil, err
	}

	sess, err := s.SessionFromToken(token)
	if err != nil {
		return "", nil, err
	}

	if s.Onboarding != nil {
		s.Onboarding.EnsureUser(ctx, sess)
	}

	monitoring.SignIns.Inc()
	logger.Log.Info("User signed in", zap.String("user_id", user.ID), zap.Bool("admin", sess.IsAdmin))
	s.publish(session.SignedIn, sess)
	return token, sess, nil
}

func (s *AuthService) fetchUser(ctx context.Context, tok *oauth2.Token) (*GoogleUser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.UserInfoURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.OAuth.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("userinfo error %d: %s", resp.StatusCode, string(body))
	}

	var gu GoogleUser
	if err := json.NewDecoder(resp.Body).Decode(&gu); err != nil {
		return nil, fmt.Errorf("failed to decode user info: %w", err)
	}
	if gu.Email == "" {
		return nil, errors.New("provider returned no email")
	}
	return &gu, nil
}

// SessionFromToken 校验 JWT 并恢复会话，管理员身份按当前配置判断
func (s *AuthService) SessionFromToken(token string) (*session.Session, error) {
	claims, err := util.ParseJWT(token, s.Cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	return claims.Session(s.IsAdmin(claims.Email)), nil
}

func (s *AuthService) SignOut(sess *session.Session) {
	if sess == nil {
		return
	}
	logger.Log.Info("User signed out", zap.String("user_id", sess.UserID))
	s.publish(session.SignedOut, sess)
}

func (s *AuthService) publish(t session.EventType, sess *session.Session) {
	if s.Hub == nil {
		return
	}
	s.Hub.Publish(session.Event{Type: t, Session: *sess})
}
