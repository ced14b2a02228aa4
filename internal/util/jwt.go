package util

import (
	"caseforge_backend/internal/model"
	"caseforge_backend/internal/session"
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

type Claims struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWT(user *model.User, secret string, expiration time.Duration) (string, error) {
	expirationTime := time.Now().Add(expiration)

	claims := &Claims{
		UserID:    user.ID,
		Email:     user.Email,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseJWT(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("invalid token")
}

// Session 把令牌内容转换为会话对象
func (c *Claims) Session(isAdmin bool) *session.Session {
	var expires time.Time
	if c.ExpiresAt != nil {
		expires = c.ExpiresAt.Time
	}
	return &session.Session{
		UserID: c.UserID,
		Email:  c.Email,
		Metadata: model.UserMetadata{
			FullName:  c.Name,
			AvatarURL: c.AvatarURL,
		},
		IsAdmin:   isAdmin,
		ExpiresAt: expires,
	}
}

func SetSession(c *gin.Context, s *session.Session) {
	c.Set(sessionKey, s)
	c.Request = c.Request.WithContext(session.WithSession(c.Request.Context(), s))
}

func GetSession(c *gin.Context) *session.Session {
	v, exists := c.Get(sessionKey)
	if !exists {
		return nil
	}
	s, ok := v.(*session.Session)
	if !ok {
		return nil
	}
	return s
}
