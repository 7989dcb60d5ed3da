package auth

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/inslanka/shop-api/pkg/global"
	"github.com/inslanka/shop-api/pkg/models"
)

const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"

	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	AccessTokenTTL  = 15 * time.Minute
	RefreshTokenTTL = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrWrongTokenType = errors.New("wrong token type")
)

type Claims struct {
	UserID    string      `json:"uid"`
	Role      models.Role `json:"role"`
	TokenType string      `json:"typ"`
	jwt.RegisteredClaims
}

// IssueTokenPair signs a fresh access/refresh token pair for the user.
// Each token carries a unique id so refresh tokens can be blacklisted
// individually on logout.
func IssueTokenPair(user *models.User) (access, refresh string, err error) {
	access, err = issueToken(user, TokenTypeAccess, AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = issueToken(user, TokenTypeRefresh, RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

func issueToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    user.ID.Hex(),
		Role:      user.Role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(global.GetJWTSecret()))
}

// ParseToken validates the signature and expiry and checks the token is
// of the expected type.
func ParseToken(raw, wantType string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(global.GetJWTSecret()), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != wantType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// TokenFromRequest extracts the raw access token, preferring the
// Authorization header and falling back to the auth cookie.
func TokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	cookie, err := c.Cookie(AccessCookieName)
	if err != nil {
		return ""
	}
	return cookie
}

// SetAuthCookies installs the token pair as HttpOnly cookies
func SetAuthCookies(c *gin.Context, access, refresh string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(AccessCookieName, access, int(AccessTokenTTL.Seconds()), "/", "", false, true)
	c.SetCookie(RefreshCookieName, refresh, int(RefreshTokenTTL.Seconds()), "/", "", false, true)
}

func ClearAuthCookies(c *gin.Context) {
	c.SetCookie(AccessCookieName, "", -1, "/", "", false, true)
	c.SetCookie(RefreshCookieName, "", -1, "/", "", false, true)
}
