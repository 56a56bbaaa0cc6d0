package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"shop/internal/app/config"
	"shop/internal/app/ds"
	"shop/internal/app/role"
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt"
	"github.com/sirupsen/logrus"
)

// CookieName - HttpOnly cookie с JWT сессии
const CookieName = "auth_token"

const (
	loginPath  = "/login"
	apiPrefix  = "/api"
	bearerType = "Bearer "
	issuer     = "online-shop"
)

// TokenBlacklist - хранилище отозванных токенов (redis.Client)
type TokenBlacklist interface {
	WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error
	CheckJWTInBlacklist(ctx context.Context, jwtStr string) error
}

type AuthMiddleware struct {
	Blacklist TokenBlacklist
	Config    *config.Config
}

func NewAuthMiddleware(blacklist TokenBlacklist, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		Blacklist: blacklist,
		Config:    cfg,
	}
}

// WithPrincipal кладёт в контекст пользователя из токена, если он есть и валиден.
// Запрос без токена проходит дальше как анонимный
func (am *AuthMiddleware) WithPrincipal() gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		jwtStr := tokenFromRequest(gCtx)
		if jwtStr == "" {
			gCtx.Next()
			return
		}

		claims, err := am.validate(gCtx.Request.Context(), jwtStr)
		if err != nil {
			logrus.WithError(err).Debug("session token rejected")
			gCtx.Next()
			return
		}

		setPrincipal(gCtx, service.Principal{Login: claims.Login, Roles: claims.Roles}, jwtStr)
		gCtx.Next()
	}
}

// WithAuthCheck требует сессию и хотя бы одну из ролей, если они заданы.
// Без сессии HTML запросы уходят на /login, API получает 401
func (am *AuthMiddleware) WithAuthCheck(assignedRoles ...role.Role) gin.HandlerFunc {
	return func(gCtx *gin.Context) {
		principal, ok := CurrentPrincipal(gCtx)
		if !ok {
			if jwtStr := tokenFromRequest(gCtx); jwtStr != "" {
				if claims, err := am.validate(gCtx.Request.Context(), jwtStr); err == nil {
					principal = service.Principal{Login: claims.Login, Roles: claims.Roles}
					setPrincipal(gCtx, principal, jwtStr)
					ok = true
				}
			}
		}

		if !ok {
			if strings.HasPrefix(gCtx.Request.URL.Path, apiPrefix) {
				gCtx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"status":  "fail",
					"message": "authentication required",
				})
				return
			}
			gCtx.Redirect(http.StatusFound, loginPath)
			gCtx.Abort()
			return
		}

		if len(assignedRoles) > 0 && !principal.Has(assignedRoles...) {
			gCtx.AbortWithStatus(http.StatusForbidden)
			return
		}

		gCtx.Next()
	}
}

// IssueToken подписывает JWT для пользователя и возвращает его срок жизни
func (am *AuthMiddleware) IssueToken(p service.Principal) (string, time.Duration, error) {
	now := time.Now()
	ttl := am.Config.JWT.ExpiresIn

	token := jwt.NewWithClaims(am.signingMethod(), ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(ttl).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    issuer,
			Subject:   p.Login,
		},
		Login: p.Login,
		Roles: p.Roles,
	})

	signed, err := token.SignedString([]byte(am.Config.JWT.Token))
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

// RevokeToken добавляет токен в blacklist до истечения его срока
func (am *AuthMiddleware) RevokeToken(ctx context.Context, jwtStr string) error {
	claims, err := am.parse(jwtStr)
	if err != nil {
		// невалидный или истёкший токен и так не пройдёт проверку
		return nil
	}

	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl <= 0 || am.Blacklist == nil {
		return nil
	}
	return am.Blacklist.WriteJWTToBlacklist(ctx, jwtStr, ttl)
}

func (am *AuthMiddleware) validate(ctx context.Context, jwtStr string) (*ds.JWTClaims, error) {
	// CheckJWTInBlacklist возвращает nil, если токен отозван, и redis.Nil, если нет.
	// При недоступном хранилище токен не принимается
	if am.Blacklist != nil {
		err := am.Blacklist.CheckJWTInBlacklist(ctx, jwtStr)
		switch {
		case err == nil:
			return nil, errors.New("token revoked")
		case !errors.Is(err, redis.Nil):
			return nil, fmt.Errorf("blacklist check failed: %w", err)
		}
	}
	return am.parse(jwtStr)
}

// parse парсит и валидирует JWT токен
func (am *AuthMiddleware) parse(jwtStr string) (*ds.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(jwtStr, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != am.signingMethod().Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(am.Config.JWT.Token), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ds.JWTClaims)
	if !ok || !token.Valid || claims.Login == "" {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

func (am *AuthMiddleware) signingMethod() jwt.SigningMethod {
	if am.Config.JWT.SigningMethod != nil {
		return am.Config.JWT.SigningMethod
	}
	return jwt.SigningMethodHS256
}

// tokenFromRequest берёт токен из заголовка Authorization или из cookie
func tokenFromRequest(gCtx *gin.Context) string {
	if header := gCtx.GetHeader("Authorization"); strings.HasPrefix(header, bearerType) {
		return strings.TrimSpace(header[len(bearerType):])
	}
	if cookie, err := gCtx.Cookie(CookieName); err == nil {
		return cookie
	}
	return ""
}
