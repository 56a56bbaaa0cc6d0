package middleware

import (
	"shop/internal/app/service"

	"github.com/gin-gonic/gin"
)

const (
	principalKey = "principal"
	tokenKey     = "token"
)

func setPrincipal(c *gin.Context, p service.Principal, token string) {
	c.Set(principalKey, p)
	c.Set(tokenKey, token)
}

// CurrentPrincipal извлекает пользователя из контекста
func CurrentPrincipal(c *gin.Context) (service.Principal, bool) {
	if v, exists := c.Get(principalKey); exists {
		if p, ok := v.(service.Principal); ok {
			return p, true
		}
	}
	return service.Principal{}, false
}

// CurrentLogin - логин текущего пользователя, пустая строка для анонимного
func CurrentLogin(c *gin.Context) string {
	p, _ := CurrentPrincipal(c)
	return p.Login
}

// CurrentToken - токен, по которому аутентифицирован запрос
func CurrentToken(c *gin.Context) string {
	return c.GetString(tokenKey)
}
