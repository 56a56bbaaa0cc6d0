package ds

import (
	"shop/internal/app/role"

	"github.com/golang-jwt/jwt"
)

type JWTClaims struct {
	jwt.StandardClaims
	Login string      `json:"login"`
	Roles []role.Role `json:"roles"`
}
