package role

import "strings"

type Role string

const (
	User  Role = "ROLE_USER"
	Admin Role = "ROLE_ADMIN"
)

// Parse разбирает список ролей через запятую, пустые значения пропускаются
func Parse(list string) []Role {
	var roles []Role
	for _, r := range strings.Split(list, ",") {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		roles = append(roles, Role(strings.ToUpper(r)))
	}
	return roles
}

func Join(roles ...Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

// Has проверяет, есть ли у пользователя хотя бы одна из требуемых ролей
func Has(roles []Role, required ...Role) bool {
	for _, r := range roles {
		for _, req := range required {
			if r == req {
				return true
			}
		}
	}
	return false
}
