package ds

// Таблица пользователей
type User struct {
	ID       uint   `gorm:"primaryKey"`
	Login    string `gorm:"type:varchar(50);uniqueIndex;not null"`
	Password string `gorm:"type:varchar(255);not null"` // bcrypt hash
	Roles    string `gorm:"type:varchar(255);not null"` // ROLE_USER,ROLE_ADMIN
}
