package domain

import "time"

// DefaultAdminRole роль, которая выдается новым администраторам
const DefaultAdminRole = "admin"

// Admin представляет собой учетную запись сотрудника панели
type Admin struct {
	Email     string    `json:"email" db:"email"`
	Role      string    `json:"role" db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// AdminRequest представляет запрос на добавление администратора
type AdminRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// Session представляет собой датированную запись посещения; используется только в отчетах
type Session struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	SessionDate time.Time `json:"session_date" db:"session_date"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
