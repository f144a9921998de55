package domain

import "time"

// UserStatus статус пользователя
type UserStatus string

const (
	UserStatusActive   UserStatus = "Active"
	UserStatusInactive UserStatus = "Inactive"
)

// UserStatuses returns the two statuses in dashboard order
func UserStatuses() []UserStatus {
	return []UserStatus{UserStatusActive, UserStatusInactive}
}

// User представляет собой модель пользователя (члена клуба)
type User struct {
	ID             string     `json:"id" db:"id"`
	FullName       string     `json:"full_name" db:"full_name"`
	Phone          string     `json:"phone" db:"phone"`
	MembershipCode string     `json:"membership_code" db:"membership_code"`
	Status         UserStatus `json:"status" db:"status"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
}

// ExtendSubscriptionRequest представляет запрос на продление последней подписки
type ExtendSubscriptionRequest struct {
	Days int `json:"days" validate:"required,gt=0"`
}
