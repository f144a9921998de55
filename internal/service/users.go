package service

import (
	"context"
	"fmt"

	"github.com/Dhoini/Admin-panel/internal/domain"
	"github.com/Dhoini/Admin-panel/internal/events"
	"github.com/Dhoini/Admin-panel/internal/gateway"
	"github.com/Dhoini/Admin-panel/pkg/logger"
	"github.com/Dhoini/Admin-panel/pkg/req"
)

// UsersListPath is where a deleted user's page sends the browser
const UsersListPath = "/pages/users"

// UserListColumns are the columns the users list needs
var UserListColumns = []string{domain.ColID, domain.ColFullName, domain.ColMembershipCode, domain.ColStatus}

// UserDetail пользователь и его подписки, последние первыми
type UserDetail struct {
	User          gateway.Row
	Subscriptions []gateway.Row
}

// DeleteResult ответ на удаление пользователя
type DeleteResult struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect"`
}

// UserService операции над пользователями и их подписками
type UserService struct {
	gw    gateway.Gateway
	audit auditor
	log   *logger.Logger
}

// NewUserService создает сервис пользователей
func NewUserService(gw gateway.Gateway, pub events.Publisher, log *logger.Logger) *UserService {
	return &UserService{gw: gw, audit: newAuditor(pub, log), log: log}
}

func requireID(id string) error {
	if id == "" {
		return domain.NewValidationError("id", "is required")
	}
	return nil
}

// List возвращает всех пользователей
func (s *UserService) List(ctx context.Context) ([]gateway.Row, error) {
	rows, err := s.gw.Select(ctx, domain.TableUsers, gateway.Query{Columns: UserListColumns})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return rows, nil
}

// Detail возвращает пользователя и его подписки
func (s *UserService) Detail(ctx context.Context, id string) (*UserDetail, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}

	users, err := s.gw.Select(ctx, domain.TableUsers, gateway.Query{
		Filters: []gateway.Filter{gateway.Eq(domain.ColID, id)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	switch len(users) {
	case 0:
		return nil, domain.NewNotFoundError("user", id)
	case 1:
	default:
		return nil, fmt.Errorf("expected one user with id %s, got %d", id, len(users))
	}

	subs, err := s.subscriptions(ctx, id, nil)
	if err != nil {
		return nil, err
	}
	return &UserDetail{User: users[0], Subscriptions: subs}, nil
}

func (s *UserService) subscriptions(ctx context.Context, userID string, columns []string) ([]gateway.Row, error) {
	subs, err := s.gw.Select(ctx, domain.TableSubscriptions, gateway.Query{
		Columns: columns,
		Filters: []gateway.Filter{gateway.Eq(domain.ColUserID, userID)},
		Order:   &gateway.Order{Column: domain.ColEndDate, Descending: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get subscriptions: %w", err)
	}
	return subs, nil
}

// Delete удаляет пользователя
func (s *UserService) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := s.gw.Delete(ctx, domain.TableUsers, gateway.Eq(domain.ColID, id)); err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	s.log.Infow("User deleted", "user_id", id)
	s.audit.record(ctx, events.TypeUserDeleted, string(domain.TableUsers), id, nil)
	return &DeleteResult{Message: "User deleted", Redirect: UsersListPath}, nil
}

// Deactivate переводит пользователя в статус Inactive и возвращает обновленную карточку.
// The write is not rolled back when the refresh fails.
func (s *UserService) Deactivate(ctx context.Context, id string) (*UserDetail, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	patch := gateway.Record{domain.ColStatus: string(domain.UserStatusInactive)}
	if err := s.gw.Update(ctx, domain.TableUsers, patch, gateway.Eq(domain.ColID, id)); err != nil {
		return nil, fmt.Errorf("failed to deactivate user: %w", err)
	}

	s.log.Infow("User deactivated", "user_id", id)
	s.audit.record(ctx, events.TypeUserDeactivated, string(domain.TableUsers), id, nil)
	return s.Detail(ctx, id)
}

// ExtendSubscription продлевает последнюю подписку пользователя на days дней
func (s *UserService) ExtendSubscription(ctx context.Context, id string, r domain.ExtendSubscriptionRequest) (*UserDetail, error) {
	if err := requireID(id); err != nil {
		return nil, err
	}
	if err := req.IsValid(r); err != nil {
		return nil, err
	}

	subs, err := s.subscriptions(ctx, id, []string{domain.ColID, domain.ColEndDate})
	if err != nil {
		return nil, err
	}
	// Строки без end_date упорядочены последними
	if len(subs) == 0 || subs[0].Value(domain.ColEndDate) == nil {
		return nil, domain.ErrNoSubscription
	}

	latest := subs[0]
	end, err := domain.ParseDate(latest.Value(domain.ColEndDate))
	if err != nil {
		return nil, fmt.Errorf("subscription %v has an unreadable end date: %w", latest.Value(domain.ColID), err)
	}
	newEnd := domain.FormatDate(end.UTC().AddDate(0, 0, r.Days))

	subID := latest.Value(domain.ColID)
	if err := s.gw.Update(ctx, domain.TableSubscriptions,
		gateway.Record{domain.ColEndDate: newEnd},
		gateway.Eq(domain.ColID, subID),
	); err != nil {
		return nil, fmt.Errorf("failed to extend subscription: %w", err)
	}

	s.log.Infow("Subscription extended", "user_id", id, "subscription_id", subID, "days", r.Days, "end_date", newEnd)
	s.audit.record(ctx, events.TypeSubscriptionExtended, string(domain.TableSubscriptions), fmt.Sprint(subID),
		map[string]any{"user_id": id, "days": r.Days, "end_date": newEnd})
	return s.Detail(ctx, id)
}
