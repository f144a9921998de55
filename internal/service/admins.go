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

// AdminListColumns are the columns the admins list needs
var AdminListColumns = []string{domain.ColEmail, domain.ColRole, domain.ColCreatedAt}

// AdminService управление администраторами панели
type AdminService struct {
	gw    gateway.Gateway
	audit auditor
	log   *logger.Logger
}

// NewAdminService создает сервис администраторов
func NewAdminService(gw gateway.Gateway, pub events.Publisher, log *logger.Logger) *AdminService {
	return &AdminService{gw: gw, audit: newAuditor(pub, log), log: log}
}

// List возвращает всех администраторов
func (s *AdminService) List(ctx context.Context) ([]gateway.Row, error) {
	rows, err := s.gw.Select(ctx, domain.TableAdmins, gateway.Query{Columns: AdminListColumns})
	if err != nil {
		return nil, fmt.Errorf("failed to list admins: %w", err)
	}
	return rows, nil
}

// Add добавляет администратора с ролью по умолчанию и возвращает обновленный список
func (s *AdminService) Add(ctx context.Context, r domain.AdminRequest) ([]gateway.Row, error) {
	if err := req.IsValid(r); err != nil {
		return nil, err
	}

	rec := gateway.Record{domain.ColEmail: r.Email, domain.ColRole: domain.DefaultAdminRole}
	if err := s.gw.Insert(ctx, domain.TableAdmins, rec); err != nil {
		return nil, fmt.Errorf("failed to add admin: %w", err)
	}

	s.log.Infow("Admin added", "email", r.Email)
	s.audit.record(ctx, events.TypeAdminAdded, string(domain.TableAdmins), r.Email,
		map[string]any{"role": domain.DefaultAdminRole})
	return s.List(ctx)
}
