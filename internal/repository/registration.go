package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
)

var ErrRegistrationNotFound = dao.ErrRegistrationNotFound

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.PendingRegistration) (dao.PendingRegistration, error)
	FindAll(ctx context.Context) ([]dao.PendingRegistration, error)
	Update(ctx context.Context, registration dao.PendingRegistration) (dao.PendingRegistration, error)
	Delete(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint) (dao.Participant, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, r.domainToDAO(registration))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) List(ctx context.Context) ([]domain.Registration, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	registrations := make([]domain.Registration, 0, len(found))
	for _, f := range found {
		registrations = append(registrations, r.daoToDomain(f))
	}

	return registrations, nil
}

func (r *RegistrationRepository) Update(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	updated, err := r.dao.Update(ctx, r.domainToDAO(registration))
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *RegistrationRepository) Reject(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) Approve(ctx context.Context, id uint) (domain.Participant, error) {
	p, err := r.dao.Approve(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.Approve -> %w", err)
	}

	return domain.Participant{
		ID:         p.ID,
		Name:       p.Name,
		Phone:      p.Phone,
		Department: p.Department,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}, nil
}

func (r *RegistrationRepository) domainToDAO(reg domain.Registration) dao.PendingRegistration {
	department := strings.TrimSpace(reg.Department)
	if department == "" {
		department = domain.DefaultDepartment
	}

	return dao.PendingRegistration{
		ID:         reg.ID,
		Name:       strings.TrimSpace(reg.Name),
		Phone:      strings.TrimSpace(reg.Phone),
		Department: department,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.PendingRegistration) domain.Registration {
	return domain.Registration{
		ID:         reg.ID,
		Name:       reg.Name,
		Phone:      reg.Phone,
		Department: reg.Department,
		CreatedAt:  reg.CreatedAt,
	}
}
