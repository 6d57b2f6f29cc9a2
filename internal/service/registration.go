package service

import (
	"context"
	"fmt"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository"
)

var ErrRegistrationNotFound = repository.ErrRegistrationNotFound

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	List(ctx context.Context) ([]domain.Registration, error)
	Update(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	Reject(ctx context.Context, id uint) error
	Approve(ctx context.Context, id uint) (domain.Participant, error)
}

type RegistrationService struct {
	repo RegistrationRepository
}

func NewRegistrationService(repo RegistrationRepository) *RegistrationService {
	return &RegistrationService{
		repo: repo,
	}
}

func (s *RegistrationService) RequestJoin(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := s.repo.Create(ctx, registration)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *RegistrationService) ListPending(ctx context.Context) ([]domain.Registration, error) {
	registrations, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return registrations, nil
}

func (s *RegistrationService) UpdatePending(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	updated, err := s.repo.Update(ctx, registration)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *RegistrationService) Approve(ctx context.Context, id uint) (domain.Participant, error) {
	participant, err := s.repo.Approve(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Approve -> %w", err)
	}

	return participant, nil
}

func (s *RegistrationService) Reject(ctx context.Context, id uint) error {
	if err := s.repo.Reject(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Reject -> %w", err)
	}

	return nil
}
