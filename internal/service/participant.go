package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository"
)

var (
	ErrParticipantExists   = repository.ErrParticipantExists
	ErrParticipantNotFound = repository.ErrParticipantNotFound
	ErrClaimNotReleasable  = repository.ErrClaimNotReleasable
)

const exportSheet = "Assignments"

type ParticipantRepository interface {
	Create(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error)
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	List(ctx context.Context) ([]domain.Participant, error)
	Update(ctx context.Context, participant domain.Participant) (domain.Participant, error)
	SetPIN(ctx context.Context, name, phone, pin string) error
	Delete(ctx context.Context, id uint) error
	Reset(ctx context.Context) error
	ReleaseClaim(ctx context.Context, candidateID uint) error
	ListOrphanedClaims(ctx context.Context) ([]domain.Participant, error)
	Stats(ctx context.Context) (domain.PoolStats, error)
}

type ParticipantService struct {
	repo ParticipantRepository
}

func NewParticipantService(repo ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		repo: repo,
	}
}

func (s *ParticipantService) AddParticipants(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error) {
	created, err := s.repo.Create(ctx, participants)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ParticipantService) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}

	return participants, nil
}

func (s *ParticipantService) UpdateParticipant(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := s.repo.Update(ctx, participant)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

func (s *ParticipantService) DeleteParticipant(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func (s *ParticipantService) ResetPool(ctx context.Context) error {
	if err := s.repo.Reset(ctx); err != nil {
		return fmt.Errorf("s.repo.Reset -> %w", err)
	}

	return nil
}

func (s *ParticipantService) SetPIN(ctx context.Context, name, phone, pin string) error {
	if err := s.repo.SetPIN(ctx, name, phone, pin); err != nil {
		return fmt.Errorf("s.repo.SetPIN -> %w", err)
	}

	return nil
}

func (s *ParticipantService) PoolStats(ctx context.Context) (domain.PoolStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.PoolStats{}, fmt.Errorf("s.repo.Stats -> %w", err)
	}

	return stats, nil
}

func (s *ParticipantService) OrphanedClaims(ctx context.Context) ([]domain.Participant, error) {
	orphans, err := s.repo.ListOrphanedClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListOrphanedClaims -> %w", err)
	}

	return orphans, nil
}

// ReleaseOrphanedClaim returns an ownerless claimed participant to the
// candidate pool. Claims that some participant owns are refused.
func (s *ParticipantService) ReleaseOrphanedClaim(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := s.repo.ReleaseClaim(ctx, id); err != nil {
		return fmt.Errorf("s.repo.ReleaseClaim -> %w", err)
	}

	return nil
}

// ExportAssignments writes every participant and its recipient as an
// xlsx workbook.
func (s *ParticipantService) ExportAssignments(ctx context.Context, w io.Writer) error {
	participants, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("s.repo.List -> %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("f.SetSheetName -> %w", err)
	}

	header := []interface{}{"ID", "Name", "Phone", "Department", "Chosen", "Recipient"}
	if err := f.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return fmt.Errorf("f.SetSheetRow -> %w", err)
	}

	for i, p := range participants {
		row := []interface{}{p.ID, p.Name, p.Phone, p.Department, p.IsChosen, p.RecipientName}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("excelize.CoordinatesToCellName -> %w", err)
		}
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("f.SetSheetRow -> %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("f.Write -> %w", err)
	}

	return nil
}
