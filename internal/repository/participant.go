package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository/dao"
)

var (
	ErrParticipantExists   = dao.ErrParticipantExists
	ErrParticipantNotFound = dao.ErrParticipantNotFound
	ErrIdentityAmbiguous   = dao.ErrIdentityAmbiguous
	ErrAlreadyAssigned     = dao.ErrAlreadyAssigned
	ErrClaimNotReleasable  = dao.ErrClaimNotReleasable
)

type ParticipantDAO interface {
	InsertMany(ctx context.Context, participants []dao.Participant) ([]dao.Participant, error)
	FindByID(ctx context.Context, id uint) (dao.Participant, error)
	FindByIdentity(ctx context.Context, name, phone string) (dao.Participant, error)
	FindByPIN(ctx context.Context, name, pin string) (dao.Participant, error)
	FindAll(ctx context.Context) ([]dao.Participant, error)
	FindCandidates(ctx context.Context, excludeID uint) ([]dao.Participant, error)
	Claim(ctx context.Context, id uint) (bool, error)
	ReleaseClaim(ctx context.Context, id uint) error
	RecordAssignment(ctx context.Context, ownerID, recipientID uint, recipientName string) error
	UpdateProfile(ctx context.Context, participant dao.Participant) (dao.Participant, error)
	UpdatePIN(ctx context.Context, name, phone, pin string) error
	Delete(ctx context.Context, id uint) error
	DeleteAll(ctx context.Context) error
	FindOrphanedClaims(ctx context.Context) ([]dao.Participant, error)
	Stats(ctx context.Context) (dao.ParticipantStats, error)
}

type ParticipantRepository struct {
	dao ParticipantDAO
}

func NewParticipantRepository(dao ParticipantDAO) *ParticipantRepository {
	return &ParticipantRepository{
		dao: dao,
	}
}

func (r *ParticipantRepository) Create(ctx context.Context, participants []domain.Participant) ([]domain.Participant, error) {
	rows := make([]dao.Participant, 0, len(participants))
	for _, p := range participants {
		department := strings.TrimSpace(p.Department)
		if department == "" {
			department = domain.DefaultDepartment
		}

		rows = append(rows, dao.Participant{
			Name:       strings.TrimSpace(p.Name),
			Phone:      strings.TrimSpace(p.Phone),
			Department: department,
			Email:      strings.TrimSpace(p.Email),
		})
	}

	created, err := r.dao.InsertMany(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.dao.InsertMany -> %w", err)
	}

	return r.daosToDomain(created), nil
}

func (r *ParticipantRepository) FindByID(ctx context.Context, id uint) (domain.Participant, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByIdentity(ctx context.Context, name, phone string) (domain.Participant, error) {
	found, err := r.dao.FindByIdentity(ctx, name, phone)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByIdentity -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) FindByPIN(ctx context.Context, name, pin string) (domain.Participant, error) {
	found, err := r.dao.FindByPIN(ctx, name, pin)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.FindByPIN -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ParticipantRepository) List(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) ListCandidates(ctx context.Context, excludeID uint) ([]domain.Participant, error) {
	found, err := r.dao.FindCandidates(ctx, excludeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindCandidates -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) ClaimCandidate(ctx context.Context, candidateID uint) (bool, error) {
	claimed, err := r.dao.Claim(ctx, candidateID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Claim -> %w", err)
	}

	return claimed, nil
}

func (r *ParticipantRepository) ReleaseClaim(ctx context.Context, candidateID uint) error {
	if err := r.dao.ReleaseClaim(ctx, candidateID); err != nil {
		return fmt.Errorf("r.dao.ReleaseClaim -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) RecordAssignment(ctx context.Context, ownerID, recipientID uint, recipientName string) error {
	if err := r.dao.RecordAssignment(ctx, ownerID, recipientID, recipientName); err != nil {
		return fmt.Errorf("r.dao.RecordAssignment -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) Update(ctx context.Context, participant domain.Participant) (domain.Participant, error) {
	updated, err := r.dao.UpdateProfile(ctx, dao.Participant{
		ID:         participant.ID,
		Name:       strings.TrimSpace(participant.Name),
		Phone:      strings.TrimSpace(participant.Phone),
		Department: strings.TrimSpace(participant.Department),
	})
	if err != nil {
		return domain.Participant{}, fmt.Errorf("r.dao.UpdateProfile -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *ParticipantRepository) SetPIN(ctx context.Context, name, phone, pin string) error {
	if err := r.dao.UpdatePIN(ctx, name, phone, pin); err != nil {
		return fmt.Errorf("r.dao.UpdatePIN -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) Reset(ctx context.Context) error {
	if err := r.dao.DeleteAll(ctx); err != nil {
		return fmt.Errorf("r.dao.DeleteAll -> %w", err)
	}

	return nil
}

func (r *ParticipantRepository) ListOrphanedClaims(ctx context.Context) ([]domain.Participant, error) {
	found, err := r.dao.FindOrphanedClaims(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindOrphanedClaims -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *ParticipantRepository) Stats(ctx context.Context) (domain.PoolStats, error) {
	stats, err := r.dao.Stats(ctx)
	if err != nil {
		return domain.PoolStats{}, fmt.Errorf("r.dao.Stats -> %w", err)
	}

	return domain.PoolStats{
		Total:    stats.Total,
		Drawn:    stats.Drawn,
		Claimed:  stats.Claimed,
		Orphaned: stats.Orphaned,
	}, nil
}

func (r *ParticipantRepository) daoToDomain(p dao.Participant) domain.Participant {
	participant := domain.Participant{
		ID:          p.ID,
		Name:        p.Name,
		Phone:       p.Phone,
		Department:  p.Department,
		Email:       p.Email,
		IsChosen:    p.IsChosen,
		RecipientID: p.RecipientID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.PINCode != nil {
		participant.PINCode = *p.PINCode
	}
	if p.RecipientName != nil {
		participant.RecipientName = *p.RecipientName
	}

	return participant
}

func (r *ParticipantRepository) daosToDomain(ps []dao.Participant) []domain.Participant {
	participants := make([]domain.Participant, 0, len(ps))
	for _, p := range ps {
		participants = append(participants, r.daoToDomain(p))
	}

	return participants
}
