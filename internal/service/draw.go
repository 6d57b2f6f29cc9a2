package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository"
)

var (
	ErrIdentityNotFound    = errors.New("identity not recognized")
	ErrIdentityAmbiguous   = repository.ErrIdentityAmbiguous
	ErrNoCandidatesLeft    = errors.New("no candidates left")
	ErrConcurrencyConflict = errors.New("candidate was claimed concurrently")
)

const poolEventDraw = "draw"

type DrawRepository interface {
	FindByID(ctx context.Context, id uint) (domain.Participant, error)
	FindByIdentity(ctx context.Context, name, phone string) (domain.Participant, error)
	FindByPIN(ctx context.Context, name, pin string) (domain.Participant, error)
	ListCandidates(ctx context.Context, excludeID uint) ([]domain.Participant, error)
	ClaimCandidate(ctx context.Context, candidateID uint) (bool, error)
	ReleaseClaim(ctx context.Context, candidateID uint) error
	RecordAssignment(ctx context.Context, ownerID, recipientID uint, recipientName string) error
	Stats(ctx context.Context) (domain.PoolStats, error)
}

type GameGate interface {
	CheckOpen(ctx context.Context) error
}

// PoolNotifier receives pool statistics after every successful draw.
type PoolNotifier interface {
	Publish(event domain.PoolEvent)
}

type DrawService struct {
	repo     DrawRepository
	gate     GameGate
	notifier PoolNotifier
	pick     func(n int) int
	now      func() time.Time
}

func NewDrawService(repo DrawRepository, gate GameGate, notifier PoolNotifier) *DrawService {
	return &DrawService{
		repo:     repo,
		gate:     gate,
		notifier: notifier,
		pick:     rand.IntN,
		now:      time.Now,
	}
}

// Draw assigns the caller one unclaimed recipient, or replays the
// assignment it already holds. ErrConcurrencyConflict means another draw
// claimed the chosen candidate first; the caller is expected to resubmit.
func (s *DrawService) Draw(ctx context.Context, req domain.DrawRequest) (domain.Assignment, error) {
	if err := s.gate.CheckOpen(ctx); err != nil {
		return domain.Assignment{}, err
	}

	self, err := s.resolve(ctx, req)
	if err != nil {
		return domain.Assignment{}, err
	}

	if self.HasDrawn() {
		return replay(self), nil
	}

	candidates, err := s.repo.ListCandidates(ctx, self.ID)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.ListCandidates -> %w", err)
	}

	pool := preferOtherDepartments(candidates, req.Department)
	if len(pool) == 0 {
		return domain.Assignment{}, ErrNoCandidatesLeft
	}

	candidate := pool[s.pick(len(pool))]

	claimed, err := s.repo.ClaimCandidate(ctx, candidate.ID)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.ClaimCandidate -> %w", err)
	}
	if !claimed {
		return domain.Assignment{}, ErrConcurrencyConflict
	}

	// Between the claim above and this write the candidate is claimed
	// without an owner; a failure here leaves an orphaned claim.
	err = s.repo.RecordAssignment(ctx, self.ID, candidate.ID, candidate.Name)
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyAssigned) {
			return s.undoSelfRace(ctx, self.ID, candidate.ID)
		}

		zap.L().Error("draw left an orphaned claim",
			zap.Uint("participant_id", self.ID),
			zap.Uint("candidate_id", candidate.ID),
			zap.Error(err),
		)
		return domain.Assignment{}, fmt.Errorf("s.repo.RecordAssignment -> %w", err)
	}

	s.publish(ctx)

	return domain.Assignment{
		RecipientID:         candidate.ID,
		RecipientName:       candidate.Name,
		RecipientDepartment: candidate.Department,
	}, nil
}

func (s *DrawService) resolve(ctx context.Context, req domain.DrawRequest) (domain.Participant, error) {
	var (
		self domain.Participant
		err  error
	)
	if req.PIN != "" {
		self, err = s.repo.FindByPIN(ctx, req.Name, req.PIN)
	} else {
		self, err = s.repo.FindByIdentity(ctx, req.Name, req.Phone)
	}
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return domain.Participant{}, ErrIdentityNotFound
		}
		if errors.Is(err, repository.ErrIdentityAmbiguous) {
			return domain.Participant{}, ErrIdentityAmbiguous
		}

		return domain.Participant{}, fmt.Errorf("s.repo.FindByIdentity -> %w", err)
	}

	return self, nil
}

// undoSelfRace handles the same caller winning two concurrent draws: the
// second claim is released and the first assignment is replayed.
func (s *DrawService) undoSelfRace(ctx context.Context, selfID, candidateID uint) (domain.Assignment, error) {
	if err := s.repo.ReleaseClaim(ctx, candidateID); err != nil {
		zap.L().Error("failed to release duplicate claim",
			zap.Uint("participant_id", selfID),
			zap.Uint("candidate_id", candidateID),
			zap.Error(err),
		)
	}

	self, err := s.repo.FindByID(ctx, selfID)
	if err != nil {
		return domain.Assignment{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return replay(self), nil
}

func (s *DrawService) publish(ctx context.Context) {
	if s.notifier == nil {
		return
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		zap.L().Warn("failed to load pool stats for feed", zap.Error(err))
		return
	}

	s.notifier.Publish(domain.PoolEvent{
		Type:  poolEventDraw,
		Stats: stats,
		At:    s.now(),
	})
}

func replay(self domain.Participant) domain.Assignment {
	return domain.Assignment{
		AlreadyAssigned:     true,
		RecipientID:         *self.RecipientID,
		RecipientName:       self.RecipientName,
		RecipientDepartment: domain.UnknownDepartment,
	}
}

// preferOtherDepartments returns the candidates outside department, or all
// candidates when every one of them shares it.
func preferOtherDepartments(candidates []domain.Participant, department string) []domain.Participant {
	others := make([]domain.Participant, 0, len(candidates))
	for _, c := range candidates {
		if c.Department != department {
			others = append(others, c)
		}
	}

	if len(others) > 0 {
		return others
	}

	return candidates
}
