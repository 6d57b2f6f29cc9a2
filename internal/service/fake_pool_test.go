package service

import (
	"context"
	"sort"
	"sync"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/repository"
)

// memoryPool mirrors the store's conditional updates under a mutex.
type memoryPool struct {
	mu           sync.Mutex
	participants map[uint]*domain.Participant
	nextID       uint
	calls        int

	// afterList runs once candidates are listed, outside the lock.
	afterList func()
	recordErr error
}

func newMemoryPool() *memoryPool {
	return &memoryPool{
		participants: make(map[uint]*domain.Participant),
	}
}

func (p *memoryPool) add(name, phone, department string) uint {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.nextID++
	p.participants[p.nextID] = &domain.Participant{
		ID:         p.nextID,
		Name:       name,
		Phone:      phone,
		Department: department,
	}

	return p.nextID
}

func (p *memoryPool) markChosen(id uint) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.participants[id].IsChosen = true
}

func (p *memoryPool) setAfterList(hook func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.afterList = hook
}

func (p *memoryPool) get(id uint) domain.Participant {
	p.mu.Lock()
	defer p.mu.Unlock()

	return *p.participants[id]
}

func (p *memoryPool) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}

func (p *memoryPool) FindByID(_ context.Context, id uint) (domain.Participant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	found, ok := p.participants[id]
	if !ok {
		return domain.Participant{}, repository.ErrParticipantNotFound
	}

	return *found, nil
}

func (p *memoryPool) FindByIdentity(_ context.Context, name, phone string) (domain.Participant, error) {
	return p.findOne(func(c *domain.Participant) bool {
		return c.Name == name && c.Phone == phone
	})
}

func (p *memoryPool) FindByPIN(_ context.Context, name, pin string) (domain.Participant, error) {
	return p.findOne(func(c *domain.Participant) bool {
		return c.Name == name && c.PINCode != "" && c.PINCode == pin
	})
}

func (p *memoryPool) findOne(match func(*domain.Participant) bool) (domain.Participant, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	var found []domain.Participant
	for _, c := range p.participants {
		if match(c) {
			found = append(found, *c)
		}
	}

	switch len(found) {
	case 0:
		return domain.Participant{}, repository.ErrParticipantNotFound
	case 1:
		return found[0], nil
	default:
		return domain.Participant{}, repository.ErrIdentityAmbiguous
	}
}

func (p *memoryPool) ListCandidates(_ context.Context, excludeID uint) ([]domain.Participant, error) {
	p.mu.Lock()
	p.calls++

	var candidates []domain.Participant
	for _, c := range p.participants {
		if !c.IsChosen && c.ID != excludeID {
			candidates = append(candidates, *c)
		}
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].ID < candidates[j].ID })
	hook := p.afterList
	p.mu.Unlock()

	if hook != nil {
		hook()
	}

	return candidates, nil
}

func (p *memoryPool) ClaimCandidate(_ context.Context, candidateID uint) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	c, ok := p.participants[candidateID]
	if !ok || c.IsChosen {
		return false, nil
	}
	c.IsChosen = true

	return true, nil
}

func (p *memoryPool) ReleaseClaim(_ context.Context, candidateID uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	c, ok := p.participants[candidateID]
	if !ok || !c.IsChosen {
		return repository.ErrClaimNotReleasable
	}
	for _, owner := range p.participants {
		if owner.RecipientID != nil && *owner.RecipientID == candidateID {
			return repository.ErrClaimNotReleasable
		}
	}
	c.IsChosen = false

	return nil
}

func (p *memoryPool) RecordAssignment(_ context.Context, ownerID, recipientID uint, recipientName string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++

	if p.recordErr != nil {
		return p.recordErr
	}

	owner, ok := p.participants[ownerID]
	if !ok || owner.RecipientID != nil {
		return repository.ErrAlreadyAssigned
	}
	id := recipientID
	owner.RecipientID = &id
	owner.RecipientName = recipientName

	return nil
}

func (p *memoryPool) Stats(_ context.Context) (domain.PoolStats, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	owned := make(map[uint]bool)
	var stats domain.PoolStats
	for _, c := range p.participants {
		stats.Total++
		if c.RecipientID != nil {
			stats.Drawn++
			owned[*c.RecipientID] = true
		}
	}
	for _, c := range p.participants {
		if c.IsChosen {
			stats.Claimed++
			if !owned[c.ID] {
				stats.Orphaned++
			}
		}
	}

	return stats, nil
}

type stubGate struct {
	err error
}

func (g stubGate) CheckOpen(context.Context) error {
	return g.err
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []domain.PoolEvent
}

func (n *recordingNotifier) Publish(event domain.PoolEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()

	return len(n.events)
}
