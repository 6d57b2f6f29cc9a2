package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrParticipantExists   = errors.New("participant already exists")
	ErrParticipantNotFound = errors.New("participant not found")
	ErrIdentityAmbiguous   = errors.New("more than one participant matches this identity")
	ErrAlreadyAssigned     = errors.New("participant already has a recipient")
	ErrClaimNotReleasable  = errors.New("claim is owned by a participant")
)

const identityIndexName = "uni_participants_identity"

type Participant struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"not null"`
	Phone      string `gorm:"not null;index:idx_participants_phone"`
	Department string `gorm:"not null;default:General"`
	Email      string
	PINCode    *string `gorm:"column:pin_code"`

	IsChosen      bool    `gorm:"not null;default:false;index"`
	RecipientID   *uint   `gorm:"column:recipient_id;index"`
	RecipientName *string `gorm:"column:recipient_name"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ParticipantStats struct {
	Total    int64
	Drawn    int64
	Claimed  int64
	Orphaned int64
}

type ParticipantDAO struct {
	db *gorm.DB
}

func NewParticipantDAO(db *gorm.DB) *ParticipantDAO {
	return &ParticipantDAO{
		db: db,
	}
}

func (d *ParticipantDAO) InsertMany(ctx context.Context, participants []Participant) ([]Participant, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&participants).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrParticipantExists
		}

		return nil, err
	}

	return participants, nil
}

func (d *ParticipantDAO) FindByID(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	result := d.db.WithContext(ctx).First(&participant, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Participant{}, ErrParticipantNotFound
		}

		return Participant{}, result.Error
	}

	return participant, nil
}

// FindByIdentity matches name case-insensitively and phone exactly.
func (d *ParticipantDAO) FindByIdentity(ctx context.Context, name, phone string) (Participant, error) {
	return d.findOne(ctx, "LOWER(name) = LOWER(?) AND phone = ?", strings.TrimSpace(name), strings.TrimSpace(phone))
}

func (d *ParticipantDAO) FindByPIN(ctx context.Context, name, pin string) (Participant, error) {
	return d.findOne(ctx, "LOWER(name) = LOWER(?) AND pin_code = ?", strings.TrimSpace(name), strings.TrimSpace(pin))
}

func (d *ParticipantDAO) findOne(ctx context.Context, query string, args ...interface{}) (Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Where(query, args...).Order("id").Limit(2).Find(&participants)
	if result.Error != nil {
		return Participant{}, result.Error
	}

	switch len(participants) {
	case 0:
		return Participant{}, ErrParticipantNotFound
	case 1:
		return participants[0], nil
	default:
		return Participant{}, ErrIdentityAmbiguous
	}
}

func (d *ParticipantDAO) FindAll(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).Order("created_at DESC").Order("id DESC").Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) FindCandidates(ctx context.Context, excludeID uint) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("is_chosen = ? AND id <> ?", false, excludeID).
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

// Claim flips is_chosen in a single conditional statement and reports
// whether this call was the one that flipped it.
func (d *ParticipantDAO) Claim(ctx context.Context, id uint) (bool, error) {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id = ? AND is_chosen = ?", id, false).
		Update("is_chosen", true)
	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

// ReleaseClaim resets is_chosen only while nobody's recipient_id points
// at the row.
func (d *ParticipantDAO) ReleaseClaim(ctx context.Context, id uint) error {
	owners := d.db.Model(&Participant{}).Select("1").Where("recipient_id = ?", id)

	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id = ? AND is_chosen = ?", id, true).
		Where("NOT EXISTS (?)", owners).
		Update("is_chosen", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrClaimNotReleasable
	}

	return nil
}

func (d *ParticipantDAO) RecordAssignment(ctx context.Context, ownerID, recipientID uint, recipientName string) error {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("id = ? AND recipient_id IS NULL", ownerID).
		Updates(map[string]interface{}{
			"recipient_id":   recipientID,
			"recipient_name": recipientName,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyAssigned
	}

	return nil
}

func (d *ParticipantDAO) UpdateProfile(ctx context.Context, participant Participant) (Participant, error) {
	result := d.db.WithContext(ctx).
		Model(&Participant{ID: participant.ID}).
		Select("name", "phone", "department").
		Updates(&participant)
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return Participant{}, ErrParticipantExists
		}

		return Participant{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Participant{}, ErrParticipantNotFound
	}

	return d.FindByID(ctx, participant.ID)
}

func (d *ParticipantDAO) UpdatePIN(ctx context.Context, name, phone, pin string) error {
	result := d.db.WithContext(ctx).
		Model(&Participant{}).
		Where("LOWER(name) = LOWER(?) AND phone = ?", strings.TrimSpace(name), strings.TrimSpace(phone)).
		Update("pin_code", pin)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (d *ParticipantDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&Participant{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}

func (d *ParticipantDAO) DeleteAll(ctx context.Context) error {
	return d.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&Participant{}).Error
}

// FindOrphanedClaims lists claimed rows that no participant has recorded
// as its recipient.
func (d *ParticipantDAO) FindOrphanedClaims(ctx context.Context) ([]Participant, error) {
	var participants []Participant

	result := d.db.WithContext(ctx).
		Where("is_chosen = ?", true).
		Where("NOT EXISTS (?)", d.ownerSubquery()).
		Order("id").
		Find(&participants)
	if result.Error != nil {
		return nil, result.Error
	}

	return participants, nil
}

func (d *ParticipantDAO) Stats(ctx context.Context) (ParticipantStats, error) {
	var stats ParticipantStats
	db := d.db.WithContext(ctx).Model(&Participant{})

	if err := db.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		return ParticipantStats{}, err
	}
	if err := db.Session(&gorm.Session{}).Where("recipient_id IS NOT NULL").Count(&stats.Drawn).Error; err != nil {
		return ParticipantStats{}, err
	}
	if err := db.Session(&gorm.Session{}).Where("is_chosen = ?", true).Count(&stats.Claimed).Error; err != nil {
		return ParticipantStats{}, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("is_chosen = ?", true).
		Where("NOT EXISTS (?)", d.ownerSubquery()).
		Count(&stats.Orphaned).Error; err != nil {
		return ParticipantStats{}, err
	}

	return stats, nil
}

func (d *ParticipantDAO) ownerSubquery() *gorm.DB {
	return d.db.Table("participants AS owners").
		Select("1").
		Where("owners.recipient_id = participants.id")
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
