package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrRegistrationNotFound = errors.New("registration not found")

type PendingRegistration struct {
	ID         uint      `gorm:"primaryKey"`
	Name       string    `gorm:"not null"`
	Phone      string    `gorm:"not null"`
	Department string    `gorm:"not null;default:General"`
	CreatedAt  time.Time `gorm:"not null;index:idx_pending_created"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func (d *RegistrationDAO) Insert(ctx context.Context, registration PendingRegistration) (PendingRegistration, error) {
	result := d.db.WithContext(ctx).Create(&registration)
	if result.Error != nil {
		return PendingRegistration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindAll(ctx context.Context) ([]PendingRegistration, error) {
	var registrations []PendingRegistration

	result := d.db.WithContext(ctx).Order("created_at").Order("id").Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}

func (d *RegistrationDAO) Update(ctx context.Context, registration PendingRegistration) (PendingRegistration, error) {
	result := d.db.WithContext(ctx).
		Model(&PendingRegistration{ID: registration.ID}).
		Select("name", "phone", "department").
		Updates(&registration)
	if result.Error != nil {
		return PendingRegistration{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PendingRegistration{}, ErrRegistrationNotFound
	}

	var updated PendingRegistration
	if err := d.db.WithContext(ctx).First(&updated, registration.ID).Error; err != nil {
		return PendingRegistration{}, err
	}

	return updated, nil
}

func (d *RegistrationDAO) Delete(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&PendingRegistration{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

// Approve moves the pending row into participants atomically.
func (d *RegistrationDAO) Approve(ctx context.Context, id uint) (Participant, error) {
	var participant Participant

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending PendingRegistration
		if err := tx.First(&pending, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return err
		}

		participant = Participant{
			Name:       pending.Name,
			Phone:      pending.Phone,
			Department: pending.Department,
		}
		if err := tx.Create(&participant).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrParticipantExists
			}
			return err
		}

		return tx.Delete(&PendingRegistration{}, id).Error
	})
	if err != nil {
		return Participant{}, err
	}

	return participant, nil
}
