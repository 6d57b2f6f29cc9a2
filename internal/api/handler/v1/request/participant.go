package request

import (
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

const maxPlayersPerImport = 1000

type ParticipantInput struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	Email      string `json:"email,omitempty"`
}

func (p *ParticipantInput) Validate() error {
	p.Name = strings.TrimSpace(p.Name)
	p.Phone = strings.TrimSpace(p.Phone)
	p.Department = strings.TrimSpace(p.Department)
	p.Email = strings.TrimSpace(p.Email)

	return validation.ValidateStruct(
		p,
		validation.Field(&p.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&p.Phone, validation.Required, phoneRule),
		validation.Field(&p.Department, validation.Length(0, 100)),
		validation.Field(&p.Email, is.Email),
	)
}

type AddParticipantsRequest struct {
	Players []ParticipantInput `json:"players"`
}

func (req *AddParticipantsRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Players, validation.Required, validation.Length(1, maxPlayersPerImport)),
	)
	if err != nil {
		return err
	}

	for i := range req.Players {
		if err := req.Players[i].Validate(); err != nil {
			return fmt.Errorf("players[%d]: %w", i, err)
		}
	}

	return nil
}

// UpdateParticipantRequest is also used to edit pending registrations.
type UpdateParticipantRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (req *UpdateParticipantRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Department = strings.TrimSpace(req.Department)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, phoneRule),
		validation.Field(&req.Department, validation.Required, validation.Length(1, 100)),
	)
}

type JoinRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
}

func (req *JoinRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Department = strings.TrimSpace(req.Department)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, phoneRule),
		validation.Field(&req.Department, validation.Length(0, 100)),
	)
}
