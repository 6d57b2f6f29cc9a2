package request

import (
	"errors"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

var errMissingPhone = errors.New("phone: cannot be blank")

type DrawRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Department string `json:"department"`
	PIN        string `json:"pin,omitempty"`
}

func (req *DrawRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.Department = strings.TrimSpace(req.Department)

	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, phoneRule),
		validation.Field(&req.Department, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.PIN, pinRule),
	)
	if err != nil {
		return err
	}

	if req.PIN == "" && req.Phone == "" {
		return errMissingPhone
	}

	return nil
}

type SetPINRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	PIN   string `json:"pin"`
}

func (req *SetPINRequest) Validate() error {
	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.PIN = strings.TrimSpace(req.PIN)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Phone, validation.Required, phoneRule),
		validation.Field(&req.PIN, validation.Required, pinRule),
	)
}
