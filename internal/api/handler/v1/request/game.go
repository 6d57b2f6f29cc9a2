package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

type GameStatusRequest struct {
	Status    string `json:"status"`
	StartTime string `json:"startTime,omitempty"`
}

func (req *GameStatusRequest) Validate() error {
	startTimeRules := []validation.Rule{validation.Date(time.RFC3339)}
	if req.Status == string(domain.GameScheduled) {
		startTimeRules = append(startTimeRules, validation.Required)
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required, validation.In(
			string(domain.GameOpen),
			string(domain.GameClosed),
			string(domain.GameScheduled),
		)),
		validation.Field(&req.StartTime, startTimeRules...),
	)
}

// Setting assumes Validate has passed.
func (req *GameStatusRequest) Setting() domain.GameSetting {
	setting := domain.GameSetting{Status: domain.GameStatus(req.Status)}
	if req.StartTime != "" {
		if t, err := time.Parse(time.RFC3339, req.StartTime); err == nil {
			setting.StartTime = &t
		}
	}

	return setting
}
