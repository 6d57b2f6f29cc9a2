package response

import (
	"time"

	"github.com/yizeng/gab/gin/gorm/secret-santa/internal/domain"
)

const (
	DrawStatusSuccess     = "SUCCESS"
	DrawStatusAlreadyDone = "ALREADY_DONE"
)

type DrawResult struct {
	Name       string `json:"name"`
	Department string `json:"department"`
}

type DrawResponse struct {
	Status string     `json:"status"`
	Result DrawResult `json:"result"`
}

func NewDrawResponse(a domain.Assignment) DrawResponse {
	status := DrawStatusSuccess
	if a.AlreadyAssigned {
		status = DrawStatusAlreadyDone
	}

	return DrawResponse{
		Status: status,
		Result: DrawResult{
			Name:       a.RecipientName,
			Department: a.RecipientDepartment,
		},
	}
}

type GameStatusResponse struct {
	Status    string `json:"status"`
	StartTime string `json:"startTime"`
}

func NewGameStatusResponse(s domain.GameSetting) GameStatusResponse {
	resp := GameStatusResponse{Status: string(s.Status)}
	if s.StartTime != nil {
		resp.StartTime = s.StartTime.UTC().Format(time.RFC3339)
	}

	return resp
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	Token string `json:"token"`
}
