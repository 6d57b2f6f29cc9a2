package domain

import "time"

type GameStatus string

const (
	GameOpen      GameStatus = "OPEN"
	GameClosed    GameStatus = "CLOSED"
	GameScheduled GameStatus = "SCHEDULED"
)

func (s GameStatus) Valid() bool {
	switch s {
	case GameOpen, GameClosed, GameScheduled:
		return true
	}
	return false
}

type GameSetting struct {
	Status    GameStatus `json:"status"`
	StartTime *time.Time `json:"startTime,omitempty"`
}
