package handler

import (
	"time"

	"github.com/tomasgx/authbox/internal/domain"
)

// UserDTO is the sanitized JSON projection of a user. The password
// digest has no representation here at all.
type UserDTO struct {
	ID          int64   `json:"id"`
	Username    string  `json:"username"`
	Name        string  `json:"name"`
	Age         *int    `json:"age"`
	Email       string  `json:"email"`
	Study       string  `json:"study"`
	CivilStatus string  `json:"civilStatus"`
	Avatar      string  `json:"avatar"`
	LoginCount  int64   `json:"loginCount"`
	LastLogin   *string `json:"lastLogin"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Name:        u.Name,
		Age:         u.Age,
		Email:       u.Email,
		Study:       u.Study,
		CivilStatus: u.CivilStatus,
		Avatar:      u.Avatar,
		LoginCount:  u.LoginCount,
	}
	if u.LastLogin != nil {
		t := u.LastLogin.Format(time.RFC3339)
		dto.LastLogin = &t
	}
	return dto
}

// StatsDTO is the JSON representation of a user's login statistics.
type StatsDTO struct {
	TotalSessions int64 `json:"totalSessions"`
	DaysActive    int   `json:"daysActive"`
}

func toStatsDTO(s *domain.LoginStats) StatsDTO {
	dto := StatsDTO{TotalSessions: s.TotalSessions}
	if s.FirstLogin != nil {
		dto.DaysActive = int(time.Since(*s.FirstLogin).Hours() / 24)
	}
	return dto
}
