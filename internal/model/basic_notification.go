package model

import "time"

// Basic notification type constants
const (
	BasicNotificationTypeWeather   = "WEATHER"
	BasicNotificationTypeLunch     = "LUNCH"
	BasicNotificationTypeChecklist = "CHECKLIST"
)

// BasicNotification is a system-provided notification a member can switch on and schedule.
type BasicNotification struct {
	ID          int64     `json:"id" db:"id"`
	MemberID    int64     `json:"member_id" db:"member_id"`
	Type        string    `json:"type" db:"type"`
	IsActivated bool      `json:"is_activated" db:"is_activated"`
	Time        string    `json:"time" db:"time"`
	Day         string    `json:"day" db:"day"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BasicNotificationRequest represents basic notification update parameters
type BasicNotificationRequest struct {
	Type        string `json:"type" binding:"required,oneof=WEATHER LUNCH CHECKLIST"`
	IsActivated *bool  `json:"isActivated" binding:"required"`
	Time        string `json:"time" binding:"required,clock"`
	Day         string `json:"day" binding:"required,weekdays"`
}

type BasicNotificationResponse struct {
	Type        string `json:"type"`
	IsActivated bool   `json:"isActivated"`
	Time        string `json:"time"`
	Day         string `json:"day"`
}

func (n *BasicNotification) ToResponse() *BasicNotificationResponse {
	return &BasicNotificationResponse{
		Type:        n.Type,
		IsActivated: n.IsActivated,
		Time:        n.Time,
		Day:         n.Day,
	}
}
