package model

import "time"

// UserNotification is an alert configured by a member.
type UserNotification struct {
	ID        int64     `json:"id" db:"id"`
	MemberID  int64     `json:"member_id" db:"member_id"`
	Content   string    `json:"content" db:"content"`
	Time      string    `json:"time" db:"time"`
	Day       string    `json:"day" db:"day"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// IsOwnedBy reports whether memberID owns the notification.
func (n *UserNotification) IsOwnedBy(memberID int64) bool {
	return n.MemberID == memberID
}

// UserNotificationRequest represents user notification creation parameters
type UserNotificationRequest struct {
	Content string `json:"content" binding:"required"`
	Time    string `json:"time" binding:"required,clock"`
	Day     string `json:"day" binding:"required,weekdays"`
}

// UserNotificationResponse is the list projection of a user notification.
type UserNotificationResponse struct {
	ID      int64  `json:"id"`
	Content string `json:"content"`
	Time    string `json:"time"`
	Day     string `json:"day"`
}

func (n *UserNotification) ToResponse() *UserNotificationResponse {
	return &UserNotificationResponse{
		ID:      n.ID,
		Content: n.Content,
		Time:    n.Time,
		Day:     n.Day,
	}
}
