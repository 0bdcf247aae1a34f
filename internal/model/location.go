package model

import "time"

// MemberLocation is the last location a member saved for weather lookups.
type MemberLocation struct {
	MemberID  int64     `json:"member_id" db:"member_id"`
	Latitude  float64   `json:"latitude" db:"latitude"`
	Longitude float64   `json:"longitude" db:"longitude"`
	Address   string    `json:"address" db:"address"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// LocationRequest represents location save parameters
type LocationRequest struct {
	Latitude  *float64 `json:"latitude" binding:"required,gte=-90,lte=90"`
	Longitude *float64 `json:"longitude" binding:"required,gte=-180,lte=180"`
	Address   string   `json:"address" binding:"max=255"`
}

type LocationResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address"`
}

func (l *MemberLocation) ToResponse() *LocationResponse {
	return &LocationResponse{
		Latitude:  l.Latitude,
		Longitude: l.Longitude,
		Address:   l.Address,
	}
}
