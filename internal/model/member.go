package model

import "time"

// Member represents an account holder. Notifications reference members by ID only.
type Member struct {
	Base
	Email        string `json:"email" db:"email"`
	Nickname     string `json:"nickname" db:"nickname"`
	ProfileImage string `json:"profile_image" db:"profile_image"`
}

// MemberToken maps the digest of an access token to its member.
type MemberToken struct {
	TokenDigest string     `db:"token_digest"`
	MemberID    int64      `db:"member_id"`
	ExpiresAt   *time.Time `db:"expires_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

// MemberResponse is the public projection of a member.
type MemberResponse struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Nickname     string `json:"nickname"`
	ProfileImage string `json:"profileImage"`
}

func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:           m.ID,
		Email:        m.Email,
		Nickname:     m.Nickname,
		ProfileImage: m.ProfileImage,
	}
}
