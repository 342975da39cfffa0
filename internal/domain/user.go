package domain

import "time"

type User struct {
	ID           int32     `json:"id"`
	OrgID        int32     `json:"org_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedOn    time.Time `json:"created_on"`
}
