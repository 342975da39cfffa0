package domain

import "time"

// Organization is the tenant boundary; every other entity carries an OrgID.
type Organization struct {
	ID        int32     `json:"id"`
	Name      string    `json:"name"`
	CreatedOn time.Time `json:"created_on"`
}
