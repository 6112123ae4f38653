package holiday

import "time"

// Holiday is one public holiday on a tenant's calendar. Calendar CRUD is
// owned by an external collaborator; this core only reads it.
type Holiday struct {
	ID        string
	CompanyID string
	Name      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
