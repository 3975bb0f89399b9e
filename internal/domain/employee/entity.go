package employee

import "time"

// Employee is a cached row from the external HR directory. The cache is
// refreshed by the sync endpoint; this service never writes to the HR
// system.
type Employee struct {
	NIK       string
	Name      string
	Position  string
	Area      string
	UpdatedAt time.Time
}
