package employee

// ============= Request DTOs =============

// SyncRow is one directory entry pushed by the HR system.
type SyncRow struct {
	NIK      string `json:"nik"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Area     string `json:"area"`
}

// SyncRequest replaces the cached directory. Key authenticates the HR
// system; it is checked against a configured hash, never stored.
type SyncRequest struct {
	Key       string    `json:"key"`
	Employees []SyncRow `json:"employees"`
}

// ============= Response DTOs =============

// EmployeeResponse is a directory entry in API responses.
type EmployeeResponse struct {
	NIK      string `json:"nik"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Area     string `json:"area"`
}

// SyncResponse reports how many rows the sync touched.
type SyncResponse struct {
	Synced int `json:"synced"`
}
