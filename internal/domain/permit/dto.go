package permit

// ============= Request DTOs =============

// CreateRequest submits a new permit request. Attachment is the stored file
// name of the supporting document, uploaded before the service is called.
type CreateRequest struct {
	NIK        string  `json:"-"`
	Reason     string  `json:"reason"`
	StartDate  string  `json:"start_date"`
	Duration   int     `json:"duration"`
	Attachment *string `json:"-"`
}

// ============= Response DTOs =============

// PermitResponse is a permit in API responses.
type PermitResponse struct {
	ID        string  `json:"id"`
	Reason    string  `json:"reason"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	Duration  int     `json:"duration"`
	Approved  bool    `json:"approved"`
	Checked   bool    `json:"checked"`
	File      *string `json:"file"`
}
