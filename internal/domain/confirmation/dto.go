package confirmation

// ============= Request DTOs =============

// CreateRequest submits a correction request against today's attendance.
// Attachment is the stored file name of the supporting evidence.
type CreateRequest struct {
	NIK         string  `json:"-"`
	Type        Type    `json:"type"`
	Description string  `json:"description"`
	Reason      *string `json:"reason"`
	Attachment  *string `json:"-"`
}

// ============= Response DTOs =============

// ConfirmationResponse is a confirmation in API responses.
type ConfirmationResponse struct {
	ID          string  `json:"id"`
	Type        Type    `json:"type"`
	Description string  `json:"description"`
	Reason      *string `json:"reason"`
	Approved    bool    `json:"approved"`
	Checked     bool    `json:"checked"`
}

// ResolutionResponse is the summary returned after approving or denying.
type ResolutionResponse struct {
	ID       string `json:"id"`
	Approved bool   `json:"approved"`
}
