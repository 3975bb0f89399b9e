package notification

// ApprovalPhrase renders the coordinator decision state of a request as the
// phrase embedded in feed messages.
func ApprovalPhrase(approved, checked bool) string {
	switch {
	case !checked:
		return "belum disetujui oleh Koordinator"
	case approved:
		return "telah disetujui oleh Koordinator"
	default:
		return "tidak disetujui oleh Koordinator"
	}
}
