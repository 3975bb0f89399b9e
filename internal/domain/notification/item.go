package notification

// Priority orders feed items; lower values are shown first.
type Priority int

const (
	// PriorityOvertime: overtime approval state and coordinator overtime
	// requests.
	PriorityOvertime Priority = 1
	// PriorityConfirmation: confirmation approval state and coordinator
	// correction requests.
	PriorityConfirmation Priority = 2
	// PriorityDaily: the employee's own lateness/absence/permit status and
	// coordinator permit requests.
	PriorityDaily Priority = 3
	// PriorityCoordinator: per-employee lateness/absence lines in the
	// coordinator feed.
	PriorityCoordinator Priority = 4
)

// Item is one entry of a notification feed. Items are assembled fresh on
// every request and never persisted.
type Item struct {
	NIK            string  `json:"nik"`
	Name           string  `json:"name"`
	Message        string  `json:"message"`
	Date           string  `json:"date"`
	File           *string `json:"file"`
	ActionEndpoint *string `json:"action_endpoint"`
}
