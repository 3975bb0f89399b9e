package notification

import (
	"sort"
	"time"
)

// entry pairs a finished item with the ordering fields that never leave the
// builder.
type entry struct {
	item     Item
	priority Priority
	at       time.Time
}

// Builder accumulates feed items. Setters fill a draft; Push snapshots the
// draft into the list and clears the per-message fields while the subject
// identity and priority carry over to the next message.
type Builder struct {
	draft entry
	items []entry
}

// NewBuilder returns a builder whose draft starts at PriorityOvertime.
func NewBuilder() *Builder {
	return &Builder{draft: entry{priority: PriorityOvertime}}
}

func (b *Builder) NIK(nik string) *Builder {
	b.draft.item.NIK = nik
	return b
}

func (b *Builder) Name(name string) *Builder {
	b.draft.item.Name = name
	return b
}

func (b *Builder) Message(message string) *Builder {
	b.draft.item.Message = message
	return b
}

// Date sets the display string shown to the user.
func (b *Builder) Date(date string) *Builder {
	b.draft.item.Date = date
	return b
}

// At sets the raw instant used only for ordering inside a priority group.
func (b *Builder) At(t time.Time) *Builder {
	b.draft.at = t
	return b
}

func (b *Builder) File(file string) *Builder {
	b.draft.item.File = &file
	return b
}

func (b *Builder) Action(endpoint string) *Builder {
	b.draft.item.ActionEndpoint = &endpoint
	return b
}

func (b *Builder) Priority(p Priority) *Builder {
	b.draft.priority = p
	return b
}

// Push snapshots the draft into the accumulated list. Message, date, file
// and action link reset; NIK, name and priority persist for the next push.
func (b *Builder) Push() *Builder {
	b.items = append(b.items, b.draft)
	b.draft.item.Message = ""
	b.draft.item.Date = ""
	b.draft.item.File = nil
	b.draft.item.ActionEndpoint = nil
	return b
}

// Items returns the accumulated items sorted by priority ascending, then by
// raw instant descending. Calling it repeatedly yields the same result.
func (b *Builder) Items() []Item {
	sorted := make([]entry, len(b.items))
	copy(sorted, b.items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].priority != sorted[j].priority {
			return sorted[i].priority < sorted[j].priority
		}
		return sorted[i].at.After(sorted[j].at)
	})

	out := make([]Item, len(sorted))
	for i, e := range sorted {
		out[i] = e.item
	}
	return out
}
