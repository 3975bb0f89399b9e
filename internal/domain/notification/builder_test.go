package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderOrdering(t *testing.T) {
	t.Parallel()

	base := time.Date(2024, 5, 13, 8, 0, 0, 0, time.UTC)
	b := NewBuilder().NIK("1001").Name("Budi")

	// Pushed out of order on purpose.
	b.Priority(PriorityDaily).Message("daily").At(base).Push()
	b.Priority(PriorityOvertime).Message("overtime old").At(base.Add(-time.Hour)).Push()
	b.Priority(PriorityConfirmation).Message("conf new").At(base.Add(2 * time.Hour)).Push()
	b.Priority(PriorityConfirmation).Message("conf old").At(base.Add(time.Hour)).Push()
	b.Priority(PriorityOvertime).Message("overtime new").At(base).Push()

	items := b.Items()
	require.Len(t, items, 5)

	got := make([]string, len(items))
	for i, item := range items {
		got[i] = item.Message
	}
	assert.Equal(t, []string{"overtime new", "overtime old", "conf new", "conf old", "daily"}, got)
}

func TestBuilderPushClearsMessageFields(t *testing.T) {
	t.Parallel()

	b := NewBuilder().
		NIK("1001").Name("Budi").
		Priority(PriorityConfirmation).
		Message("first").Date("07:20").
		File("https://files.local/a.jpg").
		Action("/api/v1/confirmations/c1/approval").
		Push()

	b.Message("second").Push()

	items := b.Items()
	require.Len(t, items, 2)

	first, second := items[0], items[1]
	assert.Equal(t, "first", first.Message)
	require.NotNil(t, first.File)
	require.NotNil(t, first.ActionEndpoint)

	// Identity and priority persisted, message fields did not.
	assert.Equal(t, "1001", second.NIK)
	assert.Equal(t, "Budi", second.Name)
	assert.Equal(t, "second", second.Message)
	assert.Empty(t, second.Date)
	assert.Nil(t, second.File)
	assert.Nil(t, second.ActionEndpoint)
}

func TestBuilderItemsIdempotent(t *testing.T) {
	t.Parallel()

	b := NewBuilder().NIK("1001").Name("Budi")
	b.Priority(PriorityDaily).Message("a").At(time.Unix(100, 0)).Push()
	b.Priority(PriorityOvertime).Message("b").At(time.Unix(200, 0)).Push()

	first := b.Items()
	second := b.Items()
	assert.Equal(t, first, second)
}

func TestBuilderDefaultPriority(t *testing.T) {
	t.Parallel()

	b := NewBuilder().NIK("1001").Message("x").Push()
	b.Priority(PriorityCoordinator).Message("y").Push()

	items := b.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "x", items[0].Message)
	assert.Equal(t, "y", items[1].Message)
}

func TestApprovalPhrase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "belum disetujui oleh Koordinator", ApprovalPhrase(false, false))
	assert.Equal(t, "belum disetujui oleh Koordinator", ApprovalPhrase(true, false))
	assert.Equal(t, "telah disetujui oleh Koordinator", ApprovalPhrase(true, true))
	assert.Equal(t, "tidak disetujui oleh Koordinator", ApprovalPhrase(false, true))
}
