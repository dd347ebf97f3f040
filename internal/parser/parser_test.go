package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wsargent/toodledo/internal/domain"
)

func TestFolderToken(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Errands", Folder("*Errands pick up dry cleaning"))
	assert.Equal(t, "House Work", Folder("mow the lawn *[House Work]"))
	assert.Empty(t, Folder("no folder here"))
	assert.Empty(t, Folder("star at end *"))
}

func TestContextAndGoalTokens(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Home", Context("@Home water the plants"))
	assert.Equal(t, "On The Road", Context("buy fuel @[On The Road]"))
	assert.Empty(t, Context("plain text"))

	assert.Equal(t, "Fitness", Goal("run 5k $Fitness"))
	assert.Equal(t, "Inbox Zero", Goal("$[Inbox Zero] archive mail"))
	assert.Empty(t, Goal("plain text"))
}

func TestPriorityToken(t *testing.T) {
	t.Parallel()

	priority, ok := Priority("!top call the bank")
	assert.True(t, ok)
	assert.Equal(t, domain.PriorityTop, priority)

	priority, ok = Priority("laundry !LOW")
	assert.True(t, ok)
	assert.Equal(t, domain.PriorityLow, priority)

	_, ok = Priority("nothing urgent")
	assert.False(t, ok)

	_, ok = Priority("!sideways")
	assert.False(t, ok)
}

func TestRemainderStripsAllTokens(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		in   string
		want string
	}{
		{"*Errands @[On The Road] $Fitness !high buy running shoes", "buy running shoes"},
		{"buy milk", "buy milk"},
		{"*Work finish the report @Office", "finish the report"},
		{"  padded   *Inbox  ", "padded"},
		// Only the first token of each kind is stripped.
		{"*A keep *B", "keep *B"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Remainder(tc.in), tc.in)
	}
}
