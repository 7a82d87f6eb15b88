package handlers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edgard/relaybot/internal/bot/handlers"
)

func TestHasMentionPrefix(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		userID  string
		want    bool
	}{
		{"<@999> hi", "999", true},
		{"<@!999> hi", "999", true},
		{"<@999>", "999", true},
		{" <@999> hi", "999", false},
		{"hi <@999>", "999", false},
		{"<@9999> hi", "999", false},
		{"<@999> hi", "", false},
		{"", "999", false},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, handlers.HasMentionPrefix(tt.content, tt.userID))
		})
	}
}

func TestStripMention(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    string
	}{
		{"<@999> hello", "hello"},
		{"<@!999>hello", "hello"},
		{"<@999> compare <@999> and <@!999>", "compare  and"},
		{"<@999> ask <@123>", "ask <@123>"},
		{"<@999>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, handlers.StripMention(tt.content, "999"))
		})
	}
}
