package emoji

import "testing"

func TestGetEmoji(t *testing.T) {
	defer SetEmojiDisabled(false)

	SetEmojiDisabled(false)
	if got := GetEmoji("conflict"); got != "⚡" {
		t.Errorf("GetEmoji(conflict) = %q, want ⚡", got)
	}

	SetEmojiDisabled(true)
	if !IsEmojiDisabled() {
		t.Fatal("expected emoji to be disabled")
	}
	if got := GetEmoji("conflict"); got != "[CNF]" {
		t.Errorf("GetEmoji(conflict) fallback = %q, want [CNF]", got)
	}
	if got := GetEmoji("nope"); got != "[?]" {
		t.Errorf("GetEmoji(unknown) = %q, want [?]", got)
	}
}
