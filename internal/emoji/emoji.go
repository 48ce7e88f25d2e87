package emoji

// emojiMap holds [emoji, fallback] pairs
var emojiMap = map[string][2]string{
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"statistics": {"📊", "[STATS]"},
	"table":      {"📋", "[TBL]"},
	"trace":      {"🧭", "[TRC]"},
	"diagram":    {"🖼️", "[IMG]"},
	"conflict":   {"⚡", "[CNF]"},
	"grammar":    {"📝", "[GRM]"},
	"accepted":   {"🟢", "[ACC]"},
	"rejected":   {"🔴", "[REJ]"},
	"rocket":     {"🚀", "[RUN]"},
	"watch":      {"👀", "[WATCH]"},
	"save":       {"💾", "[SAVE]"},
	"health":     {"💓", "[HLTH]"},
	"help":       {"❓", "[?]"},
	"door":       {"🚪", "[EXIT]"},
	"number":     {"🔢", "[#]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}
