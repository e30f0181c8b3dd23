package domain

import "strings"

// TriggerContext is the read-only bot identity fixed at startup: the display
// name used for group @mentions and the keyword that must prefix a message.
// An empty keyword means the bot is always triggered in private chat.
type TriggerContext struct {
	BotName string
	Keyword string
}

// IsTriggered reports whether the text addresses the bot in the given mode.
func (tc TriggerContext) IsTriggered(text string, isPrivate bool) bool {
	triggered, _ := tc.MatchPrefix(text, isPrivate)
	return triggered
}

// MatchPrefix reports whether the text addresses the bot and, if so, the
// length in runes of the addressing prefix that Clean must strip. Keeping the
// two in one place prevents detection and stripping from ever disagreeing on
// the prefix length.
//
// Private mode: the text must start with the keyword (empty keyword always
// matches, with a zero-length prefix).
//
// Group mode: the text must start with "@<BotName>", then exactly one
// separator rune, then the keyword. Transports render the rune between the
// mention and the rest of the text inconsistently (space, non-breaking space),
// so it is skipped without being inspected.
func (tc TriggerContext) MatchPrefix(text string, isPrivate bool) (bool, int) {
	if isPrivate {
		if tc.Keyword == "" {
			return true, 0
		}
		if strings.HasPrefix(text, tc.Keyword) {
			return true, len([]rune(tc.Keyword))
		}
		return false, 0
	}

	mention := "@" + tc.BotName
	if !strings.HasPrefix(text, mention) {
		return false, 0
	}
	rest := []rune(strings.TrimPrefix(text, mention))
	if len(rest) < 1 {
		return false, 0
	}
	if !strings.HasPrefix(string(rest[1:]), tc.Keyword) {
		return false, 0
	}
	return true, len([]rune(mention)) + 1 + len([]rune(tc.Keyword))
}

// quoteSeparator marks quoted/replied-to content in a forwarded message.
const quoteSeparator = "- - - - - - - - - - - - - - -"

// Clean strips quoting artifacts and the addressing prefix from raw message
// text. When the text contains the quote separator, only the content after the
// last occurrence is kept. The prefix strip uses the length reported by
// MatchPrefix; callers are expected to have checked IsTriggered first, so a
// non-matching text is returned with only the quote handling applied.
func (tc TriggerContext) Clean(rawText string, isPrivate bool) string {
	text := rawText
	if idx := strings.LastIndex(text, quoteSeparator); idx >= 0 {
		text = text[idx+len(quoteSeparator):]
	}

	_, prefixLen := tc.MatchPrefix(text, isPrivate)
	runes := []rune(text)
	if prefixLen > len(runes) {
		prefixLen = len(runes)
	}
	return string(runes[prefixLen:])
}
