package handlers

import "strings"

// mentionTokens returns the two forms Discord uses to mention a user:
// <@ID> and the legacy nickname form <@!ID>.
func mentionTokens(userID string) []string {
	return []string{"<@" + userID + ">", "<@!" + userID + ">"}
}

// HasMentionPrefix reports whether content starts with a mention of userID.
func HasMentionPrefix(content, userID string) bool {
	if userID == "" {
		return false
	}
	for _, token := range mentionTokens(userID) {
		if strings.HasPrefix(content, token) {
			return true
		}
	}
	return false
}

// StripMention removes every mention of userID from content and trims the
// surrounding whitespace.
func StripMention(content, userID string) string {
	if userID == "" {
		return strings.TrimSpace(content)
	}
	for _, token := range mentionTokens(userID) {
		content = strings.ReplaceAll(content, token, "")
	}
	return strings.TrimSpace(content)
}
