// jansaathi/services/validation/validate.go
package validation

import (
	"errors"
	"fmt"
	"jansaathi/jansaathi/utils/logging"
	"jansaathi/jansaathi/utils/types"
	"regexp"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// Caps shared by server and client. The client validates before sending so
// a user never burns a request on input the server would reject anyway.
const (
	MaxMessageLength      = 2000
	MaxConversationLength = 50
)

var validRoles = map[string]bool{
	types.RoleUser:      true,
	types.RoleAssistant: true,
	types.RoleSystem:    true,
}

type Validator struct {
	MaxMessageLength      int
	MaxConversationLength int
}

func Default() Validator {
	return Validator{
		MaxMessageLength:      MaxMessageLength,
		MaxConversationLength: MaxConversationLength,
	}
}

// Validate applies the request rules in order and returns the first
// violation. It is pure apart from the injection-scan warning log.
func (v Validator) Validate(messages []types.ChatMessage) error {
	if len(messages) == 0 {
		return errors.New("No messages provided.")
	}
	if len(messages) > v.MaxConversationLength {
		return errors.New("Conversation too long. Please start a new chat.")
	}
	for _, msg := range messages {
		if !validRoles[msg.Role] {
			return errors.New("Invalid message format.")
		}
		// Characters, not bytes: Devanagari and Kannada run 3 bytes per rune.
		if utf8.RuneCountInString(msg.Content) > v.MaxMessageLength {
			return fmt.Errorf("Message too long. Please keep it under %d characters.", v.MaxMessageLength)
		}
	}
	last := messages[len(messages)-1]
	if last.Role != types.RoleUser {
		return errors.New("Last message must be from user")
	}
	if strings.TrimSpace(last.Content) == "" {
		return errors.New("Message cannot be empty.")
	}

	// Monitoring only. Heuristics are too noisy to reject on.
	if matched := ScanInjection(last.Content); len(matched) > 0 && logging.AppLogger != nil {
		logging.AppLogger.Warn("possible prompt injection",
			zap.Strings("patterns", matched),
			zap.Int("content_length", len(last.Content)),
		)
	}
	return nil
}

var injectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(the\s+|your\s+)?system\s+prompt`),
	regexp.MustCompile(`(?i)pretend\s+you\s+are`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+a`),
	regexp.MustCompile(`(?i)<script\b`),
}

// ScanInjection reports which prompt-injection heuristics the content
// matches. Detection never blocks a request.
func ScanInjection(content string) []string {
	var matched []string
	for _, re := range injectionPatterns {
		if re.MatchString(content) {
			matched = append(matched, re.String())
		}
	}
	return matched
}
