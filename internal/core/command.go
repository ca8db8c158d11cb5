package core

import "strings"

// Outcome is what a command handler tells the session to do next. Ending a
// session is an explicit value, not an exception.
type Outcome int

const (
	// Continue keeps the session running.
	Continue Outcome = iota
	// EndSession asks the owning session to close and run logout cleanup.
	EndSession
)

// handlerFunc processes one command with its trimmed remainder.
type handlerFunc func(s *Session, arg string) Outcome

// parseFrame splits a frame into its command keyword and trimmed remainder.
// ok is false for whitespace-only frames, which are silently ignored.
func parseFrame(frame []byte) (cmd, arg string, ok bool) {
	line := string(frame)
	if strings.TrimSpace(line) == "" {
		return "", "", false
	}
	cmd, rest, _ := strings.Cut(line, " ")
	return cmd, strings.TrimSpace(rest), true
}
