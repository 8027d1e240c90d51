package logging

import (
	"fmt"
	"io"
	"strings"
)

// Logger is a tiny opt-in logger used across internal packages.
// When Writer is nil, logging is disabled.
//
// The output format is:
//
//	<ColoredPrefix> contribution=<id> <formattedMessage>\n
//
// where <id> is trimmed and defaults to "(unknown)".
type Logger struct {
	Writer io.Writer

	PrefixText  string
	PrefixColor string

	// OmitContribution controls whether the contribution ID field is written.
	// When false (default), output includes: "contribution=<id>".
	OmitContribution bool
}

func (l *Logger) SetWriter(w io.Writer) { l.Writer = w }

func (l *Logger) Enabled() bool { return l != nil && l.Writer != nil }

func (l *Logger) Logf(contributionID string, format string, args ...any) {
	if l == nil || l.Writer == nil {
		return
	}
	prefix := l.PrefixText
	if prefix == "" {
		prefix = "Log:"
	}
	if l.PrefixColor != "" {
		prefix = Color(prefix, l.PrefixColor)
	}
	msg := fmt.Sprintf(format, args...)
	if l.OmitContribution {
		fmt.Fprintf(l.Writer, "%s %s\n", prefix, msg)
		return
	}

	c := strings.TrimSpace(contributionID)
	if c == "" {
		c = "(unknown)"
	}
	fmt.Fprintf(l.Writer, "%s contribution=%s %s\n", prefix, c, msg)
}
