// Package prompt assembles the text sent to the generation backend.
package prompt

import (
	"fmt"
	"strings"
)

// DefaultInstructions is the base instruction block for meeting summaries.
const DefaultInstructions = "You are a corporate meeting assistant. Using the transcript, summarize each " +
	"issue discussed and list decisions and **action items** with owners and " +
	"deadlines. Format with headings and bullet points."

// Role tells the model what kind of payload follows the instructions.
type Role int

const (
	RoleTranscript Role = iota
	RolePartialSummaries
)

// Label returns the framing placed before the payload.
func (r Role) Label() string {
	switch r {
	case RolePartialSummaries:
		return "Partial summaries:"
	default:
		return "Transcript:"
	}
}

func (r Role) String() string {
	switch r {
	case RolePartialSummaries:
		return "partial_summaries"
	default:
		return "transcript"
	}
}

// Meeting holds optional metadata. Empty fields are left out of the prompt.
type Meeting struct {
	Date      string
	Attendees []string
}

// Builder produces the prompt prefix shared by every call of one reduction.
type Builder struct {
	Instructions string
}

// NewBuilder falls back to DefaultInstructions when instructions is blank.
func NewBuilder(instructions string) Builder {
	if strings.TrimSpace(instructions) == "" {
		instructions = DefaultInstructions
	}
	return Builder{Instructions: strings.TrimSpace(instructions)}
}

// Prefix returns instructions, then the date and attendee segments that are set.
func (b Builder) Prefix(m Meeting) string {
	var sb strings.Builder
	sb.WriteString(b.Instructions)

	if date := strings.TrimSpace(m.Date); date != "" {
		fmt.Fprintf(&sb, " Meeting date: %s.", date)
	}

	attendees := make([]string, 0, len(m.Attendees))
	for _, a := range m.Attendees {
		if a = strings.TrimSpace(a); a != "" {
			attendees = append(attendees, a)
		}
	}
	if len(attendees) > 0 {
		fmt.Fprintf(&sb, " Attendees: %s.", strings.Join(attendees, ", "))
	}

	sb.WriteString(" ")
	return sb.String()
}

// Assemble joins prefix, role label and payload into one prompt.
func Assemble(prefix string, role Role, payload string) string {
	return prefix + role.Label() + " " + payload
}
