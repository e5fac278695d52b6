package prompt

import "testing"

func TestPrefix(t *testing.T) {
	b := NewBuilder("Summarize.")

	tests := []struct {
		name    string
		meeting Meeting
		want    string
	}{
		{"no metadata", Meeting{}, "Summarize. "},
		{"date only", Meeting{Date: "2024-05-01"}, "Summarize. Meeting date: 2024-05-01. "},
		{"attendees only", Meeting{Attendees: []string{"Asha", " ", "Ravi"}}, "Summarize. Attendees: Asha, Ravi. "},
		{"both", Meeting{Date: "Monday", Attendees: []string{"Asha"}}, "Summarize. Meeting date: Monday. Attendees: Asha. "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Prefix(tt.meeting); got != tt.want {
				t.Errorf("Prefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAssemble(t *testing.T) {
	tests := []struct {
		role Role
		want string
	}{
		{RoleTranscript, "P: Transcript: body"},
		{RolePartialSummaries, "P: Partial summaries: body"},
	}

	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := Assemble("P: ", tt.role, "body"); got != tt.want {
				t.Errorf("Assemble() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewBuilderDefault(t *testing.T) {
	if got := NewBuilder("   ").Instructions; got != DefaultInstructions {
		t.Errorf("Instructions = %q, want default", got)
	}
}
