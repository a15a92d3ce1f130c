package classify

import "testing"

func TestProgram(t *testing.T) {
	tests := []struct {
		name     string
		items    string
		activity string
		want     ProgramCategory
	}{
		{"summer wins over party item", "party", "Summer Robotics", ProgramCamps},
		{"summer case-insensitive", "", "SUMMER Makers Week 2", ProgramCamps},
		{"party exact part", "Party", "Birthday Bash", ProgramParties},
		{"party within compound items", "membership, party", "Weekend Event", ProgramParties},
		{"partying is not a party part", "partying", "", ProgramOther},
		{"semester substring in part", "Fall Semester Pass", "LEGO Engineering", ProgramSemester},
		{"drop-in", "Drop-In", "Open Studio", ProgramWorkshops},
		{"drop in with space", "drop in session", "Open Studio", ProgramWorkshops},
		{"dropin joined", "dropin", "", ProgramWorkshops},
		{"single session", "Single Class", "", ProgramWorkshops},
		{"non-summer camp is a workshop", "Camp Day", "February Break", ProgramWorkshops},
		{"pack", "10-Pack", "Private Coaching", ProgramPrivate},
		{"unmatched", "membership", "Robotics Club", ProgramOther},
		{"empty", "", "", ProgramOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Program(tt.items, tt.activity); got != tt.want {
				t.Fatalf("Program(%q, %q) = %q, want %q", tt.items, tt.activity, got, tt.want)
			}
		})
	}
}

// Rule 1 must be checked before rule 2: the priority is observable, not
// an implementation detail.
func TestProgramSummerPrecedesParty(t *testing.T) {
	if got := Program("party", "Summer Robotics"); got != ProgramCamps {
		t.Fatalf("expected Camps for summer activity with party item, got %q", got)
	}
}

func TestSemesterPrecedesDropIn(t *testing.T) {
	if got := Program("semester, drop-in", ""); got != ProgramSemester {
		t.Fatalf("expected Semester to win over drop-in, got %q", got)
	}
}
