package classify

import "testing"

func TestLocation(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Mamaroneck Studio", LocationMamaroneck},
		{"MAMA Lab", LocationMamaroneck},
		{"NYC - UWS", LocationNYC},
		{"New York City", LocationNYC},
		{"Manhattan (83rd St)", LocationNYC},
		{"Chappaqua", LocationChappaqua},
		{"chappa crossing", LocationChappaqua},
		{"Partner School PS 42", LocationPartner},
		{"Offsite Event", LocationPartner},
		{"", LocationOther},
		{"   ", LocationOther},
		{"Scarsdale Pop-Up", "Scarsdale Pop-Up"},
	}
	for _, tt := range tests {
		if got := Location(tt.in); got != tt.want {
			t.Fatalf("Location(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
