package lineparser

import (
	"reflect"
	"testing"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"plain fields", "a,b,c", []string{"a", "b", "c"}},
		{"trims whitespace", " a , b ,c ", []string{"a", "b", "c"}},
		{"quoted delimiter is literal", `x,"a,b",y`, []string{"x", "a,b", "y"}},
		{"quotes consumed", `"hello"`, []string{"hello"}},
		{"empty middle field kept", "a,,c", []string{"a", "", "c"}},
		{"empty trailing field dropped", "a,b,", []string{"a", "b"}},
		{"trailing field without delimiter", "a,b", []string{"a", "b"}},
		{"quoted field spanning several delimiters", `"1,2,3",4`, []string{"1,2,3", "4"}},
		{"empty line", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Split(tt.line, ',')
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Split(%q) = %#v, want %#v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitAlternateDelimiter(t *testing.T) {
	got := Split("a\tb\tc", '\t')
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Split tab = %#v, want %#v", got, want)
	}
}

// Every field count is preserved for unquoted input: N-1 delimiters
// yield N fields (with a non-empty tail).
func TestSplitFieldCount(t *testing.T) {
	lines := map[string]int{
		"a":           1,
		"a,b":         2,
		"a,b,c,d,e,f": 6,
	}
	for line, want := range lines {
		if got := len(Split(line, ',')); got != want {
			t.Fatalf("Split(%q): got %d fields, want %d", line, got, want)
		}
	}
}
