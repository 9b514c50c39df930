package gallery

import "testing"

func TestStates(t *testing.T) {
	if len(States) != 50 {
		t.Fatalf("len(States) = %d, want 50", len(States))
	}
	seen := make(map[string]bool, len(States))
	for _, st := range States {
		if len(st.Code) != 2 || st.Name == "" {
			t.Errorf("malformed state %+v", st)
		}
		if seen[st.Code] {
			t.Errorf("duplicate state code %s", st.Code)
		}
		seen[st.Code] = true
	}
}

func TestFindState(t *testing.T) {
	tests := []struct {
		code string
		want string // name, empty for not found
	}{
		{"CA", "California"},
		{"ca", "California"},
		{"Wy", "Wyoming"},
		{"ZZ", ""},
		{"", ""},
	}
	for _, tt := range tests {
		got := FindState(tt.code)
		if tt.want == "" {
			if got != nil {
				t.Errorf("FindState(%q) = %v, want nil", tt.code, got)
			}
			continue
		}
		if got == nil || got.Name != tt.want {
			t.Errorf("FindState(%q) = %v, want %s", tt.code, got, tt.want)
		}
	}
}
