package artifact

import "testing"

func TestKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		key   Key
		valid bool
		str   string
	}{
		{key: Players, valid: true, str: "season/players"},
		{key: TopPerformer("hidden_gems"), valid: true, str: "top_performers/hidden_gems"},
		{key: Key{Group: GroupSeason, Name: "../etc"}, valid: false},
		{key: Key{Group: GroupSeason, Name: " "}, valid: false},
		{key: Key{Name: "players"}, valid: false},
	}

	for _, tc := range cases {
		if got := tc.key.Valid(); got != tc.valid {
			t.Fatalf("%+v: expected valid=%v, got %v", tc.key, tc.valid, got)
		}
		if tc.valid && tc.key.String() != tc.str {
			t.Fatalf("expected %s, got %s", tc.str, tc.key.String())
		}
	}
}
