package model

import "testing"

func TestTruncateString(t *testing.T) {
	cases := []struct {
		name      string
		input     string
		maxLength int
		want      string
	}{
		{"shorter than limit", "abc", 10, "abc"},
		{"equal to limit", "abcde", 5, "abcde"},
		{"longer than limit", "abcdefgh", 5, "abcde"},
		{"empty string", "", 5, ""},
		{"zero limit", "abc", 0, ""},
		{"multibyte kept whole", "sửa lỗi hiển thị", 7, "sửa lỗi"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TruncateString(tc.input, tc.maxLength); got != tc.want {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tc.input, tc.maxLength, got, tc.want)
			}
		})
	}
}

func TestParentHashes(t *testing.T) {
	cases := []struct {
		name    string
		parents string
		want    int
	}{
		{"no parents", "", 0},
		{"single parent", "abc123", 1},
		{"merge commit", "abc123,def456", 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := &Commit{Parents: tc.parents}
			if got := c.ParentHashes(); len(got) != tc.want {
				t.Errorf("ParentHashes() = %v, want %d hashes", got, tc.want)
			}
		})
	}
}

func TestJoinParentHashes(t *testing.T) {
	if got := JoinParentHashes([]string{"a", "b"}); got != "a,b" {
		t.Errorf("JoinParentHashes = %q, want %q", got, "a,b")
	}
	if got := JoinParentHashes(nil); got != "" {
		t.Errorf("JoinParentHashes(nil) = %q, want empty", got)
	}
}
