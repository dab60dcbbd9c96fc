package game

import "testing"

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name  string
		title string
		want  string
	}{
		{
			name:  "lowercases",
			title: "Bad Guy",
			want:  "bad guy",
		},
		{
			name:  "strips parenthesized segment",
			title: "HUMBLE. (Explicit)",
			want:  "humble.",
		},
		{
			name:  "strips bracketed segment",
			title: "One More Time [Radio Edit]",
			want:  "one more time",
		},
		{
			name:  "truncates at hyphen",
			title: "Smells Like Teen Spirit - Remastered 2021",
			want:  "smells like teen spirit",
		},
		{
			name:  "drops feat tail",
			title: "Senorita feat. Camila Cabello",
			want:  "senorita",
		},
		{
			name:  "drops ft tail",
			title: "Old Town Road ft. Billy Ray Cyrus",
			want:  "old town road",
		},
		{
			name:  "drops featuring tail",
			title: "Empire State of Mind featuring Alicia Keys",
			want:  "empire state of mind",
		},
		{
			name:  "underscores become spaces",
			title: "bad_guy",
			want:  "bad guy",
		},
		{
			name:  "collapses whitespace",
			title: "  bad   guy  ",
			want:  "bad guy",
		},
		{
			name:  "combined decorations",
			title: "Blinding Lights (Deluxe) - Live feat. Nobody",
			want:  "blinding lights",
		},
		{
			name:  "empty input",
			title: "",
			want:  "",
		},
		{
			name:  "decorations only",
			title: "(Intro)",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeTitle(tt.title)
			if got != tt.want {
				t.Errorf("NormalizeTitle(%q) = %q, want %q", tt.title, got, tt.want)
			}
		})
	}
}

func TestNormalizeTitleIdempotent(t *testing.T) {
	titles := []string{
		"Bad Guy",
		"Smells Like Teen Spirit - Remastered 2021",
		"Senorita feat. Camila Cabello",
		"one_more_time [Radio Edit]",
	}

	for _, title := range titles {
		once := NormalizeTitle(title)
		twice := NormalizeTitle(once)
		if once != twice {
			t.Errorf("NormalizeTitle not idempotent for %q: %q != %q", title, once, twice)
		}
	}
}
