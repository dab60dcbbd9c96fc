package game

import "testing"

func TestTitlesMatch(t *testing.T) {
	tests := []struct {
		name  string
		guess string
		title string
		want  bool
	}{
		{
			name:  "exact match",
			guess: "bad guy",
			title: "bad guy",
			want:  true,
		},
		{
			name:  "trailing plural within threshold",
			guess: "bad guys",
			title: "bad guy",
			want:  true,
		},
		{
			name:  "single typo within threshold",
			guess: "blinding lighs",
			title: "blinding lights",
			want:  true,
		},
		{
			name:  "different song",
			guess: "good guy",
			title: "bad guy",
			want:  false,
		},
		{
			name:  "unrelated guess",
			guess: "bohemian rhapsody",
			title: "bad guy",
			want:  false,
		},
		{
			name:  "empty guess",
			guess: "",
			title: "bad guy",
			want:  false,
		},
		{
			name:  "both empty",
			guess: "",
			title: "",
			want:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TitlesMatch(tt.guess, tt.title)
			if got != tt.want {
				t.Errorf("TitlesMatch(%q, %q) = %v, want %v", tt.guess, tt.title, got, tt.want)
			}
		})
	}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want float64
	}{
		{name: "identical", a: "bad guy", b: "bad guy", want: 1.0},
		{name: "disjoint", a: "abc", b: "xyz", want: 0.0},
		{name: "one empty", a: "", b: "bad guy", want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimilaritySymmetricRatio(t *testing.T) {
	// 2*M/T with M=7 common runes and T=15 total runes.
	a := "bad guys"
	b := "bad guy"
	want := 2.0 * 7.0 / 15.0

	got := Similarity(a, b)
	if got != want {
		t.Errorf("Similarity(%q, %q) = %v, want %v", a, b, got, want)
	}
	if got < MatchThreshold {
		t.Errorf("Similarity(%q, %q) = %v, below threshold %v", a, b, got, MatchThreshold)
	}
}
