package db

import (
	"slices"
	"testing"
)

func TestSongComplete(t *testing.T) {
	full := Song{
		ID:       "track2",
		Title:    "Bad Guy",
		Artists:  "Billie Eilish",
		Album:    "When We All Fall Asleep, Where Do We Go?",
		Year:     2019,
		Genre:    "Pop",
		Audio:    "https://p.scdn.co/mp3-preview/abc",
		ImageURL: "https://i.scdn.co/image/abc",
		LevelID:  2,
	}

	if !full.Complete() {
		t.Error("fully populated song reported incomplete")
	}

	placeholder := Song{ID: "track2", LevelID: 2}
	if placeholder.Complete() {
		t.Error("placeholder row reported complete")
	}

	missingYear := full
	missingYear.Year = 0
	if missingYear.Complete() {
		t.Error("song without a year reported complete")
	}
}

func TestPlayerLevelSets(t *testing.T) {
	p := Player{
		PlayedLevels:    []string{"1", "3_local", "0"},
		CompletedLevels: []string{"1"},
	}

	if !p.HasPlayed("3_local") || p.HasPlayed("2") {
		t.Errorf("HasPlayed misreads %v", p.PlayedLevels)
	}
	if !p.HasCompleted("1") || p.HasCompleted("0") {
		t.Errorf("HasCompleted misreads %v", p.CompletedLevels)
	}
}

func TestLevelSetRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		levels []string
	}{
		{name: "several", levels: []string{"1", "3_local", "0"}},
		{name: "single", levels: []string{"7"}},
		{name: "empty", levels: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitLevels(joinLevels(tt.levels))
			if !slices.Equal(got, tt.levels) {
				t.Errorf("round trip of %v yielded %v", tt.levels, got)
			}
		})
	}
}
