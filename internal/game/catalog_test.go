package game

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/db"
)

// fakeSongStore is an in-memory SongStore keyed by level.
type fakeSongStore struct {
	local   map[int]*db.Song
	spotify map[int]*db.Song

	upserts      []*db.Song
	dailyDeletes int
	dailyInserts []string
}

func newFakeSongStore() *fakeSongStore {
	return &fakeSongStore{
		local:   make(map[int]*db.Song),
		spotify: make(map[int]*db.Song),
	}
}

func (s *fakeSongStore) LocalByLevel(_ context.Context, level int) (*db.Song, error) {
	song, ok := s.local[level]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *song
	return &copied, nil
}

func (s *fakeSongStore) SpotifyByLevel(_ context.Context, level int) (*db.Song, error) {
	song, ok := s.spotify[level]
	if !ok {
		return nil, db.ErrNotFound
	}
	copied := *song
	return &copied, nil
}

func (s *fakeSongStore) TitleByLevel(_ context.Context, level int) (string, error) {
	song, ok := s.spotify[level]
	if !ok || song.Title == "" {
		return "", db.ErrNotFound
	}
	return song.Title, nil
}

func (s *fakeSongStore) UpsertSpotify(_ context.Context, song *db.Song) error {
	copied := *song
	s.upserts = append(s.upserts, &copied)
	s.spotify[song.LevelID] = &copied
	return nil
}

func (s *fakeSongStore) DeleteDaily(_ context.Context) error {
	s.dailyDeletes++
	delete(s.spotify, DailyLevel)
	return nil
}

func (s *fakeSongStore) InsertDailyPlaceholder(_ context.Context, trackID string) error {
	s.dailyInserts = append(s.dailyInserts, trackID)
	s.spotify[DailyLevel] = &db.Song{ID: trackID, LevelID: DailyLevel}
	return nil
}

// fakeTokenSource returns a fixed token, or err when set.
type fakeTokenSource struct {
	token string
	err   error
}

func (s *fakeTokenSource) SpotifyAccessToken(context.Context, string) (string, error) {
	return s.token, s.err
}

// fakeFetcher returns a fixed TrackInfo and counts calls.
type fakeFetcher struct {
	info  *TrackInfo
	err   error
	calls int
}

func (f *fakeFetcher) TrackInfo(context.Context, string, string) (*TrackInfo, error) {
	f.calls++
	return f.info, f.err
}

func completeSong(id string, level int) *db.Song {
	return &db.Song{
		ID:       id,
		Title:    "Bad Guy",
		Artists:  "Billie Eilish",
		Album:    "When We All Fall Asleep, Where Do We Go?",
		Year:     2019,
		Genre:    "Pop",
		Audio:    "https://p.scdn.co/mp3-preview/abc",
		ImageURL: "https://i.scdn.co/image/abc",
		LevelID:  level,
	}
}

func TestResolveLevelSongLocal(t *testing.T) {
	store := newFakeSongStore()
	store.local[3] = completeSong("3", 3)

	r := NewResolver(store, &fakeTokenSource{}, &fakeFetcher{}, zerolog.Nop())

	song, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceLocal, Index: 3}, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Title != "Bad Guy" {
		t.Errorf("got title %q, want %q", song.Title, "Bad Guy")
	}
}

func TestResolveLevelSongLocalNotFound(t *testing.T) {
	r := NewResolver(newFakeSongStore(), &fakeTokenSource{}, &fakeFetcher{}, zerolog.Nop())

	_, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceLocal, Index: 99}, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

func TestResolveLevelSongGuestRejected(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = completeSong("track2", 2)

	r := NewResolver(store, &fakeTokenSource{}, &fakeFetcher{}, zerolog.Nop())

	_, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
}

func TestResolveLevelSongCacheHit(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = completeSong("track2", 2)
	fetcher := &fakeFetcher{}

	r := NewResolver(store, &fakeTokenSource{token: "tok"}, fetcher, zerolog.Nop())

	song, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if song.Title != "Bad Guy" {
		t.Errorf("got title %q, want %q", song.Title, "Bad Guy")
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times on cache hit, want 0", fetcher.calls)
	}
}

func TestResolveLevelSongCacheFill(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = &db.Song{ID: "track2", LevelID: 2}
	fetcher := &fakeFetcher{info: &TrackInfo{
		Title:      "Bad Guy",
		Artists:    "Billie Eilish",
		Album:      "When We All Fall Asleep, Where Do We Go?",
		Year:       2019,
		Genre:      "Pop",
		PreviewURL: "https://p.scdn.co/mp3-preview/abc",
		ImageURL:   "https://i.scdn.co/image/abc",
	}}

	r := NewResolver(store, &fakeTokenSource{token: "tok"}, fetcher, zerolog.Nop())

	song, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !song.Complete() {
		t.Errorf("cache-filled song is incomplete: %+v", song)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times, want 1", fetcher.calls)
	}
	if len(store.upserts) != 1 {
		t.Fatalf("got %d upserts, want 1", len(store.upserts))
	}
	if store.upserts[0].LevelID != 2 {
		t.Errorf("cached song bound to level %d, want 2", store.upserts[0].LevelID)
	}

	// Second resolve is served from the cache.
	if _, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "alice"); err != nil {
		t.Fatalf("unexpected error on second resolve: %v", err)
	}
	if fetcher.calls != 1 {
		t.Errorf("fetcher called %d times after second resolve, want 1", fetcher.calls)
	}
}

func TestResolveLevelSongNoToken(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = &db.Song{ID: "track2", LevelID: 2}

	r := NewResolver(store, &fakeTokenSource{err: db.ErrNoSpotifyToken}, &fakeFetcher{}, zerolog.Nop())

	_, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "alice")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("error = %v, want ErrForbidden", err)
	}
}

func TestResolveLevelSongFetchFailure(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = &db.Song{ID: "track2", LevelID: 2}
	fetcher := &fakeFetcher{err: errors.New("spotify down")}

	r := NewResolver(store, &fakeTokenSource{token: "tok"}, fetcher, zerolog.Nop())

	_, err := r.ResolveLevelSong(context.Background(), LevelRef{Source: SourceSpotify, Index: 2}, "alice")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
	if len(store.upserts) != 0 {
		t.Errorf("got %d upserts after failed fetch, want 0", len(store.upserts))
	}
}

func TestLevelTitleNeverFills(t *testing.T) {
	store := newFakeSongStore()
	store.spotify[2] = &db.Song{ID: "track2", LevelID: 2}
	fetcher := &fakeFetcher{info: &TrackInfo{Title: "Bad Guy"}}

	r := NewResolver(store, &fakeTokenSource{token: "tok"}, fetcher, zerolog.Nop())

	_, err := r.LevelTitle(context.Background(), LevelRef{Source: SourceSpotify, Index: 2})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound for placeholder row", err)
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times by title lookup, want 0", fetcher.calls)
	}
}

func TestLevelTitleLocal(t *testing.T) {
	store := newFakeSongStore()
	store.local[3] = completeSong("3", 3)

	r := NewResolver(store, &fakeTokenSource{}, &fakeFetcher{}, zerolog.Nop())

	title, err := r.LevelTitle(context.Background(), LevelRef{Source: SourceLocal, Index: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if title != "Bad Guy" {
		t.Errorf("got title %q, want %q", title, "Bad Guy")
	}
}
