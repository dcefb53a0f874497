package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/montage/internal/document"
	"github.com/roach88/montage/internal/engine"
	"github.com/roach88/montage/internal/project"
	"github.com/roach88/montage/internal/timing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func sampleDoc(src string) *document.Document {
	return &document.Document{
		Version: document.Version,
		Tracks: []document.Track{{Clips: []project.ClipConfig{{
			Asset:  project.Asset{Type: project.AssetVideo, Src: src},
			Start:  timing.Literal(0),
			Length: timing.Auto(),
		}}}},
	}
}

func TestOpen_IsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestSaveLoadProject_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	doc := sampleDoc("hero.mp4")

	require.NoError(t, s.SaveProject(ctx, "teaser", doc))

	loaded, err := s.LoadProject(ctx, "teaser")
	require.NoError(t, err)
	assert.Equal(t, doc, loaded)
}

func TestSaveProject_UpsertsLatest(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveProject(ctx, "teaser", sampleDoc("v1.mp4")))
	require.NoError(t, s.SaveProject(ctx, "teaser", sampleDoc("v2.mp4")))

	loaded, err := s.LoadProject(ctx, "teaser")
	require.NoError(t, err)
	assert.Equal(t, "v2.mp4", loaded.Tracks[0].Clips[0].Asset.Src)

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestLoadProject_Missing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.LoadProject(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProjects_Ordering(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveProject(ctx, "older", sampleDoc("a.mp4")))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, s.SaveProject(ctx, "newer", sampleDoc("b.mp4")))

	list, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "newer", list[0].Name)
	assert.Equal(t, "older", list[1].Name)
	assert.False(t, list[0].UpdatedAt.IsZero())
}

func TestDeleteProject_RemovesJournalToo(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.SaveProject(ctx, "teaser", sampleDoc("a.mp4")))
	j := s.Journal("teaser")
	require.NoError(t, j.Record(ctx, engine.JournalEntry{Seq: 1, Command: "AddClip", Op: "execute", At: time.Now()}))

	require.NoError(t, s.DeleteProject(ctx, "teaser"))

	_, err := s.LoadProject(ctx, "teaser")
	assert.ErrorIs(t, err, ErrNotFound)
	history, err := j.History(ctx)
	require.NoError(t, err)
	assert.Empty(t, history)

	assert.ErrorIs(t, s.DeleteProject(ctx, "teaser"), ErrNotFound)
}

func TestJournal_RecordAndHistory(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	j := s.Journal("teaser")

	at := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	entries := []engine.JournalEntry{
		{Seq: 1, Command: "AddClip", Op: "execute", At: at},
		{Seq: 2, Command: "AddClip", Op: "undo", At: at.Add(time.Second)},
		{Seq: 3, Command: "AddClip", Op: "redo", At: at.Add(2 * time.Second)},
	}
	for _, entry := range entries {
		require.NoError(t, j.Record(ctx, entry))
	}

	history, err := j.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, history)

	last, err := j.LastSeq(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), last)
}

func TestJournal_ScopedByProject(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	at := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)

	require.NoError(t, s.Journal("a").Record(ctx, engine.JournalEntry{Seq: 1, Command: "AddTrack", Op: "execute", At: at}))
	require.NoError(t, s.Journal("b").Record(ctx, engine.JournalEntry{Seq: 1, Command: "DeleteTrack", Op: "execute", At: at}))

	history, err := s.Journal("a").History(ctx)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "AddTrack", history[0].Command)
}

func TestJournal_DuplicateSeqRejected(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	j := s.Journal("teaser")
	at := time.Now()

	require.NoError(t, j.Record(ctx, engine.JournalEntry{Seq: 1, Command: "AddClip", Op: "execute", At: at}))
	assert.Error(t, j.Record(ctx, engine.JournalEntry{Seq: 1, Command: "AddClip", Op: "execute", At: at}))
}

func TestJournal_LastSeqEmpty(t *testing.T) {
	s := openTestStore(t)
	last, err := s.Journal("empty").LastSeq(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), last)
}
