package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewFileStore(FileStoreConfig{
		Path:            filepath.Join(dir, "leaderboard.json"),
		BackupDir:       filepath.Join(dir, "backups"),
		BackupRetention: 3,
	})
	// Distinct, increasing backup names.
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return store, dir
}

func sampleBoard() map[string]*model.Entry {
	return map[string]*model.Entry{
		"111": {
			UserID:            "111",
			DisplayName:       "Ali",
			TotalPoints:       3,
			PointsPerCategory: map[string]int64{"huruf": 2, "no": 1},
			GuessedWords:      []string{"seri", "istana", "teka-no-42"},
		},
		"222": {
			UserID:            "222",
			DisplayName:       "Siti",
			TotalPoints:       0,
			PointsPerCategory: map[string]int64{"huruf": 0, "no": 0},
			GuessedWords:      []string{},
		},
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.NoError(t, err)

	board := sampleBoard()
	require.NoError(t, store.Save(ctx, board))

	reloaded := NewFileStore(FileStoreConfig{
		Path:      filepath.Join(dir, "leaderboard.json"),
		BackupDir: filepath.Join(dir, "backups"),
	})
	got, err := reloaded.Load(ctx)
	require.NoError(t, err)

	if diff := cmp.Diff(board, got); diff != "" {
		t.Errorf("reloaded board mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_SaveSkipsNilEntries(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	board := sampleBoard()
	board["333"] = nil
	require.NoError(t, store.Save(ctx, board))

	_, err := store.GetByID(ctx, "333")
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.ErrorIs(t, store.UpsertOne(ctx, nil), ErrNilEntry)

	reloaded := NewFileStore(FileStoreConfig{
		Path:      filepath.Join(dir, "leaderboard.json"),
		BackupDir: filepath.Join(dir, "backups"),
	})
	got, err := reloaded.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBoard(), got); diff != "" {
		t.Errorf("reloaded board mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_GetByID(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	_, err := store.GetByID(ctx, "111")
	assert.ErrorIs(t, err, ErrEntryNotFound)

	_, err = store.Increment(ctx, model.Award{UserID: "111", DisplayName: "Ali", Points: 1, Item: "seri", Category: model.CategoryWord})
	require.NoError(t, err)

	got, err := store.GetByID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.TotalPoints)

	got.TotalPoints = 99
	again, err := store.GetByID(ctx, "111")
	require.NoError(t, err)
	assert.Equal(t, int64(1), again.TotalPoints, "callers get a copy")
}

func TestFileStore_FileFormat(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	_, err := store.Increment(ctx, model.Award{UserID: "111", DisplayName: "Ali", Points: 1, Item: "seri", Category: model.CategoryWord})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "leaderboard.json"))
	require.NoError(t, err)
	for _, key := range []string{`"111"`, `"display_name"`, `"total_points"`, `"points_per_category"`, `"guessed_words"`} {
		assert.Contains(t, string(data), key)
	}
}

func TestFileStore_MissingPrimaryNoBackupIsEmpty(t *testing.T) {
	store, _ := newTestFileStore(t)

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_RecoversFromBackup(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()
	primary := filepath.Join(dir, "leaderboard.json")

	require.NoError(t, store.Save(ctx, sampleBoard()))
	require.NoError(t, os.WriteFile(primary, []byte("{not json"), 0o644))

	recovered, _ := newTestFileStore(t)
	recovered.path = primary
	recovered.backupDir = filepath.Join(dir, "backups")

	got, err := recovered.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(sampleBoard(), got); diff != "" {
		t.Errorf("recovered board mismatch (-want +got):\n%s", diff)
	}

	// The restored board is re-persisted as the primary.
	_, entries, err := readBoard(primary)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestFileStore_CorruptWithoutBackup(t *testing.T) {
	store, dir := newTestFileStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "leaderboard.json"), []byte("garbage"), 0o644))

	got, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrNoBackup)
	assert.Empty(t, got)
}

func TestFileStore_BackupRetention(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := store.Increment(ctx, model.Award{UserID: "111", DisplayName: "Ali", Points: 1, Category: model.CategoryWord})
		require.NoError(t, err)
	}

	paths, err := store.backups()
	require.NoError(t, err)
	assert.Len(t, paths, 3)
	for _, p := range paths {
		assert.True(t, strings.HasPrefix(filepath.Base(p), "leaderboard_"))
	}

	// The newest backup holds the latest state.
	_, entries, err := readBoard(paths[len(paths)-1])
	require.NoError(t, err)
	assert.Equal(t, int64(6), entries["111"].TotalPoints)
}

func TestFileStore_TopNKeepsInsertionOrderOnTies(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	for _, id := range []string{"zed", "amy", "bob"} {
		_, err := store.Increment(ctx, model.Award{UserID: id, DisplayName: id, Points: 1, Category: model.CategoryWord})
		require.NoError(t, err)
	}
	_, err := store.Increment(ctx, model.Award{UserID: "bob", DisplayName: "bob", Points: 1, Category: model.CategoryNumber})
	require.NoError(t, err)

	top, err := store.TopN(ctx, 10)
	require.NoError(t, err)
	ids := []string{top[0].UserID, top[1].UserID, top[2].UserID}
	assert.Equal(t, []string{"bob", "zed", "amy"}, ids)

	// Order survives a reload.
	reloaded := NewFileStore(FileStoreConfig{Path: filepath.Join(dir, "leaderboard.json"), BackupDir: filepath.Join(dir, "backups")})
	_, err = reloaded.Load(ctx)
	require.NoError(t, err)
	top, err = reloaded.TopN(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, "bob", top[0].UserID)
	assert.Equal(t, "zed", top[1].UserID)
	assert.Equal(t, "amy", top[2].UserID)
}

func TestFileStore_ResetAll(t *testing.T) {
	store, _ := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, sampleBoard()))
	require.NoError(t, store.ResetAll(ctx))

	top, err := store.TopN(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, top)

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, loaded)
}

func TestFileStore_IncrementKeepsMirrorOnWriteFailure(t *testing.T) {
	store, dir := newTestFileStore(t)
	ctx := context.Background()

	// A directory where the file should be makes the rename fail.
	store.path = filepath.Join(dir, "blocked")
	require.NoError(t, os.MkdirAll(filepath.Join(store.path, "child"), 0o755))

	entry, err := store.Increment(ctx, model.Award{UserID: "111", DisplayName: "Ali", Points: 1, Category: model.CategoryWord})
	assert.Error(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, int64(1), entry.TotalPoints)

	top, err := store.TopN(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), top[0].TotalPoints)
}

func TestMemoryMeaningStore(t *testing.T) {
	store := NewMemoryMeaningStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "budaya")
	assert.ErrorIs(t, err, ErrMeaningNotFound)

	require.NoError(t, store.Set(ctx, " Budaya ", "Adat resam", "admin"))
	m, err := store.Get(ctx, "budaya")
	require.NoError(t, err)
	assert.Equal(t, "Adat resam", m.Meaning)

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, store.Delete(ctx, "BUDAYA"))
	assert.ErrorIs(t, store.Delete(ctx, "budaya"), ErrMeaningNotFound)
}

func TestDecodeImport(t *testing.T) {
	doc := `{
		"1": {"username": "Ali", "points": 5, "words": ["seri"]},
		"2": {"username": "Siti", "points": 3, "points_huruf": 1, "points_no": 2, "words": []},
		"3": {"display_name": "Abu", "total_points": 9, "points_per_category": {"huruf": 2, "no": 1}, "guessed_words": ["ilmu"]}
	}`

	entries, err := DecodeImport(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, int64(5), entries["1"].TotalPoints)
	assert.Equal(t, int64(5), entries["1"].PointsPerCategory[model.CategoryWord])
	assert.Equal(t, int64(3), entries["2"].TotalPoints)
	assert.Equal(t, int64(2), entries["2"].PointsPerCategory[model.CategoryNumber])
	// Totals are recomputed from subtotals.
	assert.Equal(t, int64(3), entries["3"].TotalPoints)
	assert.Equal(t, "Abu", entries["3"].DisplayName)

	_, err = DecodeImport(strings.NewReader("[]"))
	assert.Error(t, err)
}
