package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/model"
)

const backupTimeLayout = "20060102T150405.000000000Z"

// FileStoreConfig configures a FileStore.
type FileStoreConfig struct {
	Path            string
	BackupDir       string
	BackupRetention int
}

// FileStore keeps the leaderboard as a single JSON object on disk.
// Every mutation rewrites the whole file and drops a timestamped copy into
// the backup directory, keeping the newest BackupRetention copies.
// Reads are served from an in-memory mirror.
type FileStore struct {
	mu        sync.Mutex
	path      string
	backupDir string
	retention int
	entries   map[string]*model.Entry
	order     []string
	now       func() time.Time
}

// NewFileStore creates a file-backed store. Call Load before use.
func NewFileStore(cfg FileStoreConfig) *FileStore {
	retention := cfg.BackupRetention
	if retention <= 0 {
		retention = 20
	}
	backupDir := cfg.BackupDir
	if backupDir == "" {
		backupDir = filepath.Join(filepath.Dir(cfg.Path), "backups")
	}
	return &FileStore{
		path:      cfg.Path,
		backupDir: backupDir,
		retention: retention,
		entries:   make(map[string]*model.Entry),
		now:       time.Now,
	}
}

// Name implements LeaderboardStore.
func (s *FileStore) Name() string { return "file" }

// Load reads the primary file into the mirror. A missing or unreadable
// primary is replaced by the newest backup, which is then re-persisted as
// the primary. A missing primary with no backups is a fresh start.
func (s *FileStore) Load(_ context.Context) (map[string]*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, entries, err := readBoard(s.path)
	if err == nil {
		s.replace(order, entries)
		return s.snapshot(), nil
	}

	missing := errors.Is(err, fs.ErrNotExist)
	if !missing {
		log.Warn().Err(err).Str("path", s.path).Msg("Leaderboard file unreadable, trying backup")
	}

	backup, berr := s.latestBackup()
	if berr != nil {
		s.replace(nil, nil)
		if missing && errors.Is(berr, ErrNoBackup) {
			return s.snapshot(), nil
		}
		return s.snapshot(), fmt.Errorf("failed to load leaderboard: %w", errors.Join(err, berr))
	}

	order, entries, rerr := readBoard(backup)
	if rerr != nil {
		s.replace(nil, nil)
		return s.snapshot(), fmt.Errorf("failed to load leaderboard backup %s: %w", backup, rerr)
	}
	s.replace(order, entries)

	log.Info().Str("backup", backup).Int("entries", len(order)).Msg("Leaderboard restored from backup")

	if werr := s.writePrimary(); werr != nil {
		return s.snapshot(), fmt.Errorf("failed to re-persist restored leaderboard: %w", werr)
	}
	return s.snapshot(), nil
}

// Save replaces the whole board. Users already on the board keep their
// position in the tie order; new users are appended in id order.
func (s *FileStore) Save(_ context.Context, entries map[string]*model.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries = withoutNil(entries)
	order := make([]string, 0, len(entries))
	for _, id := range s.order {
		if _, ok := entries[id]; ok {
			order = append(order, id)
		}
	}
	var fresh []string
	for id := range entries {
		if _, ok := s.entries[id]; !ok {
			fresh = append(fresh, id)
		}
	}
	sort.Strings(fresh)
	order = append(order, fresh...)

	s.replace(order, entries)
	return s.persist()
}

// UpsertOne implements LeaderboardStore.
func (s *FileStore) UpsertOne(_ context.Context, entry *model.Entry) error {
	if entry == nil {
		return ErrNilEntry
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.put(entry.Clone())
	return s.persist()
}

// Increment applies the award to the mirror and persists. The mirror keeps
// the update even when the write fails.
func (s *FileStore) Increment(_ context.Context, award model.Award) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[award.UserID]
	if !ok {
		entry = model.NewEntry(award.UserID, award.DisplayName)
		s.put(entry)
	}
	entry.Apply(award)

	if err := s.persist(); err != nil {
		return entry.Clone(), err
	}
	return entry.Clone(), nil
}

// GetByID implements LeaderboardStore.
func (s *FileStore) GetByID(_ context.Context, userID string) (*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[userID]
	if !ok {
		return nil, ErrEntryNotFound
	}
	return e.Clone(), nil
}

// TopN implements LeaderboardStore. Ties keep insertion order.
func (s *FileStore) TopN(_ context.Context, n int) ([]*model.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]*model.Entry, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.entries[id].Clone())
	}
	return rankEntries(list, n), nil
}

// ResetAll implements LeaderboardStore.
func (s *FileStore) ResetAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.replace(nil, nil)
	return s.persist()
}

// Flush rewrites the primary file from the mirror.
func (s *FileStore) Flush(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writePrimary()
}

func (s *FileStore) put(entry *model.Entry) {
	if _, ok := s.entries[entry.UserID]; !ok {
		s.order = append(s.order, entry.UserID)
	}
	s.entries[entry.UserID] = entry
}

func (s *FileStore) replace(order []string, entries map[string]*model.Entry) {
	s.entries = make(map[string]*model.Entry, len(order))
	s.order = make([]string, 0, len(order))
	for _, id := range order {
		e := entries[id].Clone()
		if e == nil {
			continue
		}
		e.UserID = id
		s.entries[id] = e
		s.order = append(s.order, id)
	}
}

func (s *FileStore) snapshot() map[string]*model.Entry {
	out := make(map[string]*model.Entry, len(s.entries))
	for id, e := range s.entries {
		out[id] = e.Clone()
	}
	return out
}

// persist writes the primary and a backup copy. Backup failures are logged
// only; the primary write is what counts.
func (s *FileStore) persist() error {
	if err := s.writePrimary(); err != nil {
		return err
	}
	if err := s.writeBackup(); err != nil {
		log.Warn().Err(err).Str("dir", s.backupDir).Msg("Failed to write leaderboard backup")
	}
	return nil
}

func (s *FileStore) writePrimary() error {
	data, err := encodeBoard(s.order, s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create leaderboard dir: %w", err)
		}
	}
	return writeFileAtomic(s.path, data)
}

func (s *FileStore) writeBackup() error {
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return fmt.Errorf("failed to create backup dir: %w", err)
	}
	data, err := encodeBoard(s.order, s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode leaderboard: %w", err)
	}
	name := s.backupPrefix() + s.now().UTC().Format(backupTimeLayout) + ".json"
	if err := writeFileAtomic(filepath.Join(s.backupDir, name), data); err != nil {
		return err
	}
	return s.pruneBackups()
}

func (s *FileStore) backupPrefix() string {
	base := filepath.Base(s.path)
	return strings.TrimSuffix(base, filepath.Ext(base)) + "_"
}

// backups returns backup file paths, oldest first. The timestamp layout
// sorts lexically.
func (s *FileStore) backups() ([]string, error) {
	dirEntries, err := os.ReadDir(s.backupDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	prefix := s.backupPrefix()
	var names []string
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		name := de.Name()
		if strings.HasPrefix(name, prefix) && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(s.backupDir, name)
	}
	return paths, nil
}

func (s *FileStore) latestBackup() (string, error) {
	paths, err := s.backups()
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", ErrNoBackup
	}
	return paths[len(paths)-1], nil
}

func (s *FileStore) pruneBackups() error {
	paths, err := s.backups()
	if err != nil {
		return err
	}
	if len(paths) <= s.retention {
		return nil
	}
	for _, p := range paths[:len(paths)-s.retention] {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove old backup: %w", err)
		}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}

// encodeBoard writes the mapping as a JSON object whose keys follow order,
// so the tie order survives a reload.
func encodeBoard(order []string, entries map[string]*model.Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, id := range order {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		val, err := json.MarshalIndent(entries[id], "  ", "  ")
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(val)
	}
	if len(order) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func readBoard(path string) ([]string, map[string]*model.Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	return decodeBoard(data)
}

// decodeBoard parses a JSON object of entries, keeping key order.
func decodeBoard(data []byte) ([]string, map[string]*model.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("failed to parse leaderboard: expected object")
	}

	var order []string
	entries := make(map[string]*model.Entry)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse leaderboard key: %w", err)
		}
		id, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("failed to parse leaderboard: non-string key")
		}
		var e model.Entry
		if err := dec.Decode(&e); err != nil {
			return nil, nil, fmt.Errorf("failed to parse entry %s: %w", id, err)
		}
		e.UserID = id
		if e.PointsPerCategory == nil {
			e.PointsPerCategory = map[string]int64{}
		}
		if e.GuessedWords == nil {
			e.GuessedWords = []string{}
		}
		if _, dup := entries[id]; !dup {
			order = append(order, id)
		}
		entries[id] = &e
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("failed to parse leaderboard: %w", err)
	}
	return order, entries, nil
}
