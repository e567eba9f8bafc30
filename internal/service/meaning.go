package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuizKmz/discord-bot-app/internal/metrics"
	"github.com/MuizKmz/discord-bot-app/internal/repository"
	"github.com/MuizKmz/discord-bot-app/internal/words"
)

// FallbackMeaning is shown when no source knows the word.
const FallbackMeaning = "Perkataan tradisional Melayu"

// Meaning source names, used in logs and metrics.
const (
	SourceAdmin    = "admin"
	SourceBuiltin  = "builtin"
	SourceKateglo  = "kateglo"
	SourceFallback = "fallback"
)

// ErrNoMeaning is returned by a MeaningSource that does not know a word.
var ErrNoMeaning = errors.New("no meaning found")

// ErrEmptyMeaning rejects a blank word or meaning on Set.
var ErrEmptyMeaning = errors.New("word and meaning are required")

// MeaningSource is one link in the lookup chain.
type MeaningSource interface {
	Name() string
	Lookup(ctx context.Context, word string) (string, error)
}

// Meaning is a resolved definition and the source that answered.
type Meaning struct {
	Word   string
	Text   string
	Source string
}

// MeaningService resolves word meanings through an ordered chain of
// sources and manages admin-set meanings.
type MeaningService struct {
	store   repository.MeaningStore
	chain   []MeaningSource
	metrics *metrics.Metrics
}

// NewMeaningService creates a MeaningService. The admin store is always
// consulted first, then sources in the given order.
func NewMeaningService(store repository.MeaningStore, m *metrics.Metrics, sources ...MeaningSource) *MeaningService {
	chain := make([]MeaningSource, 0, len(sources)+1)
	if store != nil {
		chain = append(chain, &StoreSource{store: store})
	}
	chain = append(chain, sources...)
	return &MeaningService{store: store, chain: chain, metrics: m}
}

// Lookup walks the chain and returns the first hit. Source failures are
// logged and treated as misses, so Lookup always produces a meaning.
func (s *MeaningService) Lookup(ctx context.Context, word string) Meaning {
	word = words.Normalize(word)
	for _, src := range s.chain {
		text, err := src.Lookup(ctx, word)
		if err == nil && strings.TrimSpace(text) != "" {
			s.count(src.Name())
			return Meaning{Word: word, Text: text, Source: src.Name()}
		}
		if err != nil && !errors.Is(err, ErrNoMeaning) {
			log.Warn().Err(err).Str("source", src.Name()).Str("word", word).Msg("Meaning lookup failed")
		}
	}
	s.count(SourceFallback)
	return Meaning{Word: word, Text: FallbackMeaning, Source: SourceFallback}
}

// Set stores an admin meaning, replacing any previous one.
func (s *MeaningService) Set(ctx context.Context, word, meaning, addedBy string) error {
	word = words.Normalize(word)
	meaning = strings.TrimSpace(meaning)
	if word == "" || meaning == "" {
		return ErrEmptyMeaning
	}
	if err := s.store.Set(ctx, word, meaning, addedBy); err != nil {
		return fmt.Errorf("failed to set meaning: %w", err)
	}
	log.Info().Str("word", word).Str("user_id", addedBy).Msg("Word meaning set")
	return nil
}

// Delete removes an admin meaning. Returns repository.ErrMeaningNotFound
// when none was set.
func (s *MeaningService) Delete(ctx context.Context, word string) error {
	word = words.Normalize(word)
	if err := s.store.Delete(ctx, word); err != nil {
		return fmt.Errorf("failed to delete meaning: %w", err)
	}
	log.Info().Str("word", word).Msg("Word meaning deleted")
	return nil
}

// Count returns how many admin meanings are stored.
func (s *MeaningService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

func (s *MeaningService) count(source string) {
	if s.metrics != nil {
		s.metrics.Lookups.WithLabelValues(source).Inc()
	}
}

// StoreSource answers from admin-set meanings.
type StoreSource struct {
	store repository.MeaningStore
}

func (s *StoreSource) Name() string { return SourceAdmin }

func (s *StoreSource) Lookup(ctx context.Context, word string) (string, error) {
	m, err := s.store.Get(ctx, word)
	if errors.Is(err, repository.ErrMeaningNotFound) {
		return "", ErrNoMeaning
	}
	if err != nil {
		return "", err
	}
	return m.Meaning, nil
}

// DictionarySource answers from the built-in dictionary.
type DictionarySource struct {
	dict words.Dictionary
}

// NewDictionarySource wraps a built-in dictionary.
func NewDictionarySource(dict words.Dictionary) *DictionarySource {
	return &DictionarySource{dict: dict}
}

func (s *DictionarySource) Name() string { return SourceBuiltin }

func (s *DictionarySource) Lookup(_ context.Context, word string) (string, error) {
	if m, ok := s.dict.Lookup(word); ok {
		return m, nil
	}
	return "", ErrNoMeaning
}

// KategloSource queries the Kateglo dictionary API.
type KategloSource struct {
	baseURL string
	client  *http.Client
}

// NewKategloSource creates a Kateglo client with the given request timeout.
func NewKategloSource(baseURL string, timeout time.Duration) *KategloSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &KategloSource{baseURL: baseURL, client: &http.Client{Timeout: timeout}}
}

func (s *KategloSource) Name() string { return SourceKateglo }

type kategloResponse struct {
	Kateglo *struct {
		Definition []struct {
			DefText string `json:"def_text"`
		} `json:"definition"`
	} `json:"kateglo"`
}

// Lookup joins the first two definitions with "; ".
func (s *KategloSource) Lookup(ctx context.Context, word string) (string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid kateglo url: %w", err)
	}
	q := u.Query()
	q.Set("format", "json")
	q.Set("phrase", word)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("kateglo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("kateglo returned status %d", resp.StatusCode)
	}

	var body kategloResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode kateglo response: %w", err)
	}
	if body.Kateglo == nil {
		return "", ErrNoMeaning
	}

	defs := make([]string, 0, 2)
	for _, d := range body.Kateglo.Definition {
		if len(defs) == 2 {
			break
		}
		if t := strings.TrimSpace(d.DefText); t != "" {
			defs = append(defs, t)
		}
	}
	if len(defs) == 0 {
		return "", ErrNoMeaning
	}
	return strings.Join(defs, "; "), nil
}
