// Package words holds the word-game vocabulary and the built-in meaning
// dictionary. The defaults are embedded from words.yaml; admins can edit the
// live lists at runtime.
package words

import (
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed words.yaml
var builtin []byte

// Vocabulary errors.
var (
	ErrWordExists   = errors.New("word already exists")
	ErrWordNotFound = errors.New("word not found")
	ErrInvalidWord  = errors.New("word must be letters a-z only")
)

type dataFile struct {
	Words     []string          `yaml:"words"`
	Exclusive []string          `yaml:"exclusive"`
	Meanings  map[string]string `yaml:"meanings"`
}

// Stats summarises the vocabulary.
type Stats struct {
	Normal    int
	Exclusive int
	Total     int
}

// Vocabulary is the mutable word list the word game draws from.
type Vocabulary struct {
	mu        sync.RWMutex
	normal    []string
	exclusive []string
}

// Default returns the embedded vocabulary.
func Default() (*Vocabulary, error) {
	data, err := load()
	if err != nil {
		return nil, err
	}
	return New(data.Words, data.Exclusive)
}

// New builds a vocabulary from explicit lists. Words are lowercased and
// trimmed; duplicates are dropped.
func New(normal, exclusive []string) (*Vocabulary, error) {
	v := &Vocabulary{}
	seen := make(map[string]bool)
	for _, list := range []struct {
		words []string
		dst   *[]string
	}{{normal, &v.normal}, {exclusive, &v.exclusive}} {
		for _, w := range list.words {
			w = Normalize(w)
			if !Valid(w) {
				return nil, fmt.Errorf("%w: %q", ErrInvalidWord, w)
			}
			if seen[w] {
				continue
			}
			seen[w] = true
			*list.dst = append(*list.dst, w)
		}
	}
	return v, nil
}

// Normalize lowercases and trims a word.
func Normalize(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}

// Valid reports whether w is a non-empty run of a-z.
func Valid(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}

// All returns the normal words followed by the exclusive words.
func (v *Vocabulary) All() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()

	out := make([]string, 0, len(v.normal)+len(v.exclusive))
	out = append(out, v.normal...)
	return append(out, v.exclusive...)
}

// Normal returns a copy of the normal list.
func (v *Vocabulary) Normal() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.normal)
}

// Exclusive returns a copy of the exclusive list.
func (v *Vocabulary) Exclusive() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.exclusive)
}

// IsExclusive reports whether w is on the exclusive list.
func (v *Vocabulary) IsExclusive(w string) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Contains(v.exclusive, Normalize(w))
}

// Add appends a word to the normal or exclusive list.
func (v *Vocabulary) Add(w string, exclusive bool) error {
	w = Normalize(w)
	if !Valid(w) {
		return ErrInvalidWord
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.containsLocked(w) {
		return ErrWordExists
	}
	if exclusive {
		v.exclusive = append(v.exclusive, w)
	} else {
		v.normal = append(v.normal, w)
	}
	return nil
}

// Remove deletes a word from whichever list holds it and reports whether
// it was exclusive.
func (v *Vocabulary) Remove(w string) (exclusive bool, err error) {
	w = Normalize(w)

	v.mu.Lock()
	defer v.mu.Unlock()

	if i := slices.Index(v.normal, w); i >= 0 {
		v.normal = slices.Delete(v.normal, i, i+1)
		return false, nil
	}
	if i := slices.Index(v.exclusive, w); i >= 0 {
		v.exclusive = slices.Delete(v.exclusive, i, i+1)
		return true, nil
	}
	return false, ErrWordNotFound
}

// Rename replaces oldWord with newWord in place.
func (v *Vocabulary) Rename(oldWord, newWord string) (exclusive bool, err error) {
	oldWord, newWord = Normalize(oldWord), Normalize(newWord)
	if !Valid(newWord) {
		return false, ErrInvalidWord
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.containsLocked(newWord) {
		return false, ErrWordExists
	}
	if i := slices.Index(v.normal, oldWord); i >= 0 {
		v.normal[i] = newWord
		return false, nil
	}
	if i := slices.Index(v.exclusive, oldWord); i >= 0 {
		v.exclusive[i] = newWord
		return true, nil
	}
	return false, ErrWordNotFound
}

// Search returns the normal and exclusive words containing term.
func (v *Vocabulary) Search(term string) (normal, exclusive []string) {
	term = Normalize(term)

	v.mu.RLock()
	defer v.mu.RUnlock()

	for _, w := range v.normal {
		if strings.Contains(w, term) {
			normal = append(normal, w)
		}
	}
	for _, w := range v.exclusive {
		if strings.Contains(w, term) {
			exclusive = append(exclusive, w)
		}
	}
	return normal, exclusive
}

// Stats returns the list sizes.
func (v *Vocabulary) Stats() Stats {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Stats{
		Normal:    len(v.normal),
		Exclusive: len(v.exclusive),
		Total:     len(v.normal) + len(v.exclusive),
	}
}

func (v *Vocabulary) containsLocked(w string) bool {
	return slices.Contains(v.normal, w) || slices.Contains(v.exclusive, w)
}

// Dictionary is the built-in word → meaning table.
type Dictionary map[string]string

// DefaultDictionary returns the embedded meaning table.
func DefaultDictionary() (Dictionary, error) {
	data, err := load()
	if err != nil {
		return nil, err
	}
	return Dictionary(data.Meanings), nil
}

// Lookup returns the built-in meaning for w.
func (d Dictionary) Lookup(w string) (string, bool) {
	m, ok := d[Normalize(w)]
	return m, ok
}

func load() (*dataFile, error) {
	var data dataFile
	if err := yaml.Unmarshal(builtin, &data); err != nil {
		return nil, fmt.Errorf("failed to parse embedded words: %w", err)
	}
	return &data, nil
}
