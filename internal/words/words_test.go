package words

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	v, err := Default()
	require.NoError(t, err)

	stats := v.Stats()
	assert.Greater(t, stats.Normal, 100)
	assert.Equal(t, 8, stats.Exclusive)
	assert.Equal(t, stats.Normal+stats.Exclusive, stats.Total)
	assert.Len(t, v.All(), stats.Total)

	assert.True(t, v.IsExclusive("warisan"))
	assert.False(t, v.IsExclusive("istana"))
	for _, w := range v.All() {
		assert.True(t, Valid(w), "invalid built-in word %q", w)
	}
}

func TestDefaultDictionary(t *testing.T) {
	d, err := DefaultDictionary()
	require.NoError(t, err)

	m, ok := d.Lookup("Abur")
	assert.True(t, ok)
	assert.Equal(t, "Berselerak atau bersepah; tidak teratur", m)

	_, ok = d.Lookup("tiadaperkataanini")
	assert.False(t, ok)
	assert.NotEmpty(t, d)
}

func TestNewNormalizesAndDedupes(t *testing.T) {
	v, err := New([]string{" Seri ", "istana", "seri"}, []string{"ILMU"})
	require.NoError(t, err)
	assert.Equal(t, []string{"seri", "istana", "ilmu"}, v.All())

	_, err = New([]string{"dua kata"}, nil)
	assert.ErrorIs(t, err, ErrInvalidWord)
}

func TestVocabularyEditing(t *testing.T) {
	v, err := New([]string{"seri", "istana"}, []string{"ilmu"})
	require.NoError(t, err)

	tests := []struct {
		name string
		run  func() error
		want error
	}{
		{"add normal", func() error { return v.Add("Pena", false) }, nil},
		{"add exclusive", func() error { return v.Add("budaya", true) }, nil},
		{"add duplicate", func() error { return v.Add("seri", true) }, ErrWordExists},
		{"add invalid", func() error { return v.Add("a1", false) }, ErrInvalidWord},
		{"remove missing", func() error { _, err := v.Remove("tiada"); return err }, ErrWordNotFound},
		{"rename to existing", func() error { _, err := v.Rename("seri", "istana"); return err }, ErrWordExists},
		{"rename missing", func() error { _, err := v.Rename("tiada", "baru"); return err }, ErrWordNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			if tt.want == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}

	assert.Equal(t, []string{"seri", "istana", "pena"}, v.Normal())
	assert.Equal(t, []string{"ilmu", "budaya"}, v.Exclusive())

	excl, err := v.Rename("ilmu", "ilmiah")
	require.NoError(t, err)
	assert.True(t, excl)
	assert.True(t, v.IsExclusive("ilmiah"))

	excl, err = v.Remove("seri")
	require.NoError(t, err)
	assert.False(t, excl)

	normal, exclusive := v.Search("an")
	assert.Equal(t, []string{"istana"}, normal)
	assert.Empty(t, exclusive)

	normal, exclusive = v.Search("ilm")
	assert.Empty(t, normal)
	assert.Equal(t, []string{"ilmiah"}, exclusive)

	assert.Equal(t, Stats{Normal: 2, Exclusive: 2, Total: 4}, v.Stats())
}
