package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Toggle(t *testing.T) {
	var s Store

	_, ok := s.Selected()
	assert.False(t, ok)

	s.Select("Acme")
	key, ok := s.Selected()
	assert.True(t, ok)
	assert.Equal(t, "Acme", key)

	s.Select("Acme")
	_, ok = s.Selected()
	assert.False(t, ok, "selecting the same key twice clears the selection")
}

func TestStore_Replace(t *testing.T) {
	var s Store
	s.Select("Acme")
	s.Select("Globex")

	assert.Equal(t, "Globex", s.Key())
	assert.True(t, s.IsSelected("Globex"))
	assert.False(t, s.IsSelected("Acme"))
}

func TestStore_Clear(t *testing.T) {
	var s Store
	s.Select("Acme")
	s.Clear()

	assert.Equal(t, "", s.Key())
	assert.False(t, s.IsSelected(""))
}
