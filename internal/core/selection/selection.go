// Package selection holds the currently selected entity.
package selection

// Store holds at most one selected entity key. The zero value has nothing
// selected.
type Store struct {
	key string
}

// Select toggles key: selecting the current key clears the selection,
// anything else replaces it. An empty key clears.
func (s *Store) Select(key string) {
	if key == s.key {
		s.key = ""
		return
	}
	s.key = key
}

// Clear removes the selection.
func (s *Store) Clear() {
	s.key = ""
}

// Selected returns the selected key and whether one is set.
func (s *Store) Selected() (string, bool) {
	return s.key, s.key != ""
}

// Key returns the selected key, empty when nothing is selected.
func (s *Store) Key() string {
	return s.key
}

// IsSelected reports whether key is the current selection.
func (s *Store) IsSelected(key string) bool {
	return key != "" && key == s.key
}
