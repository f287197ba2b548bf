// Package transcript defines the time-indexed transcript and entity mention
// types shared by the highlighting, playback and source packages.
package transcript

import (
	"encoding/json"
	"strings"
	"time"
)

// Snippet is one timestamped chunk of transcribed speech. Snippets are kept in
// the order they were supplied; start/end ordering between neighbors is not
// guaranteed and is never validated.
type Snippet struct {
	Start      Seconds `json:"start"`
	End        Seconds `json:"end"`
	Text       string  `json:"text"`
	Speaker    string  `json:"speaker,omitempty"`
	Confidence string  `json:"confidence,omitempty"`
}

// Words splits the snippet text on whitespace.
func (s Snippet) Words() []string {
	return strings.Fields(s.Text)
}

// EntityType is the kind of entity a mention refers to.
type EntityType string

const (
	EntityCompany        EntityType = "company"
	EntityCryptocurrency EntityType = "cryptocurrency"
	EntityOther          EntityType = "other"
)

// ParseEntityType normalizes upstream entity type strings. Unknown or empty
// values map to EntityOther.
func ParseEntityType(s string) EntityType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "company":
		return EntityCompany
	case "cryptocurrency", "crypto":
		return EntityCryptocurrency
	default:
		return EntityOther
	}
}

// Mention is a detected reference to a named entity spanning a time interval.
type Mention struct {
	Start      Seconds        `json:"start"`
	End        Seconds        `json:"end"`
	EntityType EntityType     `json:"entityType"`
	EntityID   *string        `json:"entityId"`
	Details    MentionDetails `json:"details"`
}

// Key returns the entity key used for selection and highlighting. Entities
// are identified by name; mentions without a name can never be selected.
func (m Mention) Key() string {
	return strings.TrimSpace(m.Details.Name)
}

// Label returns the display label: the name with an optional " (TICKER)".
func (m Mention) Label() string {
	name := m.Key()
	if m.Details.Ticker != "" {
		return strings.TrimSpace(name + " (" + m.Details.Ticker + ")")
	}
	return name
}

// UnmarshalJSON accepts both camelCase and snake_case keys for the type and
// id fields.
func (m *Mention) UnmarshalJSON(data []byte) error {
	var raw struct {
		Start           Seconds         `json:"start"`
		End             Seconds         `json:"end"`
		EntityType      string          `json:"entityType"`
		EntityTypeSnake string          `json:"entity_type"`
		EntityID        *string         `json:"entityId"`
		EntityIDSnake   *string         `json:"entity_id"`
		Details         json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Start = raw.Start
	m.End = raw.End

	et := raw.EntityType
	if et == "" {
		et = raw.EntityTypeSnake
	}
	m.EntityType = ParseEntityType(et)

	m.EntityID = raw.EntityID
	if m.EntityID == nil {
		m.EntityID = raw.EntityIDSnake
	}

	m.Details = MentionDetails{}
	if len(raw.Details) > 0 && string(raw.Details) != "null" {
		if err := json.Unmarshal(raw.Details, &m.Details); err != nil {
			return err
		}
	}
	return nil
}

// Post is the already-fetched page data for one video or episode.
type Post struct {
	ID              string    `json:"id"`
	Title           string    `json:"title,omitempty"`
	ChannelID       string    `json:"channel_id,omitempty"`
	ChannelTitle    string    `json:"channel_title,omitempty"`
	PublishedAt     time.Time `json:"published_at,omitzero"`
	DurationSeconds *float64  `json:"duration_seconds,omitempty"`
	Description     string    `json:"description,omitempty"`
	VideoURL        string    `json:"video_url,omitempty"`
	AudioURL        string    `json:"audio_url,omitempty"`
	Paragraphs      []Snippet `json:"paragraphs"`
	Mentions        []Mention `json:"mentions"`
}

// DisplayTitle returns the title, falling back to the post id.
func (p Post) DisplayTitle() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return p.ID
}

// MediaURL returns the URL the player should load, preferring audio.
func (p Post) MediaURL() string {
	if p.AudioURL != "" {
		return p.AudioURL
	}
	return p.VideoURL
}
