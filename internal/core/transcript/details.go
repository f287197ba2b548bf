package transcript

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Seconds is a media timestamp. It decodes from JSON numbers and from
// numeric strings; null and unparsable values decode as zero.
type Seconds float64

// Float returns s as a float64.
func (s Seconds) Float() float64 { return float64(s) }

func (s *Seconds) UnmarshalJSON(data []byte) error {
	f, ok := parseLooseFloat(data)
	if !ok {
		*s = 0
		return nil
	}
	*s = Seconds(f)
	return nil
}

// MentionDetails is the opaque metadata bag attached to a mention. Name,
// ticker, speaker and sentiment are decoded; everything else lands in Extra.
type MentionDetails struct {
	Name      string         `json:"name,omitempty"`
	Ticker    string         `json:"ticker,omitempty"`
	Speaker   string         `json:"speaker,omitempty"`
	Sentiment Sentiment      `json:"sentiment"`
	Extra     map[string]any `json:"-"`
}

// Lookup returns the first non-nil Extra value among keys.
func (d MentionDetails) Lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := d.Extra[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// LookupString is Lookup formatted as a string; empty when absent.
func (d MentionDetails) LookupString(keys ...string) string {
	v, ok := d.Lookup(keys...)
	if !ok {
		return ""
	}
	return FormatValue(v)
}

// LookupFloat is Lookup coerced to a finite float.
func (d MentionDetails) LookupFloat(keys ...string) (float64, bool) {
	v, ok := d.Lookup(keys...)
	if !ok {
		return 0, false
	}
	return toFloat(v)
}

func (d *MentionDetails) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = MentionDetails{Extra: make(map[string]any)}
	var symbol string
	for k, v := range raw {
		switch k {
		case "name":
			d.Name = looseString(v)
		case "ticker":
			d.Ticker = looseString(v)
		case "symbol":
			symbol = looseString(v)
		case "speaker":
			d.Speaker = looseString(v)
		case "sentiment":
			if err := json.Unmarshal(v, &d.Sentiment); err != nil {
				// A malformed sentiment object leaves the mention usable.
				d.Sentiment = Sentiment{}
			}
		default:
			var anyV any
			if err := json.Unmarshal(v, &anyV); err == nil {
				d.Extra[k] = anyV
			}
		}
	}
	if d.Ticker == "" {
		d.Ticker = symbol
	}
	return nil
}

func (d MentionDetails) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Extra)+4)
	for k, v := range d.Extra {
		out[k] = v
	}
	if d.Name != "" {
		out["name"] = d.Name
	}
	if d.Ticker != "" {
		out["ticker"] = d.Ticker
	}
	if d.Speaker != "" {
		out["speaker"] = d.Speaker
	}
	out["sentiment"] = d.Sentiment
	return json.Marshal(out)
}

// Sentiment is the per-mention sentiment summary produced upstream.
type Sentiment struct {
	Score              *float64 `json:"score"`
	Polarity           string   `json:"polarity,omitempty"`
	Emotions           []string `json:"emotions,omitempty"`
	Intensity          string   `json:"intensity,omitempty"`
	Subjectivity       string   `json:"subjectivity,omitempty"`
	Summary            string   `json:"summary,omitempty"`
	ScoreJustification string   `json:"score_justification,omitempty"`
}

func (s *Sentiment) UnmarshalJSON(data []byte) error {
	var raw struct {
		Score              json.RawMessage `json:"score"`
		Polarity           json.RawMessage `json:"polarity"`
		Emotions           json.RawMessage `json:"emotions"`
		Intensity          json.RawMessage `json:"intensity"`
		Subjectivity       json.RawMessage `json:"subjectivity"`
		Summary            json.RawMessage `json:"summary"`
		ScoreJustification json.RawMessage `json:"score_justification"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Sentiment{
		Polarity:           looseString(raw.Polarity),
		Intensity:          looseString(raw.Intensity),
		Subjectivity:       looseString(raw.Subjectivity),
		Summary:            looseString(raw.Summary),
		ScoreJustification: looseString(raw.ScoreJustification),
	}
	if f, ok := parseLooseFloat(raw.Score); ok {
		s.Score = &f
	}

	var list []string
	switch {
	case len(raw.Emotions) == 0:
	case json.Unmarshal(raw.Emotions, &list) == nil:
		s.Emotions = list
	default:
		if e := looseString(raw.Emotions); e != "" {
			s.Emotions = []string{e}
		}
	}
	return nil
}

// Polarity of a sentiment score.
type Polarity int

const (
	Neutral Polarity = iota
	Positive
	Negative
)

func (p Polarity) String() string {
	switch p {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	default:
		return "neutral"
	}
}

// Sign classifies the score: >0 positive, <0 negative, absent or zero neutral.
func (s Sentiment) Sign() Polarity {
	if s.Score == nil {
		return Neutral
	}
	switch {
	case *s.Score > 0:
		return Positive
	case *s.Score < 0:
		return Negative
	default:
		return Neutral
	}
}

// FormatValue renders an arbitrary decoded JSON value for display.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, e := range t {
			parts = append(parts, FormatValue(e))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

func looseString(data json.RawMessage) string {
	if len(data) == 0 {
		return ""
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return ""
	}
	return FormatValue(v)
}

func parseLooseFloat(data []byte) (float64, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return 0, false
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return 0, false
	}
	return toFloat(v)
}

func toFloat(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// MarshalText encodes the polarity by name.
func (p Polarity) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
