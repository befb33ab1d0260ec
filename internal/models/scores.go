package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// ScoreEntry is a single category score within a heatmap layer
type ScoreEntry struct {
	Key   string  `json:"key"`
	Score float64 `json:"score"`
}

// Scores is an ordered category -> risk score mapping.
// It is encoded as a JSON object and decoding keeps the document order of keys,
// which is the iteration order every consumer relies on.
type Scores []ScoreEntry

// Values returns the scores in order
func (s Scores) Values() []float64 {
	values := make([]float64, len(s))
	for i, e := range s {
		values[i] = e.Score
	}
	return values
}

// Lookup returns the scores keyed by category
func (s Scores) Lookup() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, e := range s {
		m[e.Key] = e.Score
	}
	return m
}

// Set replaces the score of an existing key or appends a new one
func (s Scores) Set(key string, score float64) Scores {
	for i := range s {
		if s[i].Key == key {
			s[i].Score = score
			return s
		}
	}
	return append(s, ScoreEntry{Key: key, Score: score})
}

// MarshalJSON encodes the scores as a JSON object in order
func (s Scores) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		score := e.Score
		if math.IsNaN(score) || math.IsInf(score, 0) {
			score = 0
		}
		buf.WriteString(strconv.FormatFloat(score, 'g', -1, 64))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object, skipping values that are not finite numbers.
// A repeated key keeps its first position and takes the last value.
func (s *Scores) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("failed to read scores: %w", err)
	}
	if tok == nil {
		*s = nil
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("scores must be a JSON object, got %v", tok)
	}

	var out Scores
	index := make(map[string]int)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("failed to read score key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("invalid score key %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("failed to read score for %q: %w", key, err)
		}

		var score float64
		if bytes.Equal(raw, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(raw, &score); err != nil {
			continue
		}
		if math.IsNaN(score) || math.IsInf(score, 0) {
			continue
		}

		if i, seen := index[key]; seen {
			out[i].Score = score
			continue
		}
		index[key] = len(out)
		out = append(out, ScoreEntry{Key: key, Score: score})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("failed to close scores object: %w", err)
	}

	*s = out
	return nil
}
