package note

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Record is the interchange form of a segment.
type Record struct {
	Kind  Kind   `json:"kind" yaml:"kind"`
	Text  string `json:"text" yaml:"text"`
	Value any    `json:"value,omitempty" yaml:"value,omitempty"`
}

// Records returns the note as interchange records.
func (n *Note) Records() []Record {
	out := make([]Record, 0, len(n.segs))
	for _, s := range n.segs {
		rec := Record{Kind: s.Kind, Text: s.Text}
		if !s.IsText() {
			rec.Value = s.Value
		}
		out = append(out, rec)
	}
	return out
}

// FromRecords builds a validated note from interchange records.
func FromRecords(recs []Record) (*Note, error) {
	segs := make([]Segment, 0, len(recs))
	for _, r := range recs {
		segs = append(segs, Segment{Kind: r.Kind, Text: r.Text, Value: r.Value})
	}
	return FromSegments(segs)
}

func (n *Note) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Records())
}

func (n *Note) UnmarshalJSON(data []byte) error {
	var recs []Record
	if err := json.Unmarshal(data, &recs); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	return n.replace(recs)
}

func (n *Note) MarshalYAML() (any, error) {
	return n.Records(), nil
}

func (n *Note) UnmarshalYAML(value *yaml.Node) error {
	var recs []Record
	if err := value.Decode(&recs); err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	return n.replace(recs)
}

func (n *Note) replace(recs []Record) error {
	decoded, err := FromRecords(recs)
	if err != nil {
		return fmt.Errorf("decode note: %w", err)
	}
	n.segs = decoded.segs
	n.version++
	return nil
}
