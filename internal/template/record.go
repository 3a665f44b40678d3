package template

import (
	"github.com/ashapiro/memeframe/internal/keyframe"
)

// Record is the persisted form of one text layer. The field set and names are
// the sidecar document contract; keep them stable.
type Record struct {
	ID              string              `yaml:"id"`
	Keyframes       []keyframe.Keyframe `yaml:"keyframes"`
	Font            string              `yaml:"font"`
	TextColor       string              `yaml:"text_color"`
	BackgroundColor string              `yaml:"background_color,omitempty"`
	StrokeWidth     int                 `yaml:"stroke_width"`
	StrokeColor     string              `yaml:"stroke_color"`
}

// Serialize captures the layer's identity, keyframes and style.
func (t *TextTemplate) Serialize() Record {
	return Record{
		ID:              t.ID,
		Keyframes:       t.Keyframes.Keyframes(),
		Font:            t.FontPath,
		TextColor:       t.TextColor,
		BackgroundColor: t.BackgroundColor,
		StrokeWidth:     t.StrokeWidth,
		StrokeColor:     t.StrokeColor,
	}
}

// FromRecord reconstructs a layer, rebuilding its keyframe store. The layer
// id doubles as its default render content.
func FromRecord(r Record) *TextTemplate {
	t := NewTextTemplate(r.ID)
	t.FontPath = r.Font
	t.TextColor = r.TextColor
	t.BackgroundColor = r.BackgroundColor
	t.StrokeWidth = r.StrokeWidth
	t.StrokeColor = r.StrokeColor
	for _, kf := range r.Keyframes {
		t.Keyframes.Insert(kf)
	}
	return t
}

// Serialize captures all layers in stacking order.
func (m *MemeTemplate) Serialize() []Record {
	records := make([]Record, 0, len(m.templates))
	for _, t := range m.templates {
		records = append(records, t.Serialize())
	}
	return records
}

// Deserialize rebuilds a layer set from records, preserving order.
func Deserialize(records []Record) *MemeTemplate {
	m := &MemeTemplate{}
	for _, r := range records {
		m.Add(FromRecord(r))
	}
	return m
}
