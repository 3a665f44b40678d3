package template

import (
	"errors"
	"fmt"
)

// ErrLastTemplate is returned when removing the only remaining layer. The
// layer set always keeps at least one layer while an edit session is active.
var ErrLastTemplate = errors.New("cannot remove the last text template")

// MemeTemplate is the ordered set of text layers composited onto a sequence.
// Order is stacking and selection order.
type MemeTemplate struct {
	templates []*TextTemplate
}

// NewMemeTemplate builds a layer set from the given layers, preserving order.
func NewMemeTemplate(templates ...*TextTemplate) *MemeTemplate {
	m := &MemeTemplate{}
	m.templates = append(m.templates, templates...)
	return m
}

// Get returns the layer with the given id.
func (m *MemeTemplate) Get(id string) (*TextTemplate, bool) {
	for _, t := range m.templates {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// List returns the layers in stacking order.
func (m *MemeTemplate) List() []*TextTemplate {
	out := make([]*TextTemplate, len(m.templates))
	copy(out, m.templates)
	return out
}

// Len returns the number of layers.
func (m *MemeTemplate) Len() int {
	return len(m.templates)
}

// Add appends a layer.
func (m *MemeTemplate) Add(t *TextTemplate) {
	m.templates = append(m.templates, t)
}

// AddNew appends a fresh layer with an auto-generated "Text N" id that does
// not collide with any existing layer.
func (m *MemeTemplate) AddNew() *TextTemplate {
	n := len(m.templates) + 1
	id := fmt.Sprintf("Text %d", n)
	for {
		if _, taken := m.Get(id); !taken {
			break
		}
		n++
		id = fmt.Sprintf("Text %d", n)
	}
	t := NewTextTemplate(id)
	m.templates = append(m.templates, t)
	return t
}

// Remove deletes the layer with the given id. Removing the last remaining
// layer is rejected; removing an unknown id is a no-op.
func (m *MemeTemplate) Remove(id string) error {
	if len(m.templates) <= 1 {
		return ErrLastTemplate
	}
	for i, t := range m.templates {
		if t.ID == id {
			m.templates = append(m.templates[:i], m.templates[i+1:]...)
			return nil
		}
	}
	return nil
}
