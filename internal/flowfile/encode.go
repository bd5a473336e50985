package flowfile

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/flowpath/internal/domain"
)

// Document is the canonical on-disk form of a flow.
type Document struct {
	Elements []Element `json:"elements" yaml:"elements"`
}

// Element is the canonical serialized element.
type Element struct {
	Type   domain.ElementKind `json:"type" yaml:"type"`
	ID     string             `json:"id" yaml:"id"`
	Label  string             `json:"label,omitempty" yaml:"label,omitempty"`
	Source string             `json:"source,omitempty" yaml:"source,omitempty"`
	Target string             `json:"target,omitempty" yaml:"target,omitempty"`
	Weight *float64           `json:"weight,omitempty" yaml:"weight,omitempty"`
}

// NewDocument converts domain elements into their canonical form.
func NewDocument(elements []domain.Element) Document {
	doc := Document{Elements: make([]Element, 0, len(elements))}
	for _, elt := range elements {
		switch {
		case elt.Kind == domain.KindNode && elt.Node != nil:
			doc.Elements = append(doc.Elements, Element{
				Type:  domain.KindNode,
				ID:    elt.Node.ID,
				Label: elt.Node.Label,
			})
		case elt.Kind == domain.KindEdge && elt.Edge != nil:
			w := elt.Edge.Weight
			doc.Elements = append(doc.Elements, Element{
				Type:   domain.KindEdge,
				ID:     elt.Edge.ID,
				Source: elt.Edge.Source,
				Target: elt.Edge.Target,
				Weight: &w,
			})
		}
	}
	return doc
}

// Encode writes elements as a canonical document.
func Encode(w io.Writer, format Format, elements []domain.Element) error {
	doc := NewDocument(elements)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

// WriteFile serializes elements to path, creating parent directories. The
// format follows the file extension.
func WriteFile(path string, elements []domain.Element) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	if err := Encode(file, FormatFromPath(path), elements); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
