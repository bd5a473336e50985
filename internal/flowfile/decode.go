// Package flowfile reads and writes flow element lists as JSON or YAML.
//
// Two element shapes are accepted. The canonical shape carries an explicit
// "type" of "node" or "edge":
//
//	{"type": "node", "id": "1", "label": "Start"}
//	{"type": "edge", "id": "e1-2", "source": "1", "target": "2", "weight": 2}
//
// The legacy shape is the one produced by the browser editor, where the kind
// is implied by the id prefix and the label lives under "data":
//
//	{"id": "1", "data": {"label": "Start"}}
//	{"id": "e1-2", "source": "1", "target": "2", "label": "2"}
//
// Legacy edge weights come from data.weight, then from a numeric label, and
// fall back to domain.DefaultEdgeWeight.
package flowfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vanshika/flowpath/internal/domain"
)

// ErrInvalidDocument is returned when a document cannot be read as a list of
// flow elements.
var ErrInvalidDocument = errors.New("invalid flow document")

// Format selects the serialization of a flow document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultEdgePrefix marks legacy element ids that denote edges.
const DefaultEdgePrefix = "e"

// Options tune how legacy elements are classified.
type Options struct {
	// EdgePrefix marks untyped elements whose id starts with it as edges.
	// When empty, an untyped element is an edge iff it has both a source
	// and a target.
	EdgePrefix string
}

// DefaultOptions returns the options matching the browser editor's ids.
func DefaultOptions() Options {
	return Options{EdgePrefix: DefaultEdgePrefix}
}

// FormatFromPath picks YAML for .yaml/.yml files and JSON otherwise.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeFile reads the flow document at path.
func DecodeFile(path string, opts Options) ([]domain.Element, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	elements, err := Decode(file, FormatFromPath(path), opts)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return elements, nil
}

// Decode reads a document that is either a bare element array or an object
// with an "elements" array.
func Decode(r io.Reader, format Format, opts Options) ([]domain.Element, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read flow document: %w", err)
	}
	return DecodeBytes(raw, format, opts)
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(raw []byte, format Format, opts Options) ([]domain.Element, error) {
	var doc any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
		if err := ExpectEOF(dec); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidDocument, format)
	}
	return fromDocument(doc, opts)
}

// ExpectEOF fails unless dec has nothing left to read after whitespace.
func ExpectEOF(dec *json.Decoder) error {
	var extra json.RawMessage
	switch err := dec.Decode(&extra); {
	case errors.Is(err, io.EOF):
		return nil
	case err != nil:
		return err
	default:
		return errors.New("unexpected data after the document")
	}
}

func fromDocument(doc any, opts Options) ([]domain.Element, error) {
	var items []any
	switch v := doc.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	case map[string]any:
		list, ok := v["elements"]
		if !ok {
			return nil, fmt.Errorf("%w: missing elements", ErrInvalidDocument)
		}
		if list == nil {
			return nil, nil
		}
		if items, ok = list.([]any); !ok {
			return nil, fmt.Errorf("%w: elements must be a list", ErrInvalidDocument)
		}
	default:
		return nil, fmt.Errorf("%w: expected a list or an object, got %T", ErrInvalidDocument, doc)
	}

	elements := make([]domain.Element, 0, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: element %d is not an object", ErrInvalidDocument, i)
		}
		elt, err := elementFromMap(m, opts)
		if err != nil {
			return nil, fmt.Errorf("%w: element %d: %v", ErrInvalidDocument, i, err)
		}
		elements = append(elements, elt)
	}
	return elements, nil
}

func elementFromMap(m map[string]any, opts Options) (domain.Element, error) {
	id, err := scalarString(m["id"])
	if err != nil {
		return domain.Element{}, fmt.Errorf("id: %w", err)
	}
	data, _ := m["data"].(map[string]any)

	if classify(id, m, opts) == domain.KindNode {
		label, err := scalarString(first(m["label"], data["label"]))
		if err != nil {
			return domain.Element{}, fmt.Errorf("label: %w", err)
		}
		return domain.NodeElement(id, label), nil
	}

	source, err := scalarString(m["source"])
	if err != nil {
		return domain.Element{}, fmt.Errorf("source: %w", err)
	}
	target, err := scalarString(m["target"])
	if err != nil {
		return domain.Element{}, fmt.Errorf("target: %w", err)
	}
	if _, declared := declaredKind(m); !declared && source == "" && target == "" && opts.EdgePrefix != "" {
		return domain.Element{}, fmt.Errorf("legacy edge %q has no source or target (ids starting with %q are read as edges)", id, opts.EdgePrefix)
	}
	weight, err := edgeWeight(m, data)
	if err != nil {
		return domain.Element{}, err
	}
	return domain.EdgeElement(id, source, target, weight), nil
}

// classify honours an explicit "node"/"edge" type. Any other type value is
// a renderer hint from the editor (input, output, smoothstep...) and falls
// through to the legacy rules.
func classify(id string, m map[string]any, opts Options) domain.ElementKind {
	if kind, ok := declaredKind(m); ok {
		return kind
	}

	if opts.EdgePrefix != "" {
		if strings.HasPrefix(id, opts.EdgePrefix) {
			return domain.KindEdge
		}
		return domain.KindNode
	}
	if m["source"] != nil && m["target"] != nil {
		return domain.KindEdge
	}
	return domain.KindNode
}

func declaredKind(m map[string]any) (domain.ElementKind, bool) {
	t, ok := m["type"].(string)
	if !ok {
		return "", false
	}
	switch kind := domain.ElementKind(strings.ToLower(strings.TrimSpace(t))); kind {
	case domain.KindNode, domain.KindEdge:
		return kind, true
	}
	return "", false
}

func edgeWeight(m, data map[string]any) (float64, error) {
	if v, ok := m["weight"]; ok && v != nil {
		w, err := number(v)
		if err != nil {
			return 0, fmt.Errorf("weight: %w", err)
		}
		return w, nil
	}
	if v, ok := data["weight"]; ok && v != nil {
		w, err := number(v)
		if err != nil {
			return 0, fmt.Errorf("data.weight: %w", err)
		}
		return w, nil
	}
	// The editor stores a typed weight in the edge label; anything that does
	// not parse as a number is a caption, not a weight.
	if v, ok := m["label"]; ok && v != nil {
		if w, err := number(v); err == nil && !math.IsInf(w, 0) {
			return w, nil
		}
	}
	return domain.DefaultEdgeWeight, nil
}

func first(values ...any) any {
	for _, v := range values {
		if v != nil {
			return v
		}
	}
	return nil
}

func scalarString(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case bool:
		return strconv.FormatBool(t), nil
	default:
		return "", fmt.Errorf("expected a scalar, got %T", v)
	}
}

func number(v any) (float64, error) {
	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case json.Number:
		f, err = t.Float64()
	case float64:
		f = t
	case int:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint64:
		f = float64(t)
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(t), 64)
	default:
		return 0, fmt.Errorf("expected a number, got %T", v)
	}
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) {
		return 0, errors.New("NaN is not a weight")
	}
	return f, nil
}
