package lexical

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SerializedEditorState is the persisted/exchanged form of a document.
type SerializedEditorState struct {
	Root SerializedNode `json:"root"`
}

// SerializedNode is the flat superset of every node family's serialized
// fields. Type-specific Import/Export behaviors read and write only the
// fields of their family; everything else stays at its zero value and is
// dropped from the JSON encoding.
type SerializedNode struct {
	Type     string           `json:"type"`
	Version  int              `json:"version"`
	Children []SerializedNode `json:"children,omitempty"`

	// Element fields. Format doubles as the text bitmask on text records.
	Format    int    `json:"format,omitempty"`
	Indent    int    `json:"indent,omitempty"`
	Direction string `json:"direction,omitempty"`

	// Text fields
	Text   string `json:"text,omitempty"`
	Detail int    `json:"detail,omitempty"`
	Mode   string `json:"mode,omitempty"`
	Style  string `json:"style,omitempty"`

	// Link fields
	URL    string `json:"url,omitempty"`
	Rel    string `json:"rel,omitempty"`
	Target string `json:"target,omitempty"`
	Title  string `json:"title,omitempty"`

	// List fields
	ListType string `json:"listType,omitempty"`
	Start    int    `json:"start,omitempty"`
	Tag      string `json:"tag,omitempty"`

	// List item fields
	Checked bool `json:"checked,omitempty"`
	Value   int  `json:"value,omitempty"`

	// Table cell fields
	ColSpan     int `json:"colSpan,omitempty"`
	RowSpan     int `json:"rowSpan,omitempty"`
	HeaderState int `json:"headerState,omitempty"`
}

// UnmarshalJSON decodes a record, tolerating the format field shapes found
// in documents written by web editors: a number (bitmask), an alignment
// keyword, or an empty string. The engine always writes the integer form.
func (n *SerializedNode) UnmarshalJSON(data []byte) error {
	type alias SerializedNode
	aux := struct {
		Format json.RawMessage `json:"format,omitempty"`
		*alias
	}{alias: (*alias)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(aux.Format) > 0 {
		n.Format = parseFormatValue(aux.Format)
	}
	return nil
}

func parseFormatValue(raw json.RawMessage) int {
	var i int
	if err := json.Unmarshal(raw, &i); err == nil {
		return i
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return elementFormatFromName(s)
	}
	return 0
}

// ParseEditorState decodes a serialized document from JSON.
func ParseEditorState(data []byte) (*SerializedEditorState, error) {
	var ser SerializedEditorState
	if err := json.Unmarshal(data, &ser); err != nil {
		return nil, fmt.Errorf("failed to parse serialized state: %w", err)
	}
	if ser.Root.Type == "" {
		return nil, ErrNoRoot
	}
	return &ser, nil
}

// LooksLikeState reports whether raw plausibly holds a serialized state,
// without decoding it. Cheap pre-check for content columns that may carry
// plain text.
func LooksLikeState(raw string) bool {
	return strings.HasPrefix(strings.TrimSpace(raw), `{"root":`)
}

// JSON encodes the serialized document.
func (s *SerializedEditorState) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// ImportElementFields applies the element family fields from a record.
func ImportElementFields(e *ElementNode, rec *SerializedNode) {
	e.Format = rec.Format
	e.Indent = rec.Indent
	e.Direction = Direction(rec.Direction)
}

// ExportElementFields writes the element family fields into a record.
func ExportElementFields(e *ElementNode, rec *SerializedNode) {
	rec.Format = e.Format
	rec.Indent = e.Indent
	rec.Direction = string(e.Direction)
}

// ImportTextFields applies the text family fields from a record. An empty
// mode keeps the factory's mode.
func ImportTextFields(t *TextNode, rec *SerializedNode) {
	t.Text = rec.Text
	t.Format = rec.Format
	t.Detail = rec.Detail
	if rec.Mode != "" {
		t.Mode = TextMode(rec.Mode)
	}
	t.Style = rec.Style
}

// ExportTextFields writes the text family fields into a record.
func ExportTextFields(t *TextNode, rec *SerializedNode) {
	rec.Text = t.Text
	rec.Format = t.Format
	rec.Detail = t.Detail
	rec.Mode = string(t.Mode)
	rec.Style = t.Style
}

// ImportNode constructs a detached node from one record, without descending
// into children; tree walks handle those. Unknown tags and versions outside
// the registered behavior's range are rejected here, before any node exists.
func ImportNode(reg *Registry, rec *SerializedNode) (Node, error) {
	t, err := reg.Type(rec.Type)
	if err != nil {
		return nil, err
	}
	if !t.supportsVersion(rec.Version) {
		return nil, &SchemaMismatchError{Tag: t.Tag, Version: rec.Version, Supported: t.Version}
	}
	if t.Import != nil {
		return t.Import(rec)
	}
	return t.Create(), nil
}

// ExportNode emits one node's record without children.
func ExportNode(reg *Registry, n Node) (*SerializedNode, error) {
	t, err := reg.Type(n.Type())
	if err != nil {
		return nil, err
	}
	if t.Export != nil {
		return t.Export(n)
	}
	return &SerializedNode{Type: t.Tag, Version: t.Version}, nil
}

// ImportEditorState builds a fresh editor state from a serialized document.
// Keys are assigned in document order starting from the root.
func ImportEditorState(reg *Registry, ser *SerializedEditorState) (*EditorState, error) {
	if ser == nil || ser.Root.Type == "" {
		return nil, ErrNoRoot
	}
	st := newEditorState()
	if err := importSubtree(reg, st, "", &ser.Root); err != nil {
		return nil, err
	}
	return st, nil
}

func importSubtree(reg *Registry, st *EditorState, parent NodeKey, rec *SerializedNode) error {
	n, err := ImportNode(reg, rec)
	if err != nil {
		return err
	}
	if parent == "" {
		if err := st.attachRoot(n); err != nil {
			return err
		}
	} else if _, err := st.append(parent, n); err != nil {
		return err
	}
	for i := range rec.Children {
		if err := importSubtree(reg, st, n.Key(), &rec.Children[i]); err != nil {
			return err
		}
	}
	return nil
}

// ExportEditorState serializes the full tree.
func ExportEditorState(reg *Registry, st *EditorState) (*SerializedEditorState, error) {
	rec, err := exportSubtree(reg, st, st.root)
	if err != nil {
		return nil, err
	}
	return &SerializedEditorState{Root: *rec}, nil
}

func exportSubtree(reg *Registry, st *EditorState, key NodeKey) (*SerializedNode, error) {
	n, ok := st.Node(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, key)
	}
	rec, err := ExportNode(reg, n)
	if err != nil {
		return nil, err
	}
	if el := elementOf(n); el != nil {
		for _, childKey := range el.children {
			childRec, err := exportSubtree(reg, st, childKey)
			if err != nil {
				return nil, err
			}
			rec.Children = append(rec.Children, *childRec)
		}
	}
	return rec, nil
}
