package lexical

import (
	"fmt"
	"sync"
)

// Config configures an editor host.
type Config struct {
	// Namespace labels the editor instance; it is carried into serialized
	// documents by callers, not by the engine.
	Namespace string

	// Nodes is the ordered set of node types the document may contain.
	Nodes []*NodeType

	// Theme maps style slots to CSS classes for rendering.
	Theme Theme

	// OnError receives every error raised while constructing or updating
	// the document. Test scaffolding points this at the test's failure
	// handler so inconsistencies fail loud.
	OnError func(error)

	// EditorState seeds the document. Nil starts from an empty root, which
	// requires the root type to be registered.
	EditorState *SerializedEditorState
}

// UpdateListener is notified after an update commits, with the committed
// state and the keys touched by the transaction. Order of keys is
// unspecified. Listeners must not call back into Update.
type UpdateListener func(state *EditorState, dirty []NodeKey)

// Editor is a headless host for one document. All mutation goes through
// Update, one transaction at a time; committed states are immutable
// snapshots safe to read without coordination.
type Editor struct {
	namespace string
	registry  *Registry
	theme     Theme
	onError   func(error)

	mu           sync.Mutex
	state        *EditorState
	listeners    map[int]UpdateListener
	nextListener int
}

// NewEditor builds the registry from cfg.Nodes and seeds the initial state.
func NewEditor(cfg Config) (*Editor, error) {
	registry, err := NewRegistry(cfg.Nodes...)
	if err != nil {
		return nil, err
	}

	e := &Editor{
		namespace: cfg.Namespace,
		registry:  registry,
		theme:     cfg.Theme,
		onError:   cfg.OnError,
		listeners: make(map[int]UpdateListener),
	}

	if cfg.EditorState != nil {
		st, err := ImportEditorState(registry, cfg.EditorState)
		if err != nil {
			e.fail(err)
			return nil, err
		}
		e.state = st
		return e, nil
	}

	rootType, ok := registry.Lookup(TypeRoot)
	if !ok {
		err := fmt.Errorf("registry has no %q type and no initial state was given", TypeRoot)
		e.fail(err)
		return nil, err
	}
	st := newEditorState()
	if err := st.attachRoot(rootType.Create()); err != nil {
		e.fail(err)
		return nil, err
	}
	e.state = st
	return e, nil
}

func (e *Editor) fail(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}

// Namespace returns the configured namespace.
func (e *Editor) Namespace() string { return e.namespace }

// Registry returns the editor's node type registry.
func (e *Editor) Registry() *Registry { return e.registry }

// Theme returns the configured theme.
func (e *Editor) Theme() Theme { return e.theme }

// State returns the current committed state snapshot.
func (e *Editor) State() *EditorState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Read runs fn against the current committed state snapshot.
func (e *Editor) Read(fn func(state *EditorState)) {
	fn(e.State())
}

// Update applies one transaction. The fn mutates a working copy through the
// Update handle; when it returns nil the copy becomes the committed state
// and listeners fire with the touched keys. A non-nil error discards the
// copy, is routed to OnError and returned.
func (e *Editor) Update(fn func(u *Update) error) error {
	e.mu.Lock()
	u := &Update{
		editor: e,
		state:  e.state.clone(),
		dirty:  make(map[NodeKey]bool),
	}
	if err := fn(u); err != nil {
		e.mu.Unlock()
		e.fail(err)
		return err
	}
	if len(u.dirty) == 0 {
		// Nothing changed; keep the committed state.
		e.mu.Unlock()
		return nil
	}
	e.state = u.state
	state, dirty, listeners := e.state, u.dirtyKeys(), e.snapshotListeners()
	e.mu.Unlock()

	for _, l := range listeners {
		l(state, dirty)
	}
	return nil
}

// SetEditorState replaces the document with an imported serialized state.
// Listeners fire with every key of the new tree.
func (e *Editor) SetEditorState(ser *SerializedEditorState) error {
	st, err := ImportEditorState(e.registry, ser)
	if err != nil {
		e.fail(err)
		return err
	}

	e.mu.Lock()
	e.state = st
	dirty := make([]NodeKey, 0, len(st.nodes))
	_ = st.Walk(func(n Node, _ int) error {
		dirty = append(dirty, n.Key())
		return nil
	})
	listeners := e.snapshotListeners()
	e.mu.Unlock()

	for _, l := range listeners {
		l(st, dirty)
	}
	return nil
}

// RegisterUpdateListener adds a commit listener and returns its remover.
func (e *Editor) RegisterUpdateListener(fn UpdateListener) func() {
	e.mu.Lock()
	defer e.mu.Unlock()
	id := e.nextListener
	e.nextListener++
	e.listeners[id] = fn
	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		delete(e.listeners, id)
	}
}

func (e *Editor) snapshotListeners() []UpdateListener {
	out := make([]UpdateListener, 0, len(e.listeners))
	for i := 0; i < e.nextListener; i++ {
		if l, ok := e.listeners[i]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Export serializes the current state.
func (e *Editor) Export() (*SerializedEditorState, error) {
	return ExportEditorState(e.registry, e.State())
}

// ToJSON serializes the current state to JSON.
func (e *Editor) ToJSON() ([]byte, error) {
	ser, err := e.Export()
	if err != nil {
		return nil, err
	}
	return ser.JSON()
}

// TextContent returns the plain-text projection of the current state.
func (e *Editor) TextContent() string {
	return StateTextContent(e.registry, e.State())
}
