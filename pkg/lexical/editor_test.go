package lexical_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"doc-engine-be/pkg/lexical"
)

func newTestEditor(t *testing.T) *lexical.Editor {
	t.Helper()
	ed, err := lexical.NewEditor(lexical.Config{
		Namespace: "engine-test",
		Nodes:     lexical.CoreNodes(),
	})
	if err != nil {
		t.Fatalf("failed to construct editor: %v", err)
	}
	return ed
}

// seedParagraph appends a paragraph with one text child and returns both keys.
func seedParagraph(t *testing.T, ed *lexical.Editor, text string) (para, txt lexical.NodeKey) {
	t.Helper()
	err := ed.Update(func(u *lexical.Update) error {
		var err error
		para, err = u.Append(lexical.RootKey, lexical.NewParagraphNode())
		if err != nil {
			return err
		}
		txt, err = u.Append(para, lexical.NewPlainTextNode(text))
		return err
	})
	if err != nil {
		t.Fatalf("failed to seed paragraph: %v", err)
	}
	return para, txt
}

func TestNewEditorSeedsRoot(t *testing.T) {
	ed := newTestEditor(t)

	root := ed.State().Root()
	assert.NotNil(t, root)
	assert.Equal(t, lexical.TypeRoot, root.Type())
	assert.Equal(t, lexical.RootKey, root.Key())
	assert.Equal(t, 1, ed.State().NodeCount())
	assert.Equal(t, "engine-test", ed.Namespace())
}

func TestNewEditorRequiresRootType(t *testing.T) {
	_, err := lexical.NewEditor(lexical.Config{
		Namespace: "engine-test",
		Nodes:     []*lexical.NodeType{lexical.NewElementType("block", 1)},
	})
	assert.Error(t, err)
}

func TestNewEditorFromSerializedState(t *testing.T) {
	ser := &lexical.SerializedEditorState{
		Root: lexical.SerializedNode{
			Type:    lexical.TypeRoot,
			Version: 1,
			Children: []lexical.SerializedNode{
				{
					Type:    lexical.TypeParagraph,
					Version: 1,
					Children: []lexical.SerializedNode{
						{Type: lexical.TypeText, Version: 1, Text: "seeded", Mode: "normal"},
					},
				},
			},
		},
	}

	ed, err := lexical.NewEditor(lexical.Config{
		Namespace:   "engine-test",
		Nodes:       lexical.CoreNodes(),
		EditorState: ser,
	})
	assert.NoError(t, err)
	assert.Equal(t, "seeded", ed.TextContent())
	assert.Equal(t, 3, ed.State().NodeCount())
}

func TestNewEditorRoutesImportFailure(t *testing.T) {
	var captured error
	_, err := lexical.NewEditor(lexical.Config{
		Namespace: "engine-test",
		Nodes:     lexical.CoreNodes(),
		OnError:   func(err error) { captured = err },
		EditorState: &lexical.SerializedEditorState{
			Root: lexical.SerializedNode{
				Type:     lexical.TypeRoot,
				Version:  1,
				Children: []lexical.SerializedNode{{Type: "mystery", Version: 1}},
			},
		},
	})

	assert.Error(t, err)
	assert.Equal(t, err, captured)
	var unknown *lexical.UnknownTypeError
	assert.True(t, errors.As(err, &unknown))
}

func TestUpdateCommitsAppendedNodes(t *testing.T) {
	ed := newTestEditor(t)
	para, txt := seedParagraph(t, ed, "hi")

	st := ed.State()
	assert.Equal(t, 3, st.NodeCount())

	n, ok := st.Node(para)
	assert.True(t, ok)
	assert.Equal(t, lexical.TypeParagraph, n.Type())
	assert.Equal(t, lexical.RootKey, n.ParentKey())

	child, ok := st.Node(txt)
	assert.True(t, ok)
	assert.Equal(t, para, child.ParentKey())
	assert.Equal(t, "hi", ed.TextContent())
}

func TestUpdateKeepsCommittedSnapshotsIntact(t *testing.T) {
	ed := newTestEditor(t)
	_, txt := seedParagraph(t, ed, "before")
	prev := ed.State()

	err := ed.Update(func(u *lexical.Update) error {
		return u.SetText(txt, "after")
	})
	assert.NoError(t, err)

	prevNode, _ := prev.Node(txt)
	nextNode, _ := ed.State().Node(txt)

	assert.Equal(t, "before", prevNode.(*lexical.TextNode).Text)
	assert.Equal(t, "after", nextNode.(*lexical.TextNode).Text)
	// The writable copy keeps the key; only the instance differs.
	assert.Equal(t, prevNode.Key(), nextNode.Key())
	assert.NotSame(t, prevNode, nextNode)
}

func TestUpdateSharesUntouchedNodes(t *testing.T) {
	ed := newTestEditor(t)
	_, txt := seedParagraph(t, ed, "shared")
	otherPara, _ := seedParagraph(t, ed, "touched")
	prev := ed.State()

	err := ed.Update(func(u *lexical.Update) error {
		_, err := u.Writable(otherPara)
		return err
	})
	assert.NoError(t, err)

	prevNode, _ := prev.Node(txt)
	nextNode, _ := ed.State().Node(txt)
	assert.Same(t, prevNode, nextNode)
}

func TestUpdateErrorDiscardsChangesAndRoutes(t *testing.T) {
	var captured error
	ed, err := lexical.NewEditor(lexical.Config{
		Namespace: "engine-test",
		Nodes:     lexical.CoreNodes(),
		OnError:   func(err error) { captured = err },
	})
	if err != nil {
		t.Fatalf("failed to construct editor: %v", err)
	}

	boom := errors.New("boom")
	prev := ed.State()
	err = ed.Update(func(u *lexical.Update) error {
		if _, err := u.Append(lexical.RootKey, lexical.NewParagraphNode()); err != nil {
			return err
		}
		return boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, boom, captured)
	assert.Same(t, prev, ed.State())
	assert.Equal(t, 1, ed.State().NodeCount())
}

func TestUpdateListenerReceivesDirtyKeys(t *testing.T) {
	ed := newTestEditor(t)

	var gotState *lexical.EditorState
	var gotDirty []lexical.NodeKey
	calls := 0
	remove := ed.RegisterUpdateListener(func(state *lexical.EditorState, dirty []lexical.NodeKey) {
		calls++
		gotState = state
		gotDirty = dirty
	})

	para, txt := seedParagraph(t, ed, "hi")
	assert.Equal(t, 1, calls)
	assert.Same(t, ed.State(), gotState)
	assert.Contains(t, gotDirty, para)
	assert.Contains(t, gotDirty, txt)
	assert.Contains(t, gotDirty, lexical.RootKey)

	remove()
	seedParagraph(t, ed, "again")
	assert.Equal(t, 1, calls)
}

func TestUpdateNoopSkipsListeners(t *testing.T) {
	ed := newTestEditor(t)

	calls := 0
	ed.RegisterUpdateListener(func(*lexical.EditorState, []lexical.NodeKey) { calls++ })

	err := ed.Update(func(u *lexical.Update) error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, 0, calls)
}

func TestRemoveDestroysSubtree(t *testing.T) {
	ed := newTestEditor(t)
	para, txt := seedParagraph(t, ed, "gone")

	err := ed.Update(func(u *lexical.Update) error {
		return u.Remove(para)
	})
	assert.NoError(t, err)

	st := ed.State()
	assert.Equal(t, 1, st.NodeCount())
	_, ok := st.Node(para)
	assert.False(t, ok)
	_, ok = st.Node(txt)
	assert.False(t, ok)

	root := st.Root().(*lexical.ElementNode)
	assert.Equal(t, 0, root.ChildCount())
}

func TestRemovedKeysAreNeverReassigned(t *testing.T) {
	ed := newTestEditor(t)
	para, txt := seedParagraph(t, ed, "gone")

	err := ed.Update(func(u *lexical.Update) error {
		return u.Remove(para)
	})
	assert.NoError(t, err)

	var next lexical.NodeKey
	err = ed.Update(func(u *lexical.Update) error {
		var err error
		next, err = u.Append(lexical.RootKey, lexical.NewParagraphNode())
		return err
	})
	assert.NoError(t, err)
	assert.NotEqual(t, para, next)
	assert.NotEqual(t, txt, next)
}

func TestRemoveRootRejected(t *testing.T) {
	ed := newTestEditor(t)
	err := ed.Update(func(u *lexical.Update) error {
		return u.Remove(lexical.RootKey)
	})
	assert.ErrorIs(t, err, lexical.ErrDetachRoot)
}

func TestInsertBeforeOrdersSiblings(t *testing.T) {
	ed := newTestEditor(t)
	para, _ := seedParagraph(t, ed, "second")

	var first lexical.NodeKey
	err := ed.Update(func(u *lexical.Update) error {
		var err error
		first, err = u.InsertBefore(para, lexical.NewParagraphNode())
		return err
	})
	assert.NoError(t, err)

	root := ed.State().Root().(*lexical.ElementNode)
	assert.Equal(t, []lexical.NodeKey{first, para}, root.Children())
}

func TestMoveReparents(t *testing.T) {
	ed := newTestEditor(t)
	paraA, txt := seedParagraph(t, ed, "hi")
	paraB, _ := seedParagraph(t, ed, "target")

	err := ed.Update(func(u *lexical.Update) error {
		return u.Move(txt, paraB)
	})
	assert.NoError(t, err)

	st := ed.State()
	moved, _ := st.Node(txt)
	assert.Equal(t, paraB, moved.ParentKey())

	a, _ := st.Node(paraA)
	assert.Equal(t, 0, a.(*lexical.ElementNode).ChildCount())
	b, _ := st.Node(paraB)
	assert.Equal(t, 2, b.(*lexical.ElementNode).ChildCount())
}

func TestMoveIntoOwnSubtreeRejected(t *testing.T) {
	ed := newTestEditor(t)

	var outer, inner lexical.NodeKey
	err := ed.Update(func(u *lexical.Update) error {
		var err error
		outer, err = u.Append(lexical.RootKey, lexical.NewParagraphNode())
		if err != nil {
			return err
		}
		inner, err = u.Append(outer, lexical.NewParagraphNode())
		return err
	})
	if err != nil {
		t.Fatalf("failed to seed tree: %v", err)
	}

	err = ed.Update(func(u *lexical.Update) error {
		return u.Move(outer, inner)
	})
	assert.ErrorIs(t, err, lexical.ErrWouldCycle)
}

func TestAppendAttachedNodeRejected(t *testing.T) {
	ed := newTestEditor(t)
	para, txt := seedParagraph(t, ed, "hi")
	_ = para

	err := ed.Update(func(u *lexical.Update) error {
		attached, ok := u.State().Node(txt)
		if !ok {
			t.Fatal("text node missing")
		}
		_, err := u.Append(lexical.RootKey, attached)
		return err
	})
	assert.ErrorIs(t, err, lexical.ErrAlreadyAttached)
}

func TestSetTextRejectsNonText(t *testing.T) {
	ed := newTestEditor(t)
	para, _ := seedParagraph(t, ed, "hi")

	err := ed.Update(func(u *lexical.Update) error {
		return u.SetText(para, "nope")
	})
	assert.ErrorIs(t, err, lexical.ErrNotText)
}

func TestSetEditorStateReplacesDocument(t *testing.T) {
	ed := newTestEditor(t)
	seedParagraph(t, ed, "old")

	var dirty []lexical.NodeKey
	ed.RegisterUpdateListener(func(_ *lexical.EditorState, d []lexical.NodeKey) { dirty = d })

	err := ed.SetEditorState(&lexical.SerializedEditorState{
		Root: lexical.SerializedNode{
			Type:    lexical.TypeRoot,
			Version: 1,
			Children: []lexical.SerializedNode{
				{
					Type:    lexical.TypeParagraph,
					Version: 1,
					Children: []lexical.SerializedNode{
						{Type: lexical.TypeText, Version: 1, Text: "new", Mode: "normal"},
					},
				},
			},
		},
	})
	assert.NoError(t, err)
	assert.Equal(t, "new", ed.TextContent())
	// Replacing the document dirties every node in the new tree.
	assert.Len(t, dirty, ed.State().NodeCount())
}

func TestExportMatchesState(t *testing.T) {
	ed := newTestEditor(t)
	seedParagraph(t, ed, "hi")

	ser, err := ed.Export()
	assert.NoError(t, err)
	assert.Equal(t, lexical.TypeRoot, ser.Root.Type)
	assert.Len(t, ser.Root.Children, 1)
	assert.Equal(t, "hi", ser.Root.Children[0].Children[0].Text)

	raw, err := ed.ToJSON()
	assert.NoError(t, err)
	assert.True(t, lexical.LooksLikeState(string(raw)))
}

func TestReadObservesCurrentState(t *testing.T) {
	ed := newTestEditor(t)
	seedParagraph(t, ed, "hi")

	var count int
	ed.Read(func(st *lexical.EditorState) { count = st.NodeCount() })
	assert.Equal(t, 3, count)
}
