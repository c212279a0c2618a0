package lexical_test

import (
	"errors"
	"fmt"
	"testing"

	"doc-engine-be/pkg/lexical"
)

func TestNewRegistryRejectsDuplicateTag(t *testing.T) {
	_, err := lexical.NewRegistry(
		lexical.NewElementType("block", 1),
		lexical.NewTextType("leaf", 1),
		lexical.NewElementType("block", 2),
	)

	var dup *lexical.DuplicateTypeError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTypeError, got %v", err)
	}
	if dup.Tag != "block" {
		t.Errorf("expected duplicate tag %q, got %q", "block", dup.Tag)
	}
}

func TestNewRegistryDistinctTags(t *testing.T) {
	var types []*lexical.NodeType
	for i := 0; i < 8; i++ {
		types = append(types, lexical.NewElementType(fmt.Sprintf("block_%d", i), 1))
	}

	reg, err := lexical.NewRegistry(types...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reg.Len() != len(types) {
		t.Fatalf("expected %d types, got %d", len(types), reg.Len())
	}

	for i, want := range types {
		got, ok := reg.Lookup(want.Tag)
		if !ok {
			t.Fatalf("tag %q not found", want.Tag)
		}
		if got != want {
			t.Errorf("tag %q resolved to the wrong descriptor", want.Tag)
		}
		if reg.Types()[i].Tag != want.Tag {
			t.Errorf("registration order lost at %d: got %q", i, reg.Types()[i].Tag)
		}
	}
}

func TestNewRegistryValidation(t *testing.T) {
	tests := []struct {
		name  string
		types []*lexical.NodeType
	}{
		{"nil descriptor", []*lexical.NodeType{nil}},
		{"empty tag", []*lexical.NodeType{lexical.NewElementType("", 1)}},
		{"zero version", []*lexical.NodeType{lexical.NewElementType("block", 0)}},
		{"negative version", []*lexical.NodeType{lexical.NewElementType("block", -2)}},
		{"missing create", []*lexical.NodeType{{Tag: "block", Version: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := lexical.NewRegistry(tt.types...); err == nil {
				t.Error("expected construction to fail")
			}
		})
	}
}

func TestRegistryTypeUnknownTag(t *testing.T) {
	reg, err := lexical.NewRegistry(lexical.CoreNodes()...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = reg.Type("bogus")
	var unknown *lexical.UnknownTypeError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownTypeError, got %v", err)
	}
	if unknown.Tag != "bogus" {
		t.Errorf("expected tag %q, got %q", "bogus", unknown.Tag)
	}
}

func TestShouldUpdateDOMDefaultsFalse(t *testing.T) {
	typ := lexical.NewElementType("block", 1)
	prev := typ.Create()
	next := typ.Create()
	if lexical.ShouldUpdateDOM(typ, prev, next) {
		t.Error("element anchors are patched in place, never replaced")
	}
}
