package history

import (
	"reflect"
	"strconv"
	"testing"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

func forestNamed(name string) model.Forest {
	return model.Forest{model.NewNode(model.RootID, name, "")}
}

func TestRecord_Lengths(t *testing.T) {
	for k := 0; k <= 15; k++ {
		t.Run(strconv.Itoa(k), func(t *testing.T) {
			m := NewManager(DefaultDepth)
			m.Reset(forestNamed("initial"))
			for i := 1; i <= k; i++ {
				m.Record(OpUpdate, forestNamed(strconv.Itoa(i)))
			}
			want := k + 1
			if want > DefaultDepth {
				want = DefaultDepth
			}
			if m.Len() != want {
				t.Fatalf("expected length %d, got %d", want, m.Len())
			}
			if k > 9 {
				oldest := m.snapshots[0].Forest[0].Name
				if oldest != strconv.Itoa(k-9) {
					t.Errorf("expected oldest snapshot %d, got %s", k-9, oldest)
				}
			}
		})
	}
}

func TestRecord_DeepCopies(t *testing.T) {
	m := NewManager(DefaultDepth)
	f := forestNamed("a")
	m.Reset(f)
	f[0].Name = "mutated"
	top, _ := m.Top()
	if top.Forest[0].Name != "a" {
		t.Errorf("expected snapshot isolated from caller, got %q", top.Forest[0].Name)
	}
}

func TestUndo(t *testing.T) {
	m := NewManager(DefaultDepth)
	if _, ok := m.Undo(); ok {
		t.Error("expected undo on empty stack to be a no-op")
	}
	before := forestNamed("before")
	m.Reset(before)
	if _, ok := m.Undo(); ok {
		t.Error("expected undo with one snapshot to be a no-op")
	}
	m.Record(OpAdd, forestNamed("after"))

	got, ok := m.Undo()
	if !ok {
		t.Fatal("expected undo to succeed")
	}
	if !reflect.DeepEqual(got, before) {
		t.Errorf("expected %v, got %v", before, got)
	}
	if m.Len() != 1 {
		t.Errorf("expected 1 snapshot left, got %d", m.Len())
	}
	got[0].Name = "mutated"
	if top, _ := m.Top(); top.Forest[0].Name != "before" {
		t.Error("expected undo result independent of the stack")
	}
}

func TestOperations(t *testing.T) {
	m := NewManager(3)
	m.Reset(forestNamed("a"))
	m.Record(OpAdd, forestNamed("b"))
	m.Record(OpRemove, forestNamed("c"))
	m.Record(OpDetach, forestNamed("d"))
	want := []OperationType{OpAdd, OpRemove, OpDetach}
	if got := m.Operations(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestSignificant(t *testing.T) {
	if Significant(model.PropNotes) {
		t.Error("expected notes edits to be insignificant")
	}
	for _, key := range []string{model.PropName, model.PropColor, model.PropChildrenHidden} {
		if !Significant(key) {
			t.Errorf("expected %s edits to be significant", key)
		}
	}
}
