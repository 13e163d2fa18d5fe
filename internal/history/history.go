// Package history keeps a bounded stack of forest snapshots for undo.
package history

import "github.com/Bukisoo/d3-force-tree-app/internal/model"

// DefaultDepth is the number of snapshots kept when no depth is configured.
const DefaultDepth = 10

// OperationType names the mutation that produced a snapshot.
type OperationType string

const (
	OpInitial  OperationType = "Initial"
	OpAdd      OperationType = "Add"
	OpRemove   OperationType = "Remove"
	OpDetach   OperationType = "Detach"
	OpReparent OperationType = "Reparent"
	OpToggle   OperationType = "Toggle"
	OpUpdate   OperationType = "Update"
	OpImport   OperationType = "Import"
)

// Snapshot is an independent copy of the forest after an operation.
type Snapshot struct {
	Op     OperationType
	Forest model.Forest
}

// Manager is a FIFO-bounded snapshot stack. Index 0 holds the oldest
// retained state.
type Manager struct {
	snapshots []Snapshot
	depth     int
}

// NewManager creates a Manager holding at most depth snapshots.
func NewManager(depth int) *Manager {
	if depth < 2 {
		depth = DefaultDepth
	}
	return &Manager{depth: depth}
}

// Record deep-clones f onto the stack, evicting the oldest snapshot when
// the stack is full.
func (m *Manager) Record(op OperationType, f model.Forest) {
	m.snapshots = append(m.snapshots, Snapshot{Op: op, Forest: f.Clone()})
	if over := len(m.snapshots) - m.depth; over > 0 {
		m.snapshots = append(m.snapshots[:0:0], m.snapshots[over:]...)
	}
}

// Undo drops the newest snapshot and returns a copy of the one below it.
// With fewer than two snapshots it does nothing and reports false.
func (m *Manager) Undo() (model.Forest, bool) {
	if len(m.snapshots) < 2 {
		return nil, false
	}
	m.snapshots = m.snapshots[:len(m.snapshots)-1]
	return m.snapshots[len(m.snapshots)-1].Forest.Clone(), true
}

// Reset clears the stack and records f as the initial state.
func (m *Manager) Reset(f model.Forest) {
	m.snapshots = nil
	m.Record(OpInitial, f)
}

// Len returns the number of retained snapshots.
func (m *Manager) Len() int {
	return len(m.snapshots)
}

// Depth returns the capacity of the stack.
func (m *Manager) Depth() int {
	return m.depth
}

// Top returns a copy of the newest snapshot.
func (m *Manager) Top() (Snapshot, bool) {
	if len(m.snapshots) == 0 {
		return Snapshot{}, false
	}
	s := m.snapshots[len(m.snapshots)-1]
	return Snapshot{Op: s.Op, Forest: s.Forest.Clone()}, true
}

// Operations lists the operation of every snapshot, oldest first.
func (m *Manager) Operations() []OperationType {
	ops := make([]OperationType, len(m.snapshots))
	for i, s := range m.snapshots {
		ops[i] = s.Op
	}
	return ops
}

// Significant reports whether a property edit should produce a snapshot.
// Note edits are too frequent to be worth one.
func Significant(key string) bool {
	return key != model.PropNotes
}
