package data

import (
	"context"
	"fmt"

	"github.com/Bukisoo/d3-force-tree-app/internal/event"
	"github.com/Bukisoo/d3-force-tree-app/internal/history"
	"github.com/Bukisoo/d3-force-tree-app/internal/layout"
	"github.com/Bukisoo/d3-force-tree-app/internal/log"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
	"github.com/Bukisoo/d3-force-tree-app/internal/places"
	"github.com/Bukisoo/d3-force-tree-app/internal/storage"
)

// AddNode appends a new top-level node. An empty name picks a random
// nearby station name.
func (m *Manager) AddNode(ctx context.Context, name string) (model.Node, error) {
	if name == "" {
		name = m.stationName(ctx)
	}
	n := m.graph.AddNode(name, model.DefaultColor)
	return n, m.commit(ctx, history.OpAdd, true, log.Fields{"id": n.ID, "name": n.Name})
}

// stationName picks a cached station name, fetching the list once more
// when the cache is empty.
func (m *Manager) stationName(ctx context.Context) string {
	if len(m.stations) == 0 {
		if at, err := m.locator.Locate(ctx); err == nil {
			names, err := m.lookup.Stations(ctx, at)
			if err != nil {
				m.logger.Warn(ctx, "Station lookup failed", log.Fields{"error": err})
			}
			m.stations = names
		}
	}
	if len(m.stations) == 0 {
		return places.FallbackName
	}
	return m.stations[m.rng.Intn(len(m.stations))]
}

// RemoveNode deletes a node and its subtree.
func (m *Manager) RemoveNode(ctx context.Context, id string) (bool, error) {
	removed := m.graph.RemoveNode(id)
	if removed == 0 {
		m.rejected(ctx, history.OpRemove, log.Fields{"id": id})
		return false, nil
	}
	return true, m.commit(ctx, history.OpRemove, true, log.Fields{"id": id, "removed": removed})
}

// UpdateProperty sets one field of a node. Note edits are saved but not
// snapshotted.
func (m *Manager) UpdateProperty(ctx context.Context, id, key, value string) (bool, error) {
	if !m.graph.UpdateProperty(id, key, value) {
		m.rejected(ctx, history.OpUpdate, log.Fields{"id": id, "key": key})
		return false, nil
	}
	return true, m.commit(ctx, history.OpUpdate, history.Significant(key), log.Fields{"id": id, "key": key})
}

// DetachNode lifts a nested node to the top level.
func (m *Manager) DetachNode(ctx context.Context, id string) (bool, error) {
	if !m.graph.DetachNode(id) {
		m.rejected(ctx, history.OpDetach, log.Fields{"id": id})
		return false, nil
	}
	return true, m.commit(ctx, history.OpDetach, true, log.Fields{"id": id})
}

// ReparentNode moves source under target, repainting the moved subtree.
func (m *Manager) ReparentNode(ctx context.Context, source, target string) (bool, error) {
	if !m.graph.ReparentNode(source, target, m.palette) {
		m.rejected(ctx, history.OpReparent, log.Fields{"source": source, "target": target})
		return false, nil
	}
	return true, m.commit(ctx, history.OpReparent, true, log.Fields{"source": source, "target": target})
}

// ToggleVisibility hides or shows a node's children.
func (m *Manager) ToggleVisibility(ctx context.Context, id string) (bool, error) {
	if !m.graph.ToggleVisibility(id) {
		m.rejected(ctx, history.OpToggle, log.Fields{"id": id})
		return false, nil
	}
	return true, m.commit(ctx, history.OpToggle, true, log.Fields{"id": id})
}

// Undo restores the previous snapshot. With one snapshot left it is a no-op.
func (m *Manager) Undo(ctx context.Context) (bool, error) {
	f, ok := m.history.Undo()
	if !ok {
		m.rejected(ctx, "Undo", nil)
		return false, nil
	}
	if err := m.graph.Reset(f); err != nil {
		return false, fmt.Errorf("history snapshot is invalid: %w", err)
	}
	m.palette.Observe(f)
	m.rebuild()
	m.logger.Info(ctx, "Undo", log.Fields{"snapshots": m.history.Len()})
	m.events.Publish(event.Event{Type: event.HistoryUndone, Data: m.history.Len()})
	return true, m.persist(ctx)
}

// Import replaces the forest. A forest that breaks the tree invariants is
// refused and the current one kept.
func (m *Manager) Import(ctx context.Context, f model.Forest) error {
	if err := m.graph.Reset(f); err != nil {
		return fmt.Errorf("cannot import forest: %w", err)
	}
	m.palette.Observe(f)
	return m.commit(ctx, history.OpImport, true, log.Fields{"nodes": m.graph.Len()})
}

// ImportFile imports a JSON or XML file chosen by extension.
func (m *Manager) ImportFile(ctx context.Context, path string) error {
	f, err := storage.FileImport(path, storage.FormatFromPath(path))
	if err != nil {
		return err
	}
	return m.Import(ctx, f)
}

// ExportFile writes the forest to a JSON or XML file chosen by extension.
func (m *Manager) ExportFile(path string) error {
	return storage.FileExport(m.graph.Forest(), path, storage.FormatFromPath(path))
}

// Forest returns a deep copy of the live forest.
func (m *Manager) Forest() model.Forest {
	return m.graph.Forest()
}

// Node returns a copy of one node and its subtree.
func (m *Manager) Node(id string) (model.Node, bool) {
	return m.graph.Node(id)
}

// Select announces that a node was picked for editing. Unknown ids are
// ignored.
func (m *Manager) Select(id string) bool {
	if !m.graph.Contains(id) {
		return false
	}
	m.events.Publish(event.Event{Type: event.NodeSelected, Data: id})
	return true
}

// Visible returns the flattened visible set and its links.
func (m *Manager) Visible() ([]model.VisibleNode, []model.Link) {
	return m.graph.Visible()
}

// Simulation returns the live layout.
func (m *Manager) Simulation() *layout.Simulation {
	return m.sim
}

// History returns the snapshot stack.
func (m *Manager) History() *history.Manager {
	return m.history
}

// Events returns the bus the Manager publishes on.
func (m *Manager) Events() *event.EventManager {
	return m.events
}

// Stations returns the cached station names.
func (m *Manager) Stations() []string {
	return append([]string(nil), m.stations...)
}

// Settle runs the layout until it stops or max ticks have run.
func (m *Manager) Settle(max int) int {
	return m.sim.Settle(max)
}

// Usage describes how much of the storage budget the forest takes.
type Usage struct {
	Bytes   int
	Percent float64
}

// StorageUsage reports the size of the last persisted key and value.
func (m *Manager) StorageUsage() Usage {
	return Usage{
		Bytes:   m.stored,
		Percent: float64(m.stored) / StorageBudget * 100,
	}
}
