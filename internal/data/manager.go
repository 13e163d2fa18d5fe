// Package data provides the editor store: one Manager owning the forest
// and coordinating the palette, history, layout and persistence.
package data

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/config"
	"github.com/Bukisoo/d3-force-tree-app/internal/event"
	"github.com/Bukisoo/d3-force-tree-app/internal/graph"
	"github.com/Bukisoo/d3-force-tree-app/internal/history"
	"github.com/Bukisoo/d3-force-tree-app/internal/layout"
	"github.com/Bukisoo/d3-force-tree-app/internal/log"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
	"github.com/Bukisoo/d3-force-tree-app/internal/palette"
	"github.com/Bukisoo/d3-force-tree-app/internal/places"
	"github.com/Bukisoo/d3-force-tree-app/internal/storage"
)

// StorageBudget is the byte budget StorageUsage is measured against.
const StorageBudget = 5 * 1024 * 1024

// Options are the collaborators of a Manager. Store and Config are required.
type Options struct {
	Store   storage.Store
	Config  *config.Config
	Logger  *log.Logger
	Locator places.Locator
	Lookup  places.Lookup
	Rand    *rand.Rand
	Clock   func() time.Time
}

// Manager is the single owner of the live forest.
type Manager struct {
	store    storage.Store
	key      string
	cfg      *config.Config
	logger   *log.Logger
	events   *event.EventManager
	locator  places.Locator
	lookup   places.Lookup
	rng      *rand.Rand
	graph    *graph.Model
	palette  *palette.Allocator
	history  *history.Manager
	sim      *layout.Simulation
	stations []string
	stored   int
}

type noLookup struct{}

func (noLookup) Stations(context.Context, places.Coordinates) ([]string, error) { return nil, nil }

// NewManager wires a Manager. Call Load before using it.
func NewManager(opts Options) (*Manager, error) {
	if opts.Store == nil {
		return nil, errors.New("data manager needs a store")
	}
	if opts.Config == nil {
		return nil, errors.New("data manager needs a config")
	}
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Locator == nil {
		opts.Locator = places.FixedLocator{}
	}
	if opts.Lookup == nil {
		opts.Lookup = noLookup{}
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	cfg := opts.Config
	g, err := graph.FromForest(DefaultForest(nil), graph.WithClock(opts.Clock))
	if err != nil {
		return nil, fmt.Errorf("failed to build default forest: %w", err)
	}

	m := &Manager{
		store:   opts.Store,
		key:     cfg.Storage.Key,
		cfg:     cfg,
		logger:  opts.Logger,
		events:  event.NewEventManager(opts.Logger),
		locator: opts.Locator,
		lookup:  opts.Lookup,
		rng:     opts.Rand,
		graph:   g,
		palette: palette.New(cfg.Palette.Colors, cfg.Palette.DefaultColor, opts.Rand),
		history: history.NewManager(cfg.History.Depth),
		sim:     layout.NewSimulation(LayoutConfig(cfg.Layout), opts.Rand),
	}
	return m, nil
}

// LayoutConfig converts the configuration section to simulation constants.
func LayoutConfig(c config.LayoutConfig) layout.Config {
	return layout.Config{
		Width:           c.Width,
		Height:          c.Height,
		ChargeStrength:  c.ChargeStrength,
		LinkDistance:    c.LinkDistance,
		CenterStrength:  c.CenterStrength,
		CollideDistance: c.CollideDistance,
		AlphaDecay:      c.AlphaDecay,
		AlphaMin:        c.AlphaMin,
		VelocityDecay:   c.VelocityDecay,
		Margin:          c.Margin,
		DragAlphaTarget: c.DragAlphaTarget,
	}
}

// Load reads the persisted forest. Absent, empty or malformed data is
// replaced by a freshly generated default forest, which is saved. Only a
// failing store is reported as an error.
func (m *Manager) Load(ctx context.Context) error {
	forest, err := m.read(ctx)
	if err != nil {
		return err
	}

	if forest != nil {
		if err := m.graph.Reset(forest); err != nil {
			m.logger.Warn(ctx, "Persisted forest violates invariants, regenerating", log.Fields{"error": err})
			forest = nil
		}
	}
	if forest == nil {
		labels, located := places.Labels(ctx, m.locator, m.lookup)
		m.stations = labels
		forest = DefaultForest(labels)
		if err := m.graph.Reset(forest); err != nil {
			return fmt.Errorf("failed to build default forest: %w", err)
		}
		m.logger.Info(ctx, "Generated default forest", log.Fields{"located": located, "labels": len(labels)})
		if err := m.persist(ctx); err != nil {
			return err
		}
	}

	m.history.Reset(m.graph.Forest())
	m.palette.Reset()
	m.palette.Observe(m.graph.Forest())
	m.rebuild()
	m.events.Publish(event.Event{Type: event.ForestLoaded, Data: m.graph.Len()})
	return nil
}

func (m *Manager) read(ctx context.Context) (model.Forest, error) {
	raw, err := m.store.Get(ctx, m.key)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", m.key, err)
	}
	m.stored = len(m.key) + len(raw)
	forest, err := storage.DecodeForest(raw)
	if err != nil {
		m.logger.Warn(ctx, "Persisted forest is malformed, regenerating", log.Fields{"error": err})
		return nil, nil
	}
	if len(forest) == 0 {
		return nil, nil
	}
	return forest, nil
}

func (m *Manager) persist(ctx context.Context) error {
	raw, err := storage.EncodeForest(m.graph.Forest())
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, m.key, raw); err != nil {
		m.logger.Error(ctx, "Failed to save forest", log.Fields{"key": m.key, "error": err})
		m.events.Publish(event.Event{Type: event.StoreFailed, Data: err})
		return fmt.Errorf("failed to save forest: %w", err)
	}
	m.stored = len(m.key) + len(raw)
	return nil
}

// rebuild replaces the simulation input with the current visible set.
func (m *Manager) rebuild() {
	m.sim.SetGraph(m.graph.Visible())
}

// commit finishes a change: snapshot when significant, new layout input,
// then persistence.
func (m *Manager) commit(ctx context.Context, op history.OperationType, significant bool, fields log.Fields) error {
	if significant {
		m.history.Record(op, m.graph.Forest())
	}
	m.rebuild()
	m.logger.Info(ctx, "Forest changed", mergeFields(fields, log.Fields{"op": string(op), "significant": significant}))
	m.events.Publish(event.Event{Type: event.ForestChanged, Data: op})
	return m.persist(ctx)
}

func (m *Manager) rejected(ctx context.Context, op history.OperationType, fields log.Fields) {
	m.logger.Debug(ctx, "Request rejected", mergeFields(fields, log.Fields{"op": string(op)}))
}

func mergeFields(a, b log.Fields) log.Fields {
	out := make(log.Fields, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}
	return out
}
