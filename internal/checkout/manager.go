package checkout

import (
	"fmt"
	"sync"

	"github.com/farhxn/foodcourt-backend/internal/cart"
	"github.com/farhxn/foodcourt-backend/pkg/logger"
	"github.com/farhxn/foodcourt-backend/pkg/metrics"
)

// SheetFactory builds a fresh payment sheet for one session's orchestrator.
type SheetFactory func() (PaymentSheet, error)

// Manager hands out one orchestrator per cart session so the in-flight
// guard spans every request a session makes.
type Manager struct {
	mu            sync.Mutex
	orchestrators map[string]*Orchestrator

	carts    *cart.Registry
	intents  IntentClient
	newSheet SheetFactory
	cfg      Config
	logg     *logger.Logger
	stats    *metrics.CheckoutMetrics
}

// NewManager wires the checkout manager.
func NewManager(carts *cart.Registry, intents IntentClient, newSheet SheetFactory, cfg Config, logg *logger.Logger, stats *metrics.CheckoutMetrics) (*Manager, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart registry required")
	}
	if intents == nil {
		return nil, fmt.Errorf("intent client required")
	}
	if newSheet == nil {
		return nil, fmt.Errorf("sheet factory required")
	}
	return &Manager{
		orchestrators: map[string]*Orchestrator{},
		carts:         carts,
		intents:       intents,
		newSheet:      newSheet,
		cfg:           cfg,
		logg:          logg,
		stats:         stats,
	}, nil
}

// OrchestratorFor returns the session's orchestrator, creating it on first
// use against the session's cart.
func (m *Manager) OrchestratorFor(sessionID string) (*Orchestrator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if orch, ok := m.orchestrators[sessionID]; ok {
		return orch, nil
	}

	sheet, err := m.newSheet()
	if err != nil {
		return nil, fmt.Errorf("building payment sheet: %w", err)
	}

	orch, err := NewOrchestrator(m.carts.SessionFor(sessionID), m.intents, sheet, m.cfg, m.logg, m.stats)
	if err != nil {
		return nil, err
	}
	m.orchestrators[sessionID] = orch
	return orch, nil
}
