package checkout

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/farhxn/foodcourt-backend/internal/cart"
)

func TestManagerReturnsSameOrchestratorPerSession(t *testing.T) {
	t.Parallel()

	carts := cart.NewRegistry()
	mgr, err := NewManager(carts, &stubIntentClient{}, func() (PaymentSheet, error) {
		return &stubSheet{}, nil
	}, testConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	a, err := mgr.OrchestratorFor("sess-1")
	if err != nil {
		t.Fatalf("OrchestratorFor: %v", err)
	}
	b, err := mgr.OrchestratorFor("sess-1")
	if err != nil {
		t.Fatalf("OrchestratorFor: %v", err)
	}
	if a != b {
		t.Fatal("expected one orchestrator per session")
	}

	c, err := mgr.OrchestratorFor("sess-2")
	if err != nil {
		t.Fatalf("OrchestratorFor: %v", err)
	}
	if c == a {
		t.Fatal("expected distinct orchestrators for distinct sessions")
	}
}

func TestManagerOrchestratorUsesSessionCart(t *testing.T) {
	t.Parallel()

	carts := cart.NewRegistry()
	mgr, err := NewManager(carts, &stubIntentClient{}, func() (PaymentSheet, error) {
		return &stubSheet{}, nil
	}, testConfig(), nil, nil)
	if err != nil {
		t.Fatalf("NewManager: %v", err)
	}

	carts.SessionFor("sess-1").With(func(c *cart.Store) {
		c.AddItem(cart.Item{MenuItemID: "p1", Price: decimal.NewFromInt(3)})
	})

	orch, err := mgr.OrchestratorFor("sess-1")
	if err != nil {
		t.Fatalf("OrchestratorFor: %v", err)
	}
	if orch.cart.TotalItems() != 1 {
		t.Fatal("orchestrator must see the session's cart")
	}
}
