package testutils

import (
	"sync"

	"github.com/evdnx/fluxback/types"
)

// MockExecutor implements executor.Executor in-memory with zero slippage
// (fills exactly at bar.Close), recording every order for assertions.
type MockExecutor struct {
	mu        sync.RWMutex
	cash      float64
	positions map[string]types.Position
	orders    []types.Order
	fills     []types.Fill
}

// NewMockExecutor creates a fresh executor with the supplied starting cash.
func NewMockExecutor(startCash float64) *MockExecutor {
	return &MockExecutor{
		cash:      startCash,
		positions: make(map[string]types.Position),
	}
}

// Execute fills order at bar.Close with no slippage and updates cash/position
// using the same flip-aware accounting as the real simulator.
func (m *MockExecutor) Execute(order types.Order, bar types.Bar, realizedVol float64) types.Fill {
	m.mu.Lock()
	defer m.mu.Unlock()

	fillPrice := bar.Close
	if order.Side == types.Buy {
		m.cash -= fillPrice * order.Size
	} else {
		m.cash += fillPrice * order.Size
	}

	pos := m.positions[order.Symbol]
	m.positions[order.Symbol] = applyFill(pos, order.Side, order.Size, fillPrice)

	fill := types.Fill{Order: order, Price: fillPrice, Size: order.Size, Timestamp: bar.Timestamp}
	m.orders = append(m.orders, order)
	m.fills = append(m.fills, fill)
	return fill
}

// Cash returns the current cash balance.
func (m *MockExecutor) Cash() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cash
}

// Position returns the current position for symbol.
func (m *MockExecutor) Position(symbol string) types.Position {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.positions[symbol]
}

// Orders returns a copy of all submitted orders, in submission order.
func (m *MockExecutor) Orders() []types.Order {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Order, len(m.orders))
	copy(out, m.orders)
	return out
}

// applyFill mirrors executor.applyFill; duplicated here rather than
// exported across packages to keep the mock dependency-free of the real
// executor package (tests for strategy must not need to import executor).
func applyFill(pos types.Position, side types.Side, size, fillPrice float64) types.Position {
	if pos.Size == 0 {
		signed := size
		if side == types.Sell {
			signed = -size
		}
		return types.Position{Size: signed, Avg: fillPrice}
	}

	long := pos.Size > 0
	sameDirection := (side == types.Buy && long) || (side == types.Sell && !long)
	absPos := abs(pos.Size)

	if sameDirection {
		newAbs := absPos + size
		newAvg := (pos.Avg*absPos + fillPrice*size) / newAbs
		signed := newAbs
		if !long {
			signed = -newAbs
		}
		return types.Position{Size: signed, Avg: newAvg}
	}

	switch {
	case size < absPos:
		remaining := absPos - size
		signed := remaining
		if !long {
			signed = -remaining
		}
		return types.Position{Size: signed, Avg: pos.Avg}
	case size == absPos:
		return types.Position{Size: 0, Avg: 0}
	default:
		residual := size - absPos
		signed := residual
		if long {
			signed = -residual
		}
		return types.Position{Size: signed, Avg: fillPrice}
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
