package testutil

import (
	"context"
	"sync"

	"github.com/realstatepro/billing/internal/logger"
	"github.com/realstatepro/billing/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil)

// MockPostgresClient is a mock implementation of postgres client for testing
type MockPostgresClient struct {
	logger *logger.Logger

	mu      sync.Mutex
	txCalls int
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient(logger *logger.Logger) *MockPostgresClient {
	return &MockPostgresClient{logger: logger}
}

// WithTx executes the given function without a real transaction; the
// in-memory stores have no rollback to coordinate. Calls are counted so
// tests can assert a code path ran under transaction scoping.
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.mu.Lock()
	c.txCalls++
	c.mu.Unlock()
	return fn(ctx)
}

// TxCalls returns how many times WithTx was entered.
func (c *MockPostgresClient) TxCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txCalls
}
