package commands_test

import (
	"context"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/order"

	"github.com/stretchr/testify/mock"
)

type MockDraftRepository struct{ mock.Mock }

func (m *MockDraftRepository) SaveItems(ctx context.Context, sessionID kernel.SessionID, items []order.Item) error {
	args := m.Called(ctx, sessionID, items)
	return args.Error(0)
}

func (m *MockDraftRepository) SaveAddress(ctx context.Context, sessionID kernel.SessionID, address order.ShippingAddress) error {
	args := m.Called(ctx, sessionID, address)
	return args.Error(0)
}

func (m *MockDraftRepository) SaveTotal(ctx context.Context, sessionID kernel.SessionID, total int64) error {
	args := m.Called(ctx, sessionID, total)
	return args.Error(0)
}

func (m *MockDraftRepository) LoadDraft(ctx context.Context, sessionID kernel.SessionID) (order.Draft, error) {
	args := m.Called(ctx, sessionID)
	return args.Get(0).(order.Draft), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Put(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, sessionID kernel.SessionID) (*order.Order, error) {
	args := m.Called(ctx, sessionID)
	if o := args.Get(0); o != nil {
		return o.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) ListIndexed(ctx context.Context) ([]kernel.SessionID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]kernel.SessionID), args.Error(1)
}

func (m *MockOrderRepository) RebuildIndex(ctx context.Context) ([]kernel.SessionID, error) {
	args := m.Called(ctx)
	return args.Get(0).([]kernel.SessionID), args.Error(1)
}

type MockOrderEventPublisher struct{ mock.Mock }

func (m *MockOrderEventPublisher) Publish(ctx context.Context, event order.ChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
