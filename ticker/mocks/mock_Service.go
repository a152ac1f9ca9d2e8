// Package mocks provides test doubles for the ticker service.
package mocks

import (
	"context"

	mock "github.com/stretchr/testify/mock"

	ticker "companyintel/ticker"
)

// MockService is a mock type for the Service interface.
type MockService struct {
	mock.Mock
}

// Lookup provides a mock function with given fields: ctx, symbol
func (_m *MockService) Lookup(ctx context.Context, symbol string) (*ticker.Quote, error) {
	ret := _m.Called(ctx, symbol)

	if len(ret) == 0 {
		panic("no return value specified for Lookup")
	}

	var r0 *ticker.Quote
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) (*ticker.Quote, error)); ok {
		return rf(ctx, symbol)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) *ticker.Quote); ok {
		r0 = rf(ctx, symbol)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*ticker.Quote)
		}
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, symbol)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewMockService creates a new instance of MockService. It also registers a
// cleanup function to assert the mocks expectations.
func NewMockService(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockService {
	m := &MockService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
