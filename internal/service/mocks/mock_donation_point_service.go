package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"donationpoints/internal/model"
	"donationpoints/internal/service"
)

type MockDonationPointService struct {
	mock.Mock
}

func (m *MockDonationPointService) Create(ctx context.Context, payload any, opts service.CreateOptions) (*model.DonationPoint, error) {
	args := m.Called(ctx, payload, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonationPoint), args.Error(1)
}

func (m *MockDonationPointService) List(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DonationPoint), args.Error(1)
}

func (m *MockDonationPointService) Snapshot(ctx context.Context, f model.ListFilter) (*service.SnapshotResult, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.SnapshotResult), args.Error(1)
}
