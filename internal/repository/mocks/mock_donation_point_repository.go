package mocks

import (
	"context"

	"donationpoints/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockDonationPointRepository struct {
	mock.Mock
}

func (m *MockDonationPointRepository) Create(ctx context.Context, p *model.DonationPoint) (*model.DonationPoint, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonationPoint), args.Error(1)
}

func (m *MockDonationPointRepository) FindMany(ctx context.Context, f model.ListFilter) ([]model.DonationPoint, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DonationPoint), args.Error(1)
}

func (m *MockDonationPointRepository) FindNearby(ctx context.Context, b model.Bounds) (*model.DonationPoint, error) {
	args := m.Called(ctx, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DonationPoint), args.Error(1)
}
