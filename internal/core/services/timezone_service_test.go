package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/core/services"
	"github.com/wocademy/utility-backend/internal/dto"
)

// --- Mock TimezoneRepository ---
type MockTimezoneRepository struct {
	mock.Mock
}

var _ portsrepo.TimezoneRepository = (*MockTimezoneRepository)(nil)

func (m *MockTimezoneRepository) SaveTimezone(ctx context.Context, tz domain.Timezone) (*domain.Timezone, error) {
	args := m.Called(ctx, tz)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timezone), args.Error(1)
}

func (m *MockTimezoneRepository) FindTimezoneByID(ctx context.Context, id int64) (*domain.Timezone, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Timezone), args.Error(1)
}

func (m *MockTimezoneRepository) ListTimezones(ctx context.Context) ([]domain.Timezone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timezone), args.Error(1)
}

func (m *MockTimezoneRepository) UpdateTimezone(ctx context.Context, tz domain.Timezone) error {
	args := m.Called(ctx, tz)
	return args.Error(0)
}

func (m *MockTimezoneRepository) DeleteTimezone(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// --- Mock TimezoneCache ---
type MockTimezoneCache struct {
	mock.Mock
}

var _ portsrepo.TimezoneCache = (*MockTimezoneCache)(nil)

func (m *MockTimezoneCache) GetTimezones(ctx context.Context) ([]domain.Timezone, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Timezone), args.Error(1)
}

func (m *MockTimezoneCache) SetTimezones(ctx context.Context, tzs []domain.Timezone) error {
	args := m.Called(ctx, tzs)
	return args.Error(0)
}

func (m *MockTimezoneCache) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// --- Test Suite Setup ---
type TimezoneServiceTestSuite struct {
	suite.Suite
	mockRepo  *MockTimezoneRepository
	mockCache *MockTimezoneCache
	service   portssvc.TimezoneSvcFacade
	ctx       context.Context
	sample    []domain.Timezone
}

func (suite *TimezoneServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockTimezoneRepository)
	suite.mockCache = new(MockTimezoneCache)
	suite.service = services.NewTimezoneService(suite.mockRepo, suite.mockCache)
	suite.ctx = context.Background()
	suite.sample = []domain.Timezone{
		{ID: 1, Name: "Asia/Kolkata", Abbreviation: "IST", UTCOffset: "+05:30"},
		{ID: 2, Name: "Europe/London", Abbreviation: "GMT", UTCOffset: "+00:00"},
	}
}

func (suite *TimezoneServiceTestSuite) TestList_CacheHitSkipsDatabase() {
	suite.mockCache.On("GetTimezones", suite.ctx).Return(suite.sample, nil).Once()

	tzs, err := suite.service.ListTimezones(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.sample, tzs)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListTimezones", mock.Anything)
}

func (suite *TimezoneServiceTestSuite) TestList_CacheMissRepopulates() {
	suite.mockCache.On("GetTimezones", suite.ctx).Return(nil, nil).Once()
	suite.mockRepo.On("ListTimezones", suite.ctx).Return(suite.sample, nil).Once()
	suite.mockCache.On("SetTimezones", suite.ctx, suite.sample).Return(nil).Once()

	tzs, err := suite.service.ListTimezones(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.sample, tzs)
	suite.mockCache.AssertExpectations(suite.T())
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TimezoneServiceTestSuite) TestList_CacheErrorFallsBackToDatabase() {
	suite.mockCache.On("GetTimezones", suite.ctx).Return(nil, errors.New("redis down")).Once()
	suite.mockRepo.On("ListTimezones", suite.ctx).Return(suite.sample, nil).Once()
	suite.mockCache.On("SetTimezones", suite.ctx, suite.sample).Return(errors.New("redis still down")).Once()

	tzs, err := suite.service.ListTimezones(suite.ctx)

	suite.Require().NoError(err)
	suite.Equal(suite.sample, tzs)
}

func (suite *TimezoneServiceTestSuite) TestCreate_InvalidatesCache() {
	saved := &suite.sample[0]
	suite.mockRepo.On("SaveTimezone", suite.ctx, mock.MatchedBy(func(tz domain.Timezone) bool {
		return tz.Name == "Asia/Kolkata"
	})).Return(saved, nil).Once()
	suite.mockCache.On("Invalidate", suite.ctx).Return(nil).Once()

	tz, err := suite.service.CreateTimezone(suite.ctx, dto.CreateTimezoneRequest{
		Name:         "Asia/Kolkata",
		Abbreviation: "IST",
		UTCOffset:    "+05:30",
	})

	suite.Require().NoError(err)
	suite.Equal("Asia/Kolkata", tz.Name)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *TimezoneServiceTestSuite) TestCreate_DuplicateName() {
	suite.mockRepo.On("SaveTimezone", suite.ctx, mock.Anything).Return(nil, apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateTimezone(suite.ctx, dto.CreateTimezoneRequest{
		Name:         "Asia/Kolkata",
		Abbreviation: "IST",
		UTCOffset:    "+05:30",
	})

	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything)
}

func (suite *TimezoneServiceTestSuite) TestUpdate_MergesAndInvalidates() {
	existing := suite.sample[0]
	newAbbr := "IST2"

	suite.mockRepo.On("FindTimezoneByID", suite.ctx, int64(1)).Return(&existing, nil).Once()
	suite.mockRepo.On("UpdateTimezone", suite.ctx, mock.MatchedBy(func(tz domain.Timezone) bool {
		return tz.Abbreviation == newAbbr && tz.Name == "Asia/Kolkata"
	})).Return(nil).Once()
	suite.mockCache.On("Invalidate", suite.ctx).Return(nil).Once()

	tz, err := suite.service.UpdateTimezone(suite.ctx, 1, dto.UpdateTimezoneRequest{Abbreviation: &newAbbr})

	suite.Require().NoError(err)
	suite.Equal(newAbbr, tz.Abbreviation)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *TimezoneServiceTestSuite) TestDelete_InvalidatesCache() {
	suite.mockRepo.On("DeleteTimezone", suite.ctx, int64(2)).Return(nil).Once()
	suite.mockCache.On("Invalidate", suite.ctx).Return(nil).Once()

	err := suite.service.DeleteTimezone(suite.ctx, 2)

	suite.Require().NoError(err)
	suite.mockCache.AssertExpectations(suite.T())
}

func (suite *TimezoneServiceTestSuite) TestDelete_NotFoundSkipsInvalidate() {
	suite.mockRepo.On("DeleteTimezone", suite.ctx, int64(9)).Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTimezone(suite.ctx, 9)

	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockCache.AssertNotCalled(suite.T(), "Invalidate", mock.Anything)
}

func TestTimezoneServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TimezoneServiceTestSuite))
}
