package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/handlers"
	"github.com/wocademy/utility-backend/pkg/config"
)

// --- Mock CouponSvcFacade ---
type MockCouponService struct {
	mock.Mock
}

var _ portssvc.CouponSvcFacade = (*MockCouponService)(nil)

func (m *MockCouponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*domain.Coupon, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) GetCouponByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Coupon), args.Error(1)
}

func (m *MockCouponService) UpdateCoupon(ctx context.Context, id int64, req dto.UpdateCouponRequest) (*domain.Coupon, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Coupon), args.Error(1)
}

func (m *MockCouponService) DeleteCoupon(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponService) ValidateCoupon(ctx context.Context, code string, userDomain string) *domain.CouponVerdict {
	args := m.Called(ctx, code, userDomain)
	return args.Get(0).(*domain.CouponVerdict)
}

// --- Test Suite Setup ---
type CouponHandlerTestSuite struct {
	suite.Suite
	router    *gin.Engine
	mockSvc   *MockCouponService
	jwtSecret string
}

func (suite *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.mockSvc = new(MockCouponService)

	cfg := &config.Config{
		JWTSecret:    suite.jwtSecret,
		IsProduction: true, // skip swagger registration
	}
	services := &portssvc.ServiceContainer{Coupon: suite.mockSvc}
	handlers.RegisterRoutes(suite.router, cfg, services)
}

// generateTestToken creates a dummy JWT for testing.
func (suite *CouponHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *CouponHandlerTestSuite) doRequest(method, url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken("tester-1"))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *CouponHandlerTestSuite) TestValidateCoupon_AlwaysOK() {
	suite.mockSvc.On("ValidateCoupon", mock.Anything, "SAVE2025", "acme.com").
		Return(&domain.CouponVerdict{Valid: false, Message: "Coupon is inactive."}).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/coupons/validate/SAVE2025?userDomain=acme.com")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ValidateCouponResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.False(resp.Valid)
	suite.Equal("Coupon is inactive.", resp.Message)
	suite.Nil(resp.Coupon)
	suite.mockSvc.AssertExpectations(suite.T())
}

func (suite *CouponHandlerTestSuite) TestGetCouponByID_NotFoundBody() {
	suite.mockSvc.On("GetCouponByID", mock.Anything, int64(42)).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/coupons/42")

	suite.Equal(http.StatusNotFound, w.Code)
	var resp dto.ErrorResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(http.StatusNotFound, resp.StatusCode)
	suite.Equal(apperrors.CodeNotFound, resp.Code)
}

func (suite *CouponHandlerTestSuite) TestGetCouponByID_Success() {
	coupon := &domain.Coupon{
		ID:            42,
		Code:          "SAVE2025",
		Label:         "Promo",
		Status:        domain.CouponActive,
		CouponType:    domain.CouponAll,
		DiscountType:  domain.DiscountFlat,
		DiscountValue: decimal.NewFromInt(25),
	}
	suite.mockSvc.On("GetCouponByID", mock.Anything, int64(42)).Return(coupon, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/coupons/42")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CouponResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("SAVE2025", resp.Code)
	suite.True(resp.DiscountValue.Equal(coupon.DiscountValue))
}

func (suite *CouponHandlerTestSuite) TestMissingToken_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/coupons/42", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockSvc.AssertNotCalled(suite.T(), "GetCouponByID", mock.Anything, mock.Anything)
}

func TestCouponHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}
