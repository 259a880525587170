package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/middleware"
)

// --- Mock ReportingService ---
type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) BalanceSheet(ctx context.Context, rangeStart, asOf time.Time) (*domain.BalanceSheetReport, error) {
	args := m.Called(ctx, rangeStart, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceSheetReport), args.Error(1)
}

func (m *MockReportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.IncomeStatementReport), args.Error(1)
}

func (m *MockReportingService) TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TrialBalanceReport), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Test Suite ---
type ReportingHandlerTestSuite struct {
	suite.Suite
	router               *gin.Engine
	mockReportingService *MockReportingService
	jwtSecret            string
	jwtIssuer            string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *ReportingHandlerTestSuite) generateTestToken(userID string) string {
	claims := middleware.AuthClaims{
		Role: string(domain.RoleViewer),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    suite.jwtIssuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedString, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signedString
}

func (suite *ReportingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.jwtIssuer = "apa-test"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret, suite.jwtIssuer))

	suite.mockReportingService = new(MockReportingService)

	v1 := suite.router.Group("/api/v1")
	registerReportingRoutes(v1, suite.mockReportingService)
}

func (suite *ReportingHandlerTestSuite) get(url string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *ReportingHandlerTestSuite) TestGetBalanceSheet_PassesDateRange() {
	wantStart := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantAsOf := time.Date(2024, time.June, 30, 23, 59, 59, 999999999, time.UTC)

	suite.mockReportingService.On("BalanceSheet",
		mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(wantStart) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(wantAsOf) }),
	).Return(&domain.BalanceSheetReport{AsOfDate: wantAsOf}, nil).Once()

	w := suite.get("/api/v1/reports/balance-sheet?asOfDate=2024-06-30&dateFrom=2024-01-01")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestGetBalanceSheet_DefaultsRangeStartToLedgerStart() {
	suite.mockReportingService.On("BalanceSheet",
		mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.IsZero() }),
		mock.MatchedBy(func(t time.Time) bool { return t.Year() == 2024 && t.Month() == time.June && t.Day() == 30 }),
	).Return(&domain.BalanceSheetReport{}, nil).Once()

	w := suite.get("/api/v1/reports/balance-sheet?asOfDate=2024-06-30")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestGetBalanceSheet_RejectsMalformedDate() {
	w := suite.get("/api/v1/reports/balance-sheet?asOfDate=June-30")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "BalanceSheet")
}

func (suite *ReportingHandlerTestSuite) TestGetTrialBalance_PassesDateRange() {
	wantFrom := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2024, time.April, 30, 23, 59, 59, 999999999, time.UTC)

	suite.mockReportingService.On("TrialBalance",
		mock.Anything,
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(wantFrom) }),
		mock.MatchedBy(func(t time.Time) bool { return t.Equal(wantTo) }),
	).Return(&domain.TrialBalanceReport{From: wantFrom, To: wantTo, IsBalanced: true}, nil).Once()

	w := suite.get("/api/v1/reports/trial-balance?dateFrom=2024-04-01&dateTo=2024-04-30")

	suite.Equal(http.StatusOK, w.Code)
	suite.mockReportingService.AssertExpectations(suite.T())
}

func (suite *ReportingHandlerTestSuite) TestMissingTokenUnauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/reports/balance-sheet", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockReportingService.AssertNotCalled(suite.T(), "BalanceSheet")
}

// --- Run Test Suite ---
func TestReportingHandler(t *testing.T) {
	suite.Run(t, new(ReportingHandlerTestSuite))
}
