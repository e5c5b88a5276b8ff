package api_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	nethttptest "net/http/httptest"
	"strings"
	"testing"
	"time"

	"coworking-pos/internal/domain/cashcut"
	"coworking-pos/internal/handler/api"
	resdto "coworking-pos/internal/handler/dto/response"
	"coworking-pos/internal/pkg/errs"
	"coworking-pos/internal/usecase/commands"
	"coworking-pos/internal/usecase/queries"
	"coworking-pos/tests/common/httptest"
	commandsmock "coworking-pos/tests/mock/commands"
	queriesmock "coworking-pos/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CashCutHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCashCutCommands
	mockQueries  *queriesmock.MockCashCutQueries
	operatorID   uuid.UUID
}

func (s *CashCutHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.operatorID = uuid.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCashCutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCashCutQueries(s.mockCtrl)
	handler := api.NewCashCutHandler(s.mockCommands, s.mockQueries)

	authed := s.router.Group("")
	authed.Use(func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.operatorID)
		}
		c.Next()
	})
	authed.POST("/cash-cuts", handler.Create)
	authed.GET("/cash-cuts", handler.List)
	authed.GET("/cash-cuts/:id", handler.Get)
	authed.GET("/cash-cuts/:id/export", handler.Export)
}

func (s *CashCutHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCashCutHandlerSuite(t *testing.T) {
	suite.Run(t, new(CashCutHandlerTestSuite))
}

func sampleCashCut(operatorID uuid.UUID, notes string) *cashcut.CashCut {
	end := time.Date(2026, 3, 14, 22, 0, 0, 0, time.UTC)
	return &cashcut.CashCut{
		ID:          uuid.New(),
		Kind:        cashcut.KindManual,
		PeriodStart: end.Add(-14 * time.Hour),
		PeriodEnd:   end,
		Summary: cashcut.Summary{
			TotalIncome:      decimal.RequireFromString("1250.50"),
			TotalCost:        decimal.RequireFromString("400.00"),
			TotalProfit:      decimal.RequireFromString("850.50"),
			ExpenseTotal:     decimal.RequireFromString("100.00"),
			NetProfit:        decimal.RequireFromString("750.50"),
			TransactionCount: 12,
		},
		IdempotencyKey: "cashcut:abc",
		Notes:          notes,
		CreatedBy:      operatorID,
		CreatedAt:      end,
	}
}

func (s *CashCutHandlerTestSuite) TestCreate() {
	url := "/cash-cuts"

	s.Run("success: first request returns 201 without replay header", func() {
		cut := sampleCashCut(s.operatorID, "end of shift")
		s.mockCommands.EXPECT().Create(gomock.Any(), s.operatorID, cashcut.KindManual, "end of shift").
			Return(&commands.CreateCashCutResult{CashCut: cut}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{"notes": "end of shift"}, "token")

		var response resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(cut.ID, response.ID)
		s.Equal("manual", response.Kind)
		s.True(decimal.RequireFromString("750.50").Equal(response.NetProfit))
		s.Equal(12, response.TransactionCount)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: replay returns 200 with replay header", func() {
		cut := sampleCashCut(s.operatorID, "")
		s.mockCommands.EXPECT().Create(gomock.Any(), s.operatorID, cashcut.KindManual, "").
			Return(&commands.CreateCashCutResult{CashCut: cut, IsReplayed: true}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "token")

		var response resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(cut.ID, response.ID)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("success: empty body means no notes", func() {
		cut := sampleCashCut(s.operatorID, "")
		s.mockCommands.EXPECT().Create(gomock.Any(), s.operatorID, cashcut.KindManual, "").
			Return(&commands.CreateCashCutResult{CashCut: cut}, nil).Times(1)

		req := nethttptest.NewRequest(http.MethodPost, url, bytes.NewReader(nil))
		req.Header.Set("Authorization", "Bearer token")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		s.Equal(http.StatusCreated, rec.Code, rec.Body.String())
	})

	s.Run("error: notes over the limit are rejected before the use case", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url,
			map[string]any{"notes": strings.Repeat("n", 501)}, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: malformed json", func() {
		req := nethttptest.NewRequest(http.MethodPost, url, strings.NewReader("{notes"))
		req.Header.Set("Authorization", "Bearer token")
		req.Header.Set("Content-Type", "application/json")
		rec := nethttptest.NewRecorder()
		s.router.ServeHTTP(rec, req)

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: 401 without operator", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name             string
			commandsError    error
			expectedStatus   int
			expectedMsg      string
			expectRetryAfter bool
		}{
			{
				name:             "still processing",
				commandsError:    errs.Mark(context.DeadlineExceeded, commands.ErrCashCutInProgress),
				expectedStatus:   http.StatusConflict,
				expectedMsg:      "Cash cut is still being processed",
				expectRetryAfter: true,
			},
			{
				name:           "validation",
				commandsError:  errs.Mark(cashcut.ErrNotesTooLong, errs.ErrDomainValidation),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Validation failed",
			},
			{
				name:           "invalid operator",
				commandsError:  commands.ErrInvalidOperator,
				expectedStatus: http.StatusUnauthorized,
				expectedMsg:    "Invalid operator",
			},
			{
				name:           "leader failed",
				commandsError:  errs.Mark(errors.New("boom"), commands.ErrCashCutFailed),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), s.operatorID, cashcut.KindManual, "").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, map[string]any{}, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
				if tc.expectRetryAfter {
					s.Equal("2", rec.Header().Get("Retry-After"))
				} else {
					s.Empty(rec.Header().Get("Retry-After"))
				}
			})
		}
	})
}

func (s *CashCutHandlerTestSuite) TestList() {
	s.Run("success: passes the limit through", func() {
		cuts := []*cashcut.CashCut{sampleCashCut(s.operatorID, "b"), sampleCashCut(s.operatorID, "a")}
		s.mockQueries.EXPECT().List(gomock.Any(), 2).Return(cuts, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts?limit=2", nil, "token")

		var response []resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Require().Len(response, 2)
		s.Equal(cuts[0].ID, response[0].ID)
	})

	s.Run("error: limit out of range", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts?limit=500", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

func (s *CashCutHandlerTestSuite) TestGet() {
	s.Run("success", func() {
		cut := sampleCashCut(s.operatorID, "")
		s.mockQueries.EXPECT().Get(gomock.Any(), cut.ID).Return(cut, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts/"+cut.ID.String(), nil, "token")

		var response resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(cut.IdempotencyKey, response.IdempotencyKey)
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Get(gomock.Any(), id).Return(nil, errs.ErrCashCutNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts/"+id.String(), nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cash cut not found")
	})

	s.Run("error: 400 on malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts/not-a-uuid", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

func (s *CashCutHandlerTestSuite) TestExport() {
	s.Run("success: returns the workbook as an attachment", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Export(gomock.Any(), id).
			Return(&queries.CashCutExport{FileName: "cash-cut-20260314.xlsx", Content: []byte("PK\x03\x04")}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts/"+id.String()+"/export", nil, "token")

		s.Equal(http.StatusOK, rec.Code)
		httptest.AssertHeaders(s.T(), rec, map[string]string{
			"Content-Type":        "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			"Content-Disposition": `attachment; filename="cash-cut-20260314.xlsx"`,
		})
		s.Equal([]byte("PK\x03\x04"), rec.Body.Bytes())
	})

	s.Run("error: 404 when missing", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().Export(gomock.Any(), id).Return(nil, errs.ErrCashCutNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/cash-cuts/"+id.String()+"/export", nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Cash cut not found")
	})
}
