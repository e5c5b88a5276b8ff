//go:build e2e

package cashcut_test

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"coworking-pos/internal/domain/operator"
	"coworking-pos/internal/handler/dto/request"
	resdto "coworking-pos/internal/handler/dto/response"
	"coworking-pos/tests/common/authtest"
	"coworking-pos/tests/common/dbtest"
	"coworking-pos/tests/common/httptest"
	"coworking-pos/tests/e2e"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const cashCutsURL = "/api/cash-cuts"

type cashCutSuite struct {
	e2e.SharedSuite
	token string
}

func TestCashCutSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(cashCutSuite))
}

func (s *cashCutSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	s.token = authtest.CreateAndLogin(s.T(), s.DB, s.Router, "cashier@example.com", operator.RoleCashier.String())
}

func (s *cashCutSuite) sell(method string, qty int) {
	productID := dbtest.CreateTestProduct(s.T(), s.DB, "Espresso", "35.00", "10.00", 50)
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/orders", request.CreateOrderRequest{
		Items:         []request.OrderItemRequest{{ProductID: productID, Quantity: qty}},
		PaymentMethod: method,
	}, s.token)
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
}

func (s *cashCutSuite) createCut(notes string) (*resdto.CashCutResponse, int, bool) {
	w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cashCutsURL,
		request.CreateCashCutRequest{Notes: notes}, s.token)
	var res resdto.CashCutResponse
	if w.Code == http.StatusCreated || w.Code == http.StatusOK {
		httptest.AssertSuccessResponse(s.T(), w, w.Code, &res)
	}
	return &res, w.Code, w.Header().Get("Idempotent-Replayed") == "true"
}

func (s *cashCutSuite) countCuts() int {
	var n int
	require.NoError(s.T(), s.DB.QueryRow(s.T().Context(), "SELECT count(*) FROM cash_cuts").Scan(&n))
	return n
}

func (s *cashCutSuite) TestCreate() {
	s.Run("aggregates sales and replays a retry", func() {
		s.sell("cash", 2)
		s.sell("card", 1)

		first, code, replayed := s.createCut("closing")
		s.Require().Equal(http.StatusCreated, code)
		s.False(replayed)
		s.Equal(2, first.TransactionCount)
		s.True(decimal.RequireFromString("105").Equal(first.TotalIncome), first.TotalIncome.String())
		s.True(decimal.RequireFromString("75").Equal(first.TotalProfit), first.TotalProfit.String())
		s.Len(first.PaymentMethods, 2)

		again, code, replayed := s.createCut("closing")
		s.Equal(http.StatusOK, code)
		s.True(replayed)
		s.Equal(first.ID, again.ID)
		s.Equal(1, s.countCuts())
	})

	s.Run("concurrent requests produce one cut", func() {
		s.sell("cash", 1)

		const callers = 8
		var (
			wg    sync.WaitGroup
			mu    sync.Mutex
			ids   = map[string]int{}
			fresh int
		)
		for range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, cashCutsURL,
					request.CreateCashCutRequest{Notes: "rush"}, s.token)
				var res resdto.CashCutResponse
				_ = json.Unmarshal(w.Body.Bytes(), &res)
				mu.Lock()
				defer mu.Unlock()
				ids[res.ID.String()]++
				if w.Code == http.StatusCreated {
					fresh++
				}
			}()
		}
		wg.Wait()

		s.Len(ids, 1)
		s.Equal(1, fresh)
		s.Equal(1, s.countCuts())
	})

	s.Run("next cut starts where the previous ended", func() {
		s.sell("cash", 1)
		first, code, _ := s.createCut("morning")
		s.Require().Equal(http.StatusCreated, code)

		second, code, _ := s.createCut("evening")
		s.Require().Equal(http.StatusCreated, code)

		s.NotEqual(first.ID, second.ID)
		s.True(second.PeriodStart.Equal(first.PeriodEnd))
		s.Equal(0, second.TransactionCount)
		s.True(second.TotalIncome.IsZero())
	})
}

func (s *cashCutSuite) TestReadAndExport() {
	s.Run("list, get and export", func() {
		s.sell("transfer", 3)
		cut, code, _ := s.createCut("")
		s.Require().Equal(http.StatusCreated, code)

		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, cashCutsURL, nil, s.token)
		var list []resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &list)
		s.Require().Len(list, 1)
		s.Equal(cut.ID, list[0].ID)

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, cashCutsURL+"/"+cut.ID.String(), nil, s.token)
		var got resdto.CashCutResponse
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		s.Equal(cut.IdempotencyKey, got.IdempotencyKey)
		s.NotEmpty(w.Header().Get("ETag"))

		w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, cashCutsURL+"/"+cut.ID.String()+"/export", nil, s.token)
		s.Equal(http.StatusOK, w.Code)
		s.Contains(w.Header().Get("Content-Disposition"), ".xlsx")
		s.Equal([]byte("PK"), w.Body.Bytes()[:2])
	})
}
