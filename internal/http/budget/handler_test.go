package budget_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/dompet/internal/budget"
	budgethttp "github.com/MrJamesThe3rd/dompet/internal/http/budget"
	"github.com/MrJamesThe3rd/dompet/internal/http/identity"
	"github.com/MrJamesThe3rd/dompet/internal/http/request"
)

func newRouter(t *testing.T) (http.Handler, *budget.MockRepository) {
	t.Helper()

	repo := budget.NewMockRepository(gomock.NewController(t))
	h := budgethttp.NewHandler(budget.NewService(repo), request.NewValidator("ayu", "bima"))

	r := chi.NewRouter()
	r.Use(identity.NewResolver("", "ayu", "bima").Middleware)
	r.Route("/budgets", h.Routes)

	return r, repo
}

func do(router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(identity.HeaderOwner, "ayu")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func TestCreate(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().CreateBudget(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *budget.Budget) error {
			assert.Equal(t, "ayu", b.Owner)
			assert.Equal(t, budget.PeriodMonthly, b.Period)

			b.ID = uuid.New()

			return nil
		})

	rec := do(router, http.MethodPost, "/budgets/", `{"category":"food","amount":2000000,"period":"monthly"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "🍜", body["category_icon"])
}

func TestCreate_Rejects(t *testing.T) {
	tests := map[string]string{
		"income category": `{"category":"salary","amount":1,"period":"monthly"}`,
		"unknown period":  `{"category":"food","amount":1,"period":"daily"}`,
		"zero ceiling":    `{"category":"food","amount":0,"period":"monthly"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			router, _ := newRouter(t)

			rec := do(router, http.MethodPost, "/budgets/", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestList(t *testing.T) {
	router, repo := newRouter(t)

	repo.EXPECT().ListBudgets(gomock.Any()).Return([]*budget.Budget{
		{ID: uuid.New(), Category: "food", Amount: 100, Period: budget.PeriodMonthly},
		{ID: uuid.New(), Category: "food", Amount: 50, Period: budget.PeriodWeekly},
	}, nil)

	rec := do(router, http.MethodGet, "/budgets/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body, 2)
}

func TestUpdateAndDelete(t *testing.T) {
	router, repo := newRouter(t)
	id := uuid.New()

	repo.EXPECT().GetBudget(gomock.Any(), id).
		Return(&budget.Budget{ID: id, Category: "food", Amount: 100, Period: budget.PeriodMonthly}, nil)
	repo.EXPECT().UpdateBudget(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, b *budget.Budget) error {
			assert.Equal(t, budget.PeriodYearly, b.Period)
			return nil
		})
	repo.EXPECT().DeleteBudget(gomock.Any(), id).Return(budget.ErrNotFound)

	rec := do(router, http.MethodPatch, "/budgets/"+id.String(), `{"period":"yearly"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(router, http.MethodDelete, "/budgets/"+id.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
