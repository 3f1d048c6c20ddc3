package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/delivery/http/middleware"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionController_List(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(t *testing.T, f domain.TransactionFilter)
	}{
		{
			name:       "filters and dates",
			query:      "?project_id=p1&type=Expense&from=2024-01-01&to=2024-01-31",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, f domain.TransactionFilter) {
				assert.Equal(t, "p1", f.ProjectID)
				assert.Equal(t, domain.TransactionExpense, f.Type)
				require.NotNil(t, f.From)
				require.NotNil(t, f.To)
				assert.Equal(t, time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC), *f.To)
			},
		},
		{name: "bad date", query: "?from=yesterday", wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTransactionService{}
			rr := httptest.NewRecorder()
			NewTransactionController(testLogger, fake, helpers.Pager{}).List(rr, newRequest(http.MethodGet, "/transactions"+tt.query, ""))

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.check != nil {
				tt.check(t, fake.lastFilter)
				env := decode[helpers.ListResponse[*domain.Transaction]](t, rr)
				assert.NotNil(t, env.Data.Items)
				assert.Equal(t, 0, env.Data.Pagination.TotalPages)
				assert.Empty(t, env.Data.Pagination.Pages)
			}
		})
	}
}

func TestTransactionController_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		writeErr   error
		wantStatus int
	}{
		{name: "success", body: `{"project_id":"p1","type":"expense","amount":"249.90","occurred_on":"2024-03-01","category_id":"cat1"}`, wantStatus: http.StatusCreated},
		{name: "missing amount and date", body: `{"project_id":"p1","type":"expense"}`, wantStatus: http.StatusBadRequest},
		{name: "category type mismatch", body: `{"project_id":"p1","type":"income","amount":"1","occurred_on":"2024-03-01","category_id":"cat1"}`, writeErr: domain.NewValidationError("category type does not match transaction type"), wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeTransactionService{writeErr: tt.writeErr}
			req := newRequest(http.MethodPost, "/transactions", tt.body)
			req = req.WithContext(middleware.SetUserID(req.Context(), "u1", domain.RoleAdmin))
			rr := httptest.NewRecorder()

			NewTransactionController(testLogger, fake, helpers.Pager{}).Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusCreated {
				require.NotNil(t, fake.created)
				assert.Equal(t, "u1", fake.created.CreatedBy)
				assert.Equal(t, int64(24990), fake.created.AmountCents)
				assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), fake.created.OccurredOn)
				require.NotNil(t, fake.created.CategoryID)
				assert.Equal(t, "cat1", *fake.created.CategoryID)
			}
		})
	}
}

func TestTransactionController_Update(t *testing.T) {
	fake := &fakeTransactionService{tx: &domain.Transaction{ID: "t1", CreatedBy: "author", Type: domain.TransactionIncome}}
	req := newRequest(http.MethodPut, "/transactions/t1", `{"project_id":"p2","type":"income","amount":"10","occurred_on":"2024-05-02"}`)
	req.SetPathValue("id", "t1")
	rr := httptest.NewRecorder()

	NewTransactionController(testLogger, fake, helpers.Pager{}).Update(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.NotNil(t, fake.updated)
	assert.Equal(t, "author", fake.updated.CreatedBy)
	assert.Equal(t, "p2", fake.updated.ProjectID)
	assert.Nil(t, fake.updated.CategoryID)
}
