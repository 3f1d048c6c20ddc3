package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"projectledger/internal/delivery/http/helpers"
	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryController(t *testing.T) {
	t.Run("list passes filters", func(t *testing.T) {
		fake := &fakeCategoryService{category: &domain.Category{ID: "c1", Name: "Materials", Type: domain.TransactionExpense}}
		rr := httptest.NewRecorder()
		NewCategoryController(testLogger, fake, helpers.Pager{}).List(rr, newRequest(http.MethodGet, "/categories?search=mat&type=expense", ""))

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, domain.CategoryFilter{Search: "mat", Type: domain.TransactionExpense}, fake.lastFilter)
		env := decode[helpers.ListResponse[*domain.Category]](t, rr)
		require.Len(t, env.Data.Items, 1)
		assert.Equal(t, "Materials", env.Data.Items[0].Name)
	})

	t.Run("create rejects unknown type", func(t *testing.T) {
		rr := httptest.NewRecorder()
		NewCategoryController(testLogger, &fakeCategoryService{}, helpers.Pager{}).Create(rr, newRequest(http.MethodPost, "/categories", `{"name":"Fees","type":"refund"}`))

		require.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "type must be income or expense", decode[any](t, rr).Error.Message)
	})

	t.Run("create normalizes type", func(t *testing.T) {
		fake := &fakeCategoryService{}
		rr := httptest.NewRecorder()
		NewCategoryController(testLogger, fake, helpers.Pager{}).Create(rr, newRequest(http.MethodPost, "/categories", `{"name":" Fees ","type":"Income"}`))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, &domain.Category{Name: "Fees", Type: domain.TransactionIncome}, fake.created)
	})

	t.Run("duplicate name", func(t *testing.T) {
		fake := &fakeCategoryService{writeErr: domain.ErrConflict}
		rr := httptest.NewRecorder()
		NewCategoryController(testLogger, fake, helpers.Pager{}).Create(rr, newRequest(http.MethodPost, "/categories", `{"name":"Fees","type":"income"}`))

		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("get missing", func(t *testing.T) {
		req := newRequest(http.MethodGet, "/categories/nope", "")
		req.SetPathValue("id", "nope")
		rr := httptest.NewRecorder()
		NewCategoryController(testLogger, &fakeCategoryService{}, helpers.Pager{}).Get(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestCompanyController_Update(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "success", body: `{"name":"Acme","email":"Billing@Acme.test","tax_id":"IT123"}`, wantStatus: http.StatusOK},
		{name: "bad email", body: `{"name":"Acme","email":"billing"}`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{"tax_id":"IT123"}`, wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeCompanyService{company: &domain.Company{ID: "co1", Name: "Old", Phone: "555"}}
			req := newRequest(http.MethodPut, "/companies/co1", tt.body)
			req.SetPathValue("id", "co1")
			rr := httptest.NewRecorder()

			NewCompanyController(testLogger, fake, helpers.Pager{}).Update(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				require.NotNil(t, fake.updated)
				assert.Equal(t, "co1", fake.updated.ID)
				assert.Equal(t, "billing@acme.test", fake.updated.Email)
				assert.Empty(t, fake.updated.Phone)
			}
		})
	}
}

func TestCompanyController_List(t *testing.T) {
	fake := &fakeCompanyService{}
	rr := httptest.NewRecorder()
	NewCompanyController(testLogger, fake, helpers.Pager{}).List(rr, newRequest(http.MethodGet, "/companies?search=acme&page_size=500", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "acme", fake.lastFilter.Search)
	env := decode[helpers.ListResponse[*domain.Company]](t, rr)
	assert.Equal(t, helpers.MaxPageSize, env.Data.Pagination.PageSize)
}

func TestPositionController(t *testing.T) {
	t.Run("create", func(t *testing.T) {
		fake := &fakePositionService{}
		rr := httptest.NewRecorder()
		NewPositionController(testLogger, fake, helpers.Pager{}).Create(rr, newRequest(http.MethodPost, "/positions", `{"title":" Site manager "}`))

		require.Equal(t, http.StatusCreated, rr.Code)
		assert.Equal(t, "Site manager", fake.created.Title)
	})

	t.Run("update missing", func(t *testing.T) {
		req := newRequest(http.MethodPut, "/positions/x", `{"title":"Lead"}`)
		req.SetPathValue("id", "x")
		rr := httptest.NewRecorder()
		NewPositionController(testLogger, &fakePositionService{}, helpers.Pager{}).Update(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("delete referenced", func(t *testing.T) {
		req := newRequest(http.MethodDelete, "/positions/x", "")
		req.SetPathValue("id", "x")
		rr := httptest.NewRecorder()
		NewPositionController(testLogger, &fakePositionService{writeErr: domain.ErrConflict}, helpers.Pager{}).Delete(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}
