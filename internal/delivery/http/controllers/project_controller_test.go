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

func TestProjectController_List(t *testing.T) {
	fake := &fakeProjectService{total: 95}
	ctrl := NewProjectController(testLogger, fake, helpers.Pager{})
	rr := httptest.NewRecorder()

	ctrl.List(rr, newRequest(http.MethodGet, "/projects?search=%20apo%20&status=ACTIVE&company_id=c1&page=5", ""))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, domain.ProjectFilter{Search: "apo", Status: domain.ProjectActive, CompanyID: "c1"}, fake.lastFilter)
	assert.Equal(t, domain.PaginationParams{Page: 5, PageSize: helpers.DefaultPageSize}, fake.lastParams)

	env := decode[helpers.ListResponse[*domain.Project]](t, rr)
	require.Nil(t, env.Error)
	meta := env.Data.Pagination
	assert.Equal(t, 5, meta.Page)
	assert.Equal(t, 10, meta.TotalPages)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrevious)
	got := make([]string, 0, len(meta.Pages))
	for _, p := range meta.Pages {
		got = append(got, p.String())
	}
	assert.Equal(t, []string{"1", "…", "4", "5", "6", "…", "10"}, got)
}

func TestProjectController_ListInvalidStatus(t *testing.T) {
	fake := &fakeProjectService{listErr: domain.NewValidationError("status must be one of active, on_hold, completed")}
	rr := httptest.NewRecorder()
	NewProjectController(testLogger, fake, helpers.Pager{}).List(rr, newRequest(http.MethodGet, "/projects?status=archived", ""))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, helpers.ErrCodeBadRequest, decode[any](t, rr).Error.Code)
}

func TestProjectController_Create(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		noUser     bool
		writeErr   error
		wantStatus int
		check      func(t *testing.T, p *domain.Project)
	}{
		{
			name:       "success",
			body:       `{"name":" Apollo ","budget":"1500,50","start_date":"2024-01-15","company_id":"c1"}`,
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, p *domain.Project) {
				assert.Equal(t, "Apollo", p.Name)
				assert.Equal(t, "u1", p.OwnerID)
				assert.Equal(t, int64(150050), p.BudgetCents)
				require.NotNil(t, p.StartDate)
				assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), *p.StartDate)
				assert.Nil(t, p.EndDate)
				require.NotNil(t, p.CompanyID)
				assert.Equal(t, "c1", *p.CompanyID)
			},
		},
		{name: "bad budget and date", body: `{"name":"Apollo","budget":"-3","end_date":"tomorrow"}`, wantStatus: http.StatusBadRequest},
		{name: "missing name", body: `{"budget":"10"}`, wantStatus: http.StatusBadRequest},
		{name: "unauthenticated", body: `{"name":"Apollo"}`, noUser: true, wantStatus: http.StatusUnauthorized},
		{name: "unknown company", body: `{"name":"Apollo","company_id":"zz"}`, writeErr: domain.NewValidationError("referenced record does not exist"), wantStatus: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProjectService{writeErr: tt.writeErr}
			req := newRequest(http.MethodPost, "/projects", tt.body)
			if !tt.noUser {
				req = req.WithContext(middleware.SetUserID(req.Context(), "u1", domain.RoleManager))
			}
			rr := httptest.NewRecorder()

			NewProjectController(testLogger, fake, helpers.Pager{}).Create(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.check != nil {
				require.NotNil(t, fake.created)
				tt.check(t, fake.created)
				assert.Equal(t, "p-new", decode[*domain.Project](t, rr).Data.ID)
			}
		})
	}
}

func TestProjectController_Update(t *testing.T) {
	existing := &domain.Project{ID: "p1", Name: "Old", Status: domain.ProjectOnHold, OwnerID: "owner", BudgetCents: 100}

	t.Run("replaces fields and keeps owner and status", func(t *testing.T) {
		fake := &fakeProjectService{project: existing}
		req := newRequest(http.MethodPut, "/projects/p1", `{"name":"New","description":"d"}`)
		req.SetPathValue("id", "p1")
		rr := httptest.NewRecorder()

		NewProjectController(testLogger, fake, helpers.Pager{}).Update(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		require.NotNil(t, fake.updated)
		assert.Equal(t, "New", fake.updated.Name)
		assert.Equal(t, "owner", fake.updated.OwnerID)
		assert.Equal(t, domain.ProjectOnHold, fake.updated.Status)
		assert.Zero(t, fake.updated.BudgetCents)
	})

	t.Run("not found", func(t *testing.T) {
		fake := &fakeProjectService{getErr: domain.ErrNotFound}
		req := newRequest(http.MethodPut, "/projects/p9", `{"name":"New"}`)
		req.SetPathValue("id", "p9")
		rr := httptest.NewRecorder()

		NewProjectController(testLogger, fake, helpers.Pager{}).Update(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		assert.Nil(t, fake.updated)
	})
}

func TestProjectController_Delete(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		writeErr   error
		wantStatus int
	}{
		{name: "success", id: "p1", wantStatus: http.StatusOK},
		{name: "missing id", id: " ", wantStatus: http.StatusBadRequest},
		{name: "referenced", id: "p1", writeErr: domain.ErrConflict, wantStatus: http.StatusConflict},
		{name: "store failure", id: "p1", writeErr: assert.AnError, wantStatus: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeProjectService{writeErr: tt.writeErr}
			req := newRequest(http.MethodDelete, "/projects/x", "")
			req.SetPathValue("id", tt.id)
			rr := httptest.NewRecorder()

			NewProjectController(testLogger, fake, helpers.Pager{}).Delete(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, DeletedResponse{ID: "p1", Deleted: true}, decode[DeletedResponse](t, rr).Data)
			}
		})
	}
}
