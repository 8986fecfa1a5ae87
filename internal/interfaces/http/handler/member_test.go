package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	membershipapp "github.com/fittrack/backend/internal/application/membership"
	"github.com/fittrack/backend/internal/domain/membership"
	"github.com/fittrack/backend/internal/domain/shared"
	"github.com/fittrack/backend/internal/interfaces/http/dto"
)

func setupMemberRouter(repo membership.Repository) *gin.Engine {
	service := membershipapp.NewMemberService(repo, nil)
	h := NewMemberHandler(service)

	router := gin.New()
	members := router.Group("/api/v1/members")
	members.POST("/", h.Create)
	members.GET("/", h.List)
	members.GET("/filter", h.Filter)
	members.GET("/search/:key", h.Search)
	members.GET("/id/:id", h.GetByID)
	members.GET("/memberid/:memberId", h.GetByMemberID)
	members.PUT("/id/:id", h.UpdateByID)
	members.PUT("/memberid/:memberId", h.UpdateByMemberID)
	members.DELETE("/id/:id", h.DeleteByID)
	members.DELETE("/memberid/:memberId", h.DeleteByMemberID)
	return router
}

func testMember(t *testing.T) *membership.Member {
	t.Helper()
	member, err := membership.NewMember("GYM-001", "Asha Rao", "9876543210", "asha@example.com", "2024-01-10", membership.PlanMonthly)
	require.NoError(t, err)
	member.ClearDomainEvents()
	return member
}

func TestMemberHandler_Create(t *testing.T) {
	t.Run("creates member", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		repo.On("ExistsByMemberID", mock.Anything, "GYM-001").Return(false, nil)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*membership.Member")).Return(nil)

		body := `{"member_id":"GYM-001","name":"Asha Rao","plan":"Quarterly"}`
		req := httptest.NewRequest("POST", "/api/v1/members/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		repo.AssertExpectations(t)
	})

	t.Run("rejects missing name", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		body := `{"member_id":"GYM-001"}`
		req := httptest.NewRequest("POST", "/api/v1/members/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		repo.AssertNotCalled(t, "Save")
	})

	t.Run("returns conflict for duplicate member ID", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		repo.On("ExistsByMemberID", mock.Anything, "GYM-001").Return(true, nil)

		body := `{"member_id":"GYM-001","name":"Asha Rao"}`
		req := httptest.NewRequest("POST", "/api/v1/members/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestMemberHandler_GetByMemberID(t *testing.T) {
	t.Run("returns member", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		repo.On("FindByMemberID", mock.Anything, "GYM-001").Return(testMember(t), nil)

		req := httptest.NewRequest("GET", "/api/v1/members/memberid/GYM-001", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "GYM-001")
	})

	t.Run("returns 404 for unknown member", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		repo.On("FindByMemberID", mock.Anything, "GYM-404").Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest("GET", "/api/v1/members/memberid/GYM-404", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMemberHandler_GetByID(t *testing.T) {
	t.Run("rejects malformed uuid", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		req := httptest.NewRequest("GET", "/api/v1/members/id/not-a-uuid", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns member by uuid", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		member := testMember(t)
		repo.On("FindByID", mock.Anything, member.ID).Return(member, nil)

		req := httptest.NewRequest("GET", "/api/v1/members/id/"+member.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMemberHandler_List(t *testing.T) {
	repo := new(mockMemberRepository)
	router := setupMemberRouter(repo)

	members := []membership.Member{*testMember(t)}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(members, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	req := httptest.NewRequest("GET", "/api/v1/members/?page=1&page_size=10", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
	assert.Equal(t, 10, resp.Meta.PageSize)
}

func TestMemberHandler_Search(t *testing.T) {
	repo := new(mockMemberRepository)
	router := setupMemberRouter(repo)

	repo.On("Search", mock.Anything, "Asha").Return([]membership.Member{*testMember(t)}, nil)

	req := httptest.NewRequest("GET", "/api/v1/members/search/Asha", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Asha Rao")
}

func TestMemberHandler_Filter(t *testing.T) {
	t.Run("filters by status and plan", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		repo.On("FindFiltered", mock.Anything, mock.AnythingOfType("membership.MemberFilter")).
			Return([]membership.Member{*testMember(t)}, nil)

		req := httptest.NewRequest("GET", "/api/v1/members/filter?status=Active&membership_plan=Monthly", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		req := httptest.NewRequest("GET", "/api/v1/members/filter?status=Whatever", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMemberHandler_Update(t *testing.T) {
	repo := new(mockMemberRepository)
	router := setupMemberRouter(repo)

	member := testMember(t)
	repo.On("FindByMemberID", mock.Anything, "GYM-001").Return(member, nil)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*membership.Member")).Return(nil)

	body := `{"phone":"1112223334","plan":"Yearly"}`
	req := httptest.NewRequest("PUT", "/api/v1/members/memberid/GYM-001", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Yearly")
}

func TestMemberHandler_Delete(t *testing.T) {
	t.Run("deletes by uuid", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		member := testMember(t)
		repo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		repo.On("Delete", mock.Anything, member.ID).Return(nil)

		req := httptest.NewRequest("DELETE", "/api/v1/members/id/"+member.ID.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("404 for unknown uuid", func(t *testing.T) {
		repo := new(mockMemberRepository)
		router := setupMemberRouter(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		req := httptest.NewRequest("DELETE", "/api/v1/members/id/"+id.String(), nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
