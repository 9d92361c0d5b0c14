package member

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kusgan/internal/membership"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, id string) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockService) Exists(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockService) List(ctx context.Context, search string, limit, offset int) ([]Member, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func (m *MockService) ListWithEmail(ctx context.Context) ([]Member, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

type MockStatusProvider struct {
	mock.Mock
}

func (m *MockStatusProvider) Status(ctx context.Context, memberID string) (membership.Status, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(membership.Status), args.Error(1)
}

func newTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/members", h.Register)
	r.GET("/members", h.List)
	r.GET("/members/:id", h.Get)
	return r
}

func TestHandler_Get_IncludesStatus(t *testing.T) {
	svc := new(MockService)
	status := new(MockStatusProvider)
	end := membership.MustParseDate("2025-02-01")

	svc.On("Get", mock.Anything, "juan-250103").Return(&Member{ID: "JUAN-250103", Nickname: "Juan"}, nil)
	status.On("Status", mock.Anything, "JUAN-250103").Return(membership.Status{
		MemberID:   "JUAN-250103",
		AsOf:       membership.MustParseDate("2025-01-20"),
		GymEndDate: &end,
		GymState:   membership.StateActive,
	}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/members/juan-250103", nil)
	newTestRouter(NewHandler(svc, status)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"JUAN-250103"`)
	assert.Contains(t, w.Body.String(), `"gym_end_date":"2025-02-01"`)
	assert.Contains(t, w.Body.String(), `"gym_state":"active"`)
}

func TestHandler_Get_NotFound(t *testing.T) {
	svc := new(MockService)
	status := new(MockStatusProvider)
	svc.On("Get", mock.Anything, "GHOST").Return(nil, ErrMemberNotFound)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/members/GHOST", nil)
	newTestRouter(NewHandler(svc, status)).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	status.AssertNotCalled(t, "Status", mock.Anything, mock.Anything)
}

func TestHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockService)
		wantStatus int
	}{
		{
			name: "created",
			body: `{"nickname":"Juan","first_name":"Juan","last_name":"Dela Cruz"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("member.RegisterRequest")).
					Return(&Member{ID: "JUAN-250103"}, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "bad join date",
			body:       `{"nickname":"Juan","first_name":"Juan","last_name":"Dela Cruz","joined_on":"03/01/2025"}`,
			setupMock:  func(m *MockService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "nickname without letters",
			body: `{"nickname":"--","first_name":"Juan","last_name":"Dela Cruz"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("member.RegisterRequest")).
					Return(nil, ErrInvalidNickname)
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "storage failure",
			body: `{"nickname":"Juan","first_name":"Juan","last_name":"Dela Cruz"}`,
			setupMock: func(m *MockService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("member.RegisterRequest")).
					Return(nil, errors.New("db down"))
			},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/members", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			newTestRouter(NewHandler(svc, new(MockStatusProvider))).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_List(t *testing.T) {
	svc := new(MockService)
	svc.On("List", mock.Anything, "dela", 20, 40).Return([]Member{{ID: "JUAN-250103"}}, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/members?q=dela&limit=20&offset=40", nil)
	newTestRouter(NewHandler(svc, new(MockStatusProvider))).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"limit":20`)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/members?limit=ten", nil)
	newTestRouter(NewHandler(svc, new(MockStatusProvider))).ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
