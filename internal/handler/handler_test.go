package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gym_management/internal/model"
	"gym_management/internal/repository"
	"gym_management/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	router      *gin.Engine
	jwt         *utils.JWTUtil
	users       *stubUserService
	classes     *stubClassService
	memberships *stubMembershipService
	merch       *stubMerchService
}

func newTestServer(t *testing.T, allowAdminSignup bool) *testServer {
	t.Helper()
	log := zerolog.Nop()
	ts := &testServer{
		jwt:         utils.NewJWTUtil("handler-test-secret", time.Hour),
		users:       newStubUserService(),
		classes:     &stubClassService{classes: map[int]model.WorkoutClass{}},
		memberships: &stubMembershipService{},
		merch:       &stubMerchService{},
	}
	ts.router = NewRouter(log, ts.jwt, Handlers{
		Auth:        NewAuthHandler(ts.users, ts.jwt, allowAdminSignup, log),
		Users:       NewUserHandler(ts.users, log),
		Classes:     NewWorkoutClassHandler(ts.classes, log),
		Memberships: NewMembershipHandler(ts.memberships, log),
		Merch:       NewMerchHandler(ts.merch, log),
	}, nil)
	return ts
}

func (ts *testServer) token(t *testing.T, id int, role model.Role) string {
	t.Helper()
	tok, err := ts.jwt.GenerateToken(&model.User{ID: id, Role: role})
	require.NoError(t, err)
	return tok
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_RegisterAndLogin(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "coach", "password": "secret1", "email": "coach@gym.test", "role": "TRAINER",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		Token string          `json:"token"`
		User  json.RawMessage `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.NotContains(t, string(resp.User), "hashed:")

	claims, err := ts.jwt.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleTrainer, claims.Role)

	rec = ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"username": "coach", "password": "another1", "role": "MEMBER",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "coach", "password": "secret1"})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthHandler_LoginFailuresAreIndistinguishable(t *testing.T) {
	ts := newTestServer(t, true)
	ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "ann", "password": "secret1", "role": "MEMBER"})

	wrongPassword := ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "ann", "password": "nope123"})
	unknownUser := ts.do(http.MethodPost, "/api/v1/auth/login", "", gin.H{"username": "bob", "password": "nope123"})

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, http.StatusUnauthorized, unknownUser.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownUser.Body.String())
}

func TestAuthHandler_RegisterValidation(t *testing.T) {
	ts := newTestServer(t, true)

	rec := ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "x", "password": "secret1", "role": "OWNER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "role must be one of")

	rec = ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "x", "password": "123", "role": "MEMBER"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAuthHandler_AdminSignupCanBeDisabled(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "root", "password": "secret1", "role": "ADMIN"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "ann", "password": "secret1", "role": "MEMBER"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestUserHandler_AdminOnly(t *testing.T) {
	ts := newTestServer(t, true)
	ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "ann", "password": "secret1", "role": "MEMBER"})
	ts.do(http.MethodPost, "/api/v1/auth/register", "", gin.H{"username": "coach", "password": "secret1", "role": "TRAINER"})

	assert.Equal(t, http.StatusUnauthorized, ts.do(http.MethodGet, "/api/v1/users", "", nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/v1/users", ts.token(t, 1, model.RoleMember), nil).Code)

	admin := ts.token(t, 99, model.RoleAdmin)
	rec := ts.do(http.MethodGet, "/api/v1/users?role=trainer", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var users []model.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.Equal(t, "coach", users[0].Username)

	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodGet, "/api/v1/users?role=owner", admin, nil).Code)

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, "/api/v1/users/1", admin, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, "/api/v1/users/1", admin, nil).Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(http.MethodDelete, "/api/v1/users/abc", admin, nil).Code)
}

func TestUserHandler_StorageFailureIs500(t *testing.T) {
	ts := newTestServer(t, true)
	ts.users.err = fmt.Errorf("find all users: %w: connection reset", repository.ErrStorage)

	rec := ts.do(http.MethodGet, "/api/v1/users", ts.token(t, 1, model.RoleAdmin), nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestWorkoutClassHandler_OwnershipScoping(t *testing.T) {
	ts := newTestServer(t, true)
	owner := ts.token(t, 10, model.RoleTrainer)
	other := ts.token(t, 11, model.RoleTrainer)
	member := ts.token(t, 12, model.RoleMember)

	body := gin.H{"type": "Yoga", "description": "Morning flow", "scheduled_at": "2024-05-01T08:00:00Z", "capacity": 20}
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/v1/classes", member, body).Code)

	rec := ts.do(http.MethodPost, "/api/v1/classes", owner, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.WorkoutClass
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 10, created.TrainerID)

	path := fmt.Sprintf("/api/v1/classes/%d", created.ID)
	update := gin.H{"type": "Pilates", "scheduled_at": "2024-05-02T08:00:00Z", "capacity": 15}

	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodPut, path, other, update).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, path, other, nil).Code)
	assert.Equal(t, "Yoga", ts.classes.classes[created.ID].Type)

	assert.Equal(t, http.StatusOK, ts.do(http.MethodPut, path, owner, update).Code)
	assert.Equal(t, "Pilates", ts.classes.classes[created.ID].Type)

	rec = ts.do(http.MethodGet, "/api/v1/classes", member, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Pilates")

	rec = ts.do(http.MethodGet, "/api/v1/classes/mine", other, nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	assert.Equal(t, http.StatusNoContent, ts.do(http.MethodDelete, path, owner, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do(http.MethodDelete, path, owner, nil).Code)
}

func TestWorkoutClassHandler_RequiresTypeAndSchedule(t *testing.T) {
	ts := newTestServer(t, true)
	rec := ts.do(http.MethodPost, "/api/v1/classes", ts.token(t, 10, model.RoleTrainer), gin.H{"description": "no type"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMembershipHandler_PurchaseAndSummaries(t *testing.T) {
	ts := newTestServer(t, true)
	ann := ts.token(t, 1, model.RoleMember)
	bob := ts.token(t, 2, model.RoleMember)

	rec := ts.do(http.MethodPost, "/api/v1/memberships", ann, gin.H{"type": "Monthly", "cost": "79.99", "duration_months": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"cost":"79.99"`)

	ts.do(http.MethodPost, "/api/v1/memberships", ann, gin.H{"type": "Day pass", "cost": "20.01"})
	ts.do(http.MethodPost, "/api/v1/memberships", bob, gin.H{"type": "Annual", "cost": "500"})

	rec = ts.do(http.MethodGet, "/api/v1/memberships/mine", ann, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var mine model.MembershipSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mine))
	assert.Len(t, mine.Memberships, 2)
	assert.True(t, mine.Total.Equal(decimal.RequireFromString("100")), mine.Total.String())
	assert.Equal(t, 1, ts.memberships.expenseCalls)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/v1/memberships", ann, nil).Code)

	rec = ts.do(http.MethodGet, "/api/v1/memberships", ts.token(t, 3, model.RoleAdmin), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var all model.MembershipSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &all))
	assert.Len(t, all.Memberships, 3)
	assert.True(t, all.Total.Equal(decimal.RequireFromString("600")), all.Total.String())
}

func TestMembershipHandler_RejectsNegativeValues(t *testing.T) {
	ts := newTestServer(t, true)
	ann := ts.token(t, 1, model.RoleMember)

	rec := ts.do(http.MethodPost, "/api/v1/memberships", ann, gin.H{"type": "Monthly", "cost": "-1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "non-negative")

	rec = ts.do(http.MethodPost, "/api/v1/memberships", ann, gin.H{"type": "Monthly", "cost": "10", "duration_months": -2})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, ts.memberships.memberships)
}

func TestMembershipHandler_RejectsValuesTheColumnsCannotHold(t *testing.T) {
	ts := newTestServer(t, true)
	ann := ts.token(t, 1, model.RoleMember)

	for _, body := range []gin.H{
		{"type": "Monthly", "cost": "20.005"},
		{"type": "Monthly", "cost": "123456789012.50"},
		{"type": "Monthly", "cost": "10", "duration_months": 1201},
		{"type": strings.Repeat("m", 101), "cost": "10"},
	} {
		rec := ts.do(http.MethodPost, "/api/v1/memberships", ann, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	assert.Empty(t, ts.memberships.memberships)

	rec := ts.do(http.MethodPost, "/api/v1/memberships", ann, gin.H{"type": "Monthly", "cost": "99999999.99", "duration_months": 1200})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestMerchHandler_RejectsValuesTheColumnsCannotHold(t *testing.T) {
	ts := newTestServer(t, true)
	admin := ts.token(t, 1, model.RoleAdmin)

	for _, body := range []gin.H{
		{"name": "Shaker", "price": "9.999", "quantity_in_stock": 1},
		{"name": "Shaker", "price": "100000000", "quantity_in_stock": 1},
		{"name": strings.Repeat("s", 101), "price": "9.99", "quantity_in_stock": 1},
		{"name": "Shaker", "type": strings.Repeat("t", 101), "price": "9.99", "quantity_in_stock": 1},
	} {
		rec := ts.do(http.MethodPost, "/api/v1/merch", admin, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	}
	assert.Empty(t, ts.merch.items)
}

func TestWorkoutClassHandler_RejectsOverlongType(t *testing.T) {
	ts := newTestServer(t, true)
	rec := ts.do(http.MethodPost, "/api/v1/classes", ts.token(t, 10, model.RoleTrainer), gin.H{
		"type": strings.Repeat("c", 101), "scheduled_at": "2024-05-01T08:00:00Z",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "type must be at most 100")
	assert.Empty(t, ts.classes.classes)
}

func TestMembershipHandler_EmptyListIsArray(t *testing.T) {
	ts := newTestServer(t, true)
	rec := ts.do(http.MethodGet, "/api/v1/memberships/mine", ts.token(t, 1, model.RoleMember), nil)
	assert.JSONEq(t, `{"memberships":[],"total":"0"}`, rec.Body.String())
}

func TestMerchHandler(t *testing.T) {
	ts := newTestServer(t, true)
	admin := ts.token(t, 1, model.RoleAdmin)
	member := ts.token(t, 2, model.RoleMember)

	item := gin.H{"name": "Shaker", "type": "Accessory", "price": "10.10", "quantity_in_stock": 3}
	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodPost, "/api/v1/merch", member, item).Code)
	require.Equal(t, http.StatusCreated, ts.do(http.MethodPost, "/api/v1/merch", admin, item).Code)
	ts.do(http.MethodPost, "/api/v1/merch", admin, gin.H{"name": "Towel", "price": "5.05", "quantity_in_stock": 2})

	bad := ts.do(http.MethodPost, "/api/v1/merch", admin, gin.H{"name": "Mat", "price": "5", "quantity_in_stock": -1})
	assert.Equal(t, http.StatusBadRequest, bad.Code)

	rec := ts.do(http.MethodGet, "/api/v1/merch", member, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var items []model.MerchItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	assert.Len(t, items, 2)

	assert.Equal(t, http.StatusForbidden, ts.do(http.MethodGet, "/api/v1/merch/stock-value", member, nil).Code)
	rec = ts.do(http.MethodGet, "/api/v1/merch/stock-value", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var value struct {
		Total decimal.Decimal `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &value))
	assert.True(t, value.Total.Equal(decimal.RequireFromString("40.40")), value.Total.String())
}

func TestRouter_HealthAndMetrics(t *testing.T) {
	ts := newTestServer(t, true)
	assert.Equal(t, http.StatusOK, ts.do(http.MethodGet, "/health", "", nil).Code)

	ts.do(http.MethodGet, "/api/v1/classes", "", nil)
	rec := ts.do(http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gym_http_requests_total")
}
