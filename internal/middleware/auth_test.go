package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"poe_tracker_backend/internal/config"
	"poe_tracker_backend/internal/model"
	"poe_tracker_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// userStore backs the middleware with a fixed set of accounts.
type userStore struct {
	users map[uint]*model.User
}

func (s *userStore) FindByID(id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func newAuthRouter(cfg *config.Config, store *userStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	rg := r.Group("/api", AuthMiddleware(cfg, store))
	rg.GET("/profile", func(c *gin.Context) {
		util.Success(c, util.GetUserFromContext(c).Username)
	})
	admin := rg.Group("/admin", RoleMiddleware(model.Admin))
	admin.GET("/users", func(c *gin.Context) {
		util.Success(c, nil)
	})
	return r
}

func tokenFor(t *testing.T, cfg *config.Config, u *model.User) string {
	t.Helper()
	token, err := util.GenerateJWT(u, cfg.JWT.Secret, cfg.JWT.ExpireTime)
	require.NoError(t, err)
	return token
}

func get(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsDeactivatedAccount(t *testing.T) {
	cfg := testConfig()
	active := &model.User{Username: "alice", Role: model.Trainee, Active: true}
	active.ID = 1
	disabled := &model.User{Username: "bob", Role: model.Trainee, Active: true}
	disabled.ID = 2
	store := &userStore{users: map[uint]*model.User{1: active, 2: disabled}}
	r := newAuthRouter(cfg, store)

	token := tokenFor(t, cfg, disabled)
	assert.Equal(t, http.StatusOK, get(r, "/api/profile", token).Code)

	// Deactivation takes effect on the next request, token or no token.
	disabled.Active = false
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/profile", token).Code)

	assert.Equal(t, http.StatusOK, get(r, "/api/profile", tokenFor(t, cfg, active)).Code)
}

func TestAuthMiddlewareRejectsBadTokens(t *testing.T) {
	cfg := testConfig()
	store := &userStore{users: map[uint]*model.User{}}
	r := newAuthRouter(cfg, store)

	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/profile", "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/profile", "not-a-token").Code)

	// Well-formed token for an account that no longer exists.
	ghost := &model.User{Username: "ghost", Role: model.Trainee, Active: true}
	ghost.ID = 99
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/profile", tokenFor(t, cfg, ghost)).Code)

	// Valid claims signed with the wrong key.
	wrong, err := util.GenerateJWT(ghost, "other-secret", time.Hour)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "/api/profile", wrong).Code)
}

func TestRoleMiddlewareGatesAdminRoutes(t *testing.T) {
	cfg := testConfig()
	admin := &model.User{Username: "root", Role: model.Admin, Active: true}
	admin.ID = 1
	users := map[uint]*model.User{1: admin}
	id := uint(2)
	for _, role := range []model.UserRole{model.Trainee, model.Assessor, model.InternalVerifier, model.ExternalVerifier} {
		u := &model.User{Username: string(role), Role: role, Active: true}
		u.ID = id
		users[id] = u
		id++
	}
	r := newAuthRouter(cfg, &userStore{users: users})

	assert.Equal(t, http.StatusOK, get(r, "/api/admin/users", tokenFor(t, cfg, admin)).Code)

	for uid, u := range users {
		if uid == admin.ID {
			continue
		}
		w := get(r, "/api/admin/users", tokenFor(t, cfg, u))
		assert.Equal(t, http.StatusForbidden, w.Code, "role %s", u.Role)
	}
}
