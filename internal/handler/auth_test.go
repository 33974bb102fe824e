package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SenoussiAl/movie-catalog/internal/config"
	"github.com/SenoussiAl/movie-catalog/internal/middleware"
	"github.com/SenoussiAl/movie-catalog/internal/model"
	"github.com/SenoussiAl/movie-catalog/internal/repository"
	"github.com/SenoussiAl/movie-catalog/internal/utils"
)

type authStoreStub struct {
	byEmail map[string]*model.User
	byID    map[string]*model.User
}

func newAuthStoreStub() *authStoreStub {
	return &authStoreStub{byEmail: map[string]*model.User{}, byID: map[string]*model.User{}}
}

func (s *authStoreStub) add(u *model.User) {
	s.byEmail[u.Email] = u
	s.byID[u.ID] = u
}

func (s *authStoreStub) Create(ctx context.Context, email, username, password, role string, cost int) (*model.User, error) {
	email = strings.ToLower(email)
	if _, exists := s.byEmail[email]; exists {
		return nil, repository.ErrDuplicate
	}
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return nil, err
	}
	u := &model.User{ID: "u-" + username, Email: email, Username: username, Password: hash, Role: role}
	s.add(u)
	return u, nil
}

func (s *authStoreStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	u, ok := s.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *authStoreStub) GetByID(ctx context.Context, id string) (*model.User, error) {
	u, ok := s.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func testAuthConfig() config.Config {
	return config.Config{JWTSecret: "test-secret", AccessTTLMin: 15, BcryptCost: bcrypt.MinCost}
}

func TestRegister(t *testing.T) {
	store := newAuthStoreStub()
	h := NewAuthHandler(testAuthConfig(), store)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/register",
		`{"email":"Neil@Example.com","username":"neil","password":"longenough"}`)
	require.NoError(t, h.Register(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		User struct {
			Email string `json:"email"`
			Role  string `json:"role"`
		} `json:"user"`
		Access struct {
			Token string `json:"token"`
		} `json:"access"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "neil@example.com", resp.User.Email)
	assert.Equal(t, model.RoleUser, resp.User.Role, "role defaults to USER")
	require.NotEmpty(t, resp.Access.Token)

	// The issued token round-trips through the parser.
	userID, role, err := utils.ParseAccessToken("test-secret", resp.Access.Token)
	require.NoError(t, err)
	assert.Equal(t, "u-neil", userID)
	assert.Equal(t, model.RoleUser, role)

	// The stored password is hashed.
	stored := store.byEmail["neil@example.com"]
	assert.NotEqual(t, "longenough", stored.Password)
}

func TestRegisterRejectsAdminRole(t *testing.T) {
	h := NewAuthHandler(testAuthConfig(), newAuthStoreStub())

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/register",
		`{"email":"x@example.com","username":"mallory","password":"longenough","role":"ADMIN"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newAuthStoreStub()
	store.add(&model.User{ID: "u1", Email: "neil@example.com"})
	h := NewAuthHandler(testAuthConfig(), store)

	c, rec := newTestContext(t, http.MethodPost, "/v1/auth/register",
		`{"email":"neil@example.com","username":"neil2","password":"longenough"}`)
	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestLogin(t *testing.T) {
	store := newAuthStoreStub()
	hash, err := utils.HashPassword("longenough", bcrypt.MinCost)
	require.NoError(t, err)
	store.add(&model.User{ID: "u1", Email: "neil@example.com", Password: hash, Role: model.RoleCritic})
	h := NewAuthHandler(testAuthConfig(), store)

	t.Run("valid credentials", func(t *testing.T) {
		c, rec := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"neil@example.com","password":"longenough"}`)
		require.NoError(t, h.Login(c))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "token")
	})

	t.Run("wrong password and unknown email look the same", func(t *testing.T) {
		c1, rec1 := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"neil@example.com","password":"wrongwrong"}`)
		require.NoError(t, h.Login(c1))

		c2, rec2 := newTestContext(t, http.MethodPost, "/v1/auth/login",
			`{"email":"ghost@example.com","password":"longenough"}`)
		require.NoError(t, h.Login(c2))

		assert.Equal(t, http.StatusUnauthorized, rec1.Code)
		assert.Equal(t, http.StatusUnauthorized, rec2.Code)
		assert.JSONEq(t, rec1.Body.String(), rec2.Body.String())
	})
}

func TestMe(t *testing.T) {
	store := newAuthStoreStub()
	store.add(&model.User{ID: "u1", Email: "neil@example.com", Username: "neil"})
	h := NewAuthHandler(testAuthConfig(), store)

	c, rec := newTestContext(t, http.MethodGet, "/v1/me", "")
	c.Set(middleware.ContextUserID, "u1")
	require.NoError(t, h.Me(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "neil@example.com")
}
