package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pickuphub/server/internal/auth"
	"github.com/pickuphub/server/internal/domain/users"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type stubUsersRepo struct {
	createFn     func(params users.CreateParams) (users.User, error)
	getByEmailFn func(email string) (users.User, error)
}

func (s stubUsersRepo) Create(_ context.Context, params users.CreateParams) (users.User, error) {
	return s.createFn(params)
}

func (s stubUsersRepo) GetByEmail(_ context.Context, email string) (users.User, error) {
	return s.getByEmailFn(email)
}

func newAuthHandler(t *testing.T, repo stubUsersRepo) (*AuthHandler, *auth.JWTManager) {
	t.Helper()
	tokens := auth.NewJWTManager("test-secret", time.Hour, "pickuphub")
	return NewAuthHandler(users.NewService(repo, zerolog.Nop()), tokens), tokens
}

func TestRegisterSuccess(t *testing.T) {
	repo := stubUsersRepo{
		createFn: func(params users.CreateParams) (users.User, error) {
			return users.User{
				ID:      1,
				Email:   params.Email,
				Name:    params.Name,
				Surname: params.Surname,
				Phone:   params.Phone,
			}, nil
		},
	}
	handler, tokens := newAuthHandler(t, repo)

	body := `{"email":"a@x.com","password":"pw","name":"Ada","surname":"Lovelace","phone":"555-0101"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		User  map[string]any `json:"user"`
		Token string         `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, float64(1), resp.User["id"])
	require.Equal(t, "a@x.com", resp.User["email"])
	require.NotContains(t, resp.User, "password")
	require.NotContains(t, resp.User, "password_hash")

	userID, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(1), userID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := stubUsersRepo{
		createFn: func(users.CreateParams) (users.User, error) {
			return users.User{}, users.ErrEmailTaken
		},
	}
	handler, _ := newAuthHandler(t, repo)

	body := `{"email":"a@x.com","password":"pw","name":"Ada","surname":"Lovelace"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "email already registered", resp["error"])
	require.NotContains(t, rec.Body.String(), "token")
}

func TestRegisterMissingFields(t *testing.T) {
	handler, _ := newAuthHandler(t, stubUsersRepo{})

	body := `{"email":"not-an-email","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Register(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := auth.HashPassword("right-pw")
	require.NoError(t, err)

	repo := stubUsersRepo{
		getByEmailFn: func(string) (users.User, error) {
			return users.User{ID: 1, Email: "a@x.com", PasswordHash: hash}, nil
		},
	}
	handler, _ := newAuthHandler(t, repo)

	body := `{"email":"a@x.com","password":"wrong-pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "invalid email or password", resp["error"])
}

func TestLoginUnknownEmailSameMessage(t *testing.T) {
	repo := stubUsersRepo{
		getByEmailFn: func(string) (users.User, error) {
			return users.User{}, users.ErrNotFound
		},
	}
	handler, _ := newAuthHandler(t, repo)

	body := `{"email":"nobody@x.com","password":"pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "invalid email or password", resp["error"])
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	hash, err := auth.HashPassword("right-pw")
	require.NoError(t, err)

	repo := stubUsersRepo{
		getByEmailFn: func(string) (users.User, error) {
			return users.User{ID: 9, Email: "a@x.com", PasswordHash: hash, Name: "Ada", Surname: "Lovelace"}, nil
		},
	}
	handler, tokens := newAuthHandler(t, repo)

	body := `{"email":"a@x.com","password":"right-pw"}`
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	userID, err := tokens.Validate(resp.Token)
	require.NoError(t, err)
	require.Equal(t, int64(9), userID)
}
