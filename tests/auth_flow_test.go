package tests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"movie_catalog/tests/suite"

	"github.com/brianvoe/gofakeit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const passDefaultLen = 10

type tokenPayload struct {
	Status string `json:"status"`
	Data   struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	} `json:"data"`
}

func postJSON(st *suite.Suite, method, path string, body any) *httptest.ResponseRecorder {
	st.Helper()

	payload, err := json.Marshal(body)
	require.NoError(st.T, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	st.Server.Echo().ServeHTTP(rec, req)

	return rec
}

func registerAndLogin(st *suite.Suite, email, pass string) tokenPayload {
	st.Helper()

	rec := postJSON(st, http.MethodPost, "/api/v1/users", map[string]string{
		"name":              gofakeit.FirstName(),
		"profile_image_url": gofakeit.URL(),
		"email":             email,
		"password":          pass,
		"phone_number":      gofakeit.Contact().Phone,
	})
	require.Equal(st.T, http.StatusCreated, rec.Code, rec.Body.String())

	rec = postJSON(st, http.MethodPost, "/api/v1/users/login", map[string]string{
		"email":    email,
		"password": pass,
	})
	require.Equal(st.T, http.StatusOK, rec.Code, rec.Body.String())

	var tokens tokenPayload
	require.NoError(st.T, json.Unmarshal(rec.Body.Bytes(), &tokens))
	require.NotEmpty(st.T, tokens.Data.AccessToken)
	require.NotEmpty(st.T, tokens.Data.RefreshToken)

	return tokens
}

func TestAuthFlow_HappyPath(t *testing.T) {
	_, st := suite.New(t)

	email := gofakeit.Email()
	pass := randomFakePassword()

	tokens := registerAndLogin(st, email, pass)

	// Rotate the pair.
	rec := postJSON(st, http.MethodPost, "/api/v1/users/refresh", map[string]string{
		"token": tokens.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var rotated tokenPayload
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rotated))
	assert.NotEqual(t, tokens.Data.RefreshToken, rotated.Data.RefreshToken)

	// The redeemed token is spent.
	rec = postJSON(st, http.MethodPost, "/api/v1/users/refresh", map[string]string{
		"token": tokens.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Logout with the rotated token, then nothing works anymore.
	rec = postJSON(st, http.MethodDelete, "/api/v1/users/logout", map[string]string{
		"token": rotated.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = postJSON(st, http.MethodPost, "/api/v1/users/refresh", map[string]string{
		"token": rotated.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.Equal(t, 0, st.TokenStore.Len())
}

func TestAuthFlow_DuplicateRegistration(t *testing.T) {
	_, st := suite.New(t)

	email := gofakeit.Email()
	pass := randomFakePassword()

	registerAndLogin(st, email, pass)

	rec := postJSON(st, http.MethodPost, "/api/v1/users", map[string]string{
		"name":              gofakeit.FirstName(),
		"profile_image_url": gofakeit.URL(),
		"email":             email,
		"password":          pass,
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestAuthFlow_LoginFailures(t *testing.T) {
	_, st := suite.New(t)

	email := gofakeit.Email()
	pass := randomFakePassword()

	registerAndLogin(st, email, pass)

	cases := []struct {
		name     string
		email    string
		password string
		want     int
	}{
		{"missing password", email, "", http.StatusBadRequest},
		{"unknown email", gofakeit.Email(), pass, http.StatusNotFound},
		{"wrong password", email, pass + "x", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(st, http.MethodPost, "/api/v1/users/login", map[string]string{
				"email":    tc.email,
				"password": tc.password,
			})
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestAuthFlow_RefreshRejections(t *testing.T) {
	_, st := suite.New(t)

	cases := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not-a-jwt"},
		{"well-formed but never issued", fmt.Sprintf("%s.%s.%s", "eyJhbGciOiJIUzI1NiJ9", "eyJ1aWQiOiJ4In0", "c2ln")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(st, http.MethodPost, "/api/v1/users/refresh", map[string]string{
				"token": tc.token,
			})
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestAuthFlow_LogoutIsOneShot(t *testing.T) {
	_, st := suite.New(t)

	tokens := registerAndLogin(st, gofakeit.Email(), randomFakePassword())

	rec := postJSON(st, http.MethodDelete, "/api/v1/users/logout", map[string]string{
		"token": tokens.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postJSON(st, http.MethodDelete, "/api/v1/users/logout", map[string]string{
		"token": tokens.Data.RefreshToken,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func randomFakePassword() string {
	return gofakeit.Password(true, true, true, true, false, passDefaultLen)
}
