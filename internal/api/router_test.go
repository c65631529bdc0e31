package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/avelasquez/entertainment-api/internal/auth"
	"github.com/avelasquez/entertainment-api/internal/database"
	"github.com/avelasquez/entertainment-api/internal/services"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.Migrate(db))

	tokens := auth.NewTokenManager([]byte("test-secret"), time.Hour)
	router := NewRouter(tokens, services.NewUserService(db), services.NewEntertainmentService(db), "")

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestWelcome(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	buf := new(bytes.Buffer)
	buf.ReadFrom(resp.Body)
	require.Equal(t, "Welcome to the Entertainment CRUD API!", buf.String())
}

func TestRegister(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "Abcdef1!"}

	resp := doJSON(t, http.MethodPost, srv.URL+"/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Contains(t, decodeBody(t, resp), "message")

	// same username again
	resp = doJSON(t, http.MethodPost, srv.URL+"/register", "", creds)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Username already taken", decodeBody(t, resp)["error"])
}

func TestRegister_Validation(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	tests := []struct {
		name     string
		username string
		password string
		wantErr  string
	}{
		{"missing username", "", "Abcdef1!", "Username is required"},
		{"short password", "dave", "Ab1!", "password must be at least 6 characters long"},
		{"weak password", "dave", "abcdefgh", "password must be at least 8 characters and contain a lowercase letter, an uppercase letter, a number and a special character (@$!%*?&)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := doJSON(t, http.MethodPost, srv.URL+"/register", "",
				map[string]string{"username": tt.username, "password": tt.password})
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			require.Equal(t, tt.wantErr, decodeBody(t, resp)["error"])
		})
	}
}

func TestLogin(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "Abcdef1!"}

	resp := doJSON(t, http.MethodPost, srv.URL+"/register", "", creds)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, http.MethodPost, srv.URL+"/login", "", creds)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.NotEmpty(t, body["token"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/login", "",
		map[string]string{"username": "alice", "password": "wrong"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid username or password", decodeBody(t, resp)["error"])

	resp = doJSON(t, http.MethodPost, srv.URL+"/login", "",
		map[string]string{"username": "ghost", "password": "Abcdef1!"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "Invalid username or password", decodeBody(t, resp)["error"])
}

func TestMe(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "Abcdef1!"}

	resp := doJSON(t, http.MethodPost, srv.URL+"/register", "", creds)
	resp.Body.Close()
	resp = doJSON(t, http.MethodPost, srv.URL+"/login", "", creds)
	token, _ := decodeBody(t, resp)["token"].(string)
	require.NotEmpty(t, token)

	resp = doJSON(t, http.MethodGet, srv.URL+"/me", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	require.Equal(t, "alice", body["username"])
	require.NotContains(t, body, "password_hash")

	resp = doJSON(t, http.MethodGet, srv.URL+"/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.Equal(t, "access denied", decodeBody(t, resp)["error"])

	resp = doJSON(t, http.MethodGet, srv.URL+"/me", "garbage.token.here", nil)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Equal(t, "invalid token", decodeBody(t, resp)["error"])
}

func TestEntertainmentCRUD(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	entry := map[string]interface{}{
		"name":            "Dune",
		"publicationDate": "1965-01-01",
		"genre":           []string{"scifi"},
		"type":            "book",
		"details":         map[string]interface{}{},
	}

	// create
	resp := doJSON(t, http.MethodPost, srv.URL+"/entertainment", "", entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)

	// read back
	resp = doJSON(t, http.MethodGet, srv.URL+"/entertainment/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	got := decodeBody(t, resp)
	require.Equal(t, "Dune", got["name"])
	require.Equal(t, "1965-01-01", got["publicationDate"])

	// list
	resp = doJSON(t, http.MethodGet, srv.URL+"/entertainment", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	resp.Body.Close()
	require.Len(t, list, 1)

	// partial update
	resp = doJSON(t, http.MethodPut, srv.URL+"/entertainment/"+id, "",
		map[string]interface{}{"rating": 9.5})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decodeBody(t, resp)
	require.Equal(t, 9.5, updated["rating"])
	require.Equal(t, "Dune", updated["name"])

	// delete echoes the deleted entry
	resp = doJSON(t, http.MethodDelete, srv.URL+"/entertainment/"+id, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	deleted := decodeBody(t, resp)
	require.Equal(t, "Entry deleted successfully", deleted["message"])

	// gone now
	resp = doJSON(t, http.MethodGet, srv.URL+"/entertainment/"+id, "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Entry not found", decodeBody(t, resp)["error"])
}

func TestEntertainment_CreateInvalid(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/entertainment", "", map[string]interface{}{
		"name":            "Serial",
		"publicationDate": "2014-10-03",
		"genre":           []string{"truecrime"},
		"type":            "podcast",
		"details":         map[string]interface{}{},
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, decodeBody(t, resp)["error"], "type must be one of")
}

func TestEntertainment_UpdateUnknownID(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPut, srv.URL+"/entertainment/nope", "",
		map[string]interface{}{"name": "x"})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.Equal(t, "Entry not found", decodeBody(t, resp)["error"])

	resp = doJSON(t, http.MethodDelete, srv.URL+"/entertainment/nope", "", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}
