package middleware

import (
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"

	"gitea.com/go-chi/session"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blogem/campus-feedback/authenticator"
	"github.com/blogem/campus-feedback/userctx"
)

type staticVerifier string

func (v staticVerifier) Verify(password string) bool { return string(v) == password }

func newGateServer(t *testing.T) *httptest.Server {
	t.Helper()

	sessioner, err := session.Sessioner(session.Options{
		Provider:   "memory",
		CookieName: "test_session",
	})
	require.NoError(t, err)

	verifier := staticVerifier("admin123")

	r := chi.NewRouter()
	r.Use(sessioner)
	r.Use(Actor(verifier))

	r.Get("/admin", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("actor=" + userctx.GetActor(r.Context())))
	})
	r.Post("/admin/login", func(w http.ResponseWriter, r *http.Request) {
		err := AdminLoginGate(w, r, verifier).Login(r.FormValue("password"))
		if errors.Is(err, authenticator.ErrInvalidPassword) {
			http.Error(w, "Incorrect password", http.StatusUnauthorized)
			return
		}
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})
	r.Post("/admin/logout", func(w http.ResponseWriter, r *http.Request) {
		_ = AdminGate(r, verifier).Logout()
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
	})
	r.With(RequireAdmin).Get("/admin/secret", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("secret"))
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func TestAdminGate_Flow(t *testing.T) {
	srv := newGateServer(t)
	client := newClient(t)

	resp, err := client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	assert.Equal(t, "actor=anonymous", readBody(t, resp))

	resp, err = client.Get(srv.URL + "/admin/secret")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	resp, err = client.PostForm(srv.URL+"/admin/login", url.Values{"password": {"wrong"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Incorrect password")

	resp, err = client.PostForm(srv.URL+"/admin/login", url.Values{"password": {"admin123"}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)

	resp, err = client.Get(srv.URL + "/admin/secret")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret", readBody(t, resp))

	resp, err = client.PostForm(srv.URL+"/admin/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Get(srv.URL + "/admin")
	require.NoError(t, err)
	assert.Equal(t, "actor=anonymous", readBody(t, resp))
}

func TestAdminGate_SessionsAreIsolated(t *testing.T) {
	srv := newGateServer(t)
	admin := newClient(t)
	visitor := newClient(t)

	resp, err := admin.PostForm(srv.URL+"/admin/login", url.Values{"password": {"admin123"}})
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = visitor.Get(srv.URL + "/admin/secret")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}

func sessionCookie(t *testing.T, client *http.Client, rawURL string) *http.Cookie {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	for _, c := range client.Jar.Cookies(u) {
		if c.Name == "test_session" {
			return c
		}
	}
	t.Fatalf("no session cookie for %s", rawURL)
	return nil
}

func TestAdminGate_LoginRegeneratesSessionID(t *testing.T) {
	srv := newGateServer(t)
	attacker := newClient(t)
	victim := newClient(t)

	resp, err := attacker.Get(srv.URL + "/admin")
	require.NoError(t, err)
	resp.Body.Close()
	planted := sessionCookie(t, attacker, srv.URL)

	// The victim signs in with a session ID chosen by someone else
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	victim.Jar.SetCookies(u, []*http.Cookie{{Name: planted.Name, Value: planted.Value, Path: "/"}})

	resp, err = victim.PostForm(srv.URL+"/admin/login", url.Values{"password": {"admin123"}})
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	assert.NotEqual(t, planted.Value, sessionCookie(t, victim, srv.URL).Value)

	resp, err = victim.Get(srv.URL + "/admin/secret")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "secret", readBody(t, resp))

	resp, err = attacker.Get(srv.URL + "/admin/secret")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
}
