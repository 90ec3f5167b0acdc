package auth

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi"
)

const (
	successURL = "http://localhost:3000/success"
	failureURL = "http://localhost:3000"
)

func testSessions() *Sessions {
	return NewSessions("test-secret", time.Hour)
}

func testHandler(p ProviderConfig) (*Handler, *chi.Mux) {
	h := NewHandler(map[string]ProviderConfig{"test": p}, testSessions(), successURL, failureURL)
	r := chi.NewRouter()
	h.SetRoutes(r)
	return h, r
}

func staticProvider() ProviderConfig {
	return ProviderConfig{
		Issuer:           "https://provider.example",
		AuthorizationURL: "https://provider.example/authorize",
		TokenURL:         "https://provider.example/token",
		UserInfoURL:      "https://provider.example/userinfo",
		ClientID:         "client-id",
		ClientSecret:     "client-secret",
		CallbackURL:      "http://localhost:3001/callback",
		Scopes:           []string{"openid", "profile", "email"},
	}
}

func cookieValue(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name && c.Value != "" {
			return c.Value
		}
	}
	return ""
}

func TestLoginRedirectsToProvider(t *testing.T) {
	_, r := testHandler(staticProvider())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/test", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}

	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("could not parse redirect location: %v", err)
	}
	if !strings.HasPrefix(loc.String(), "https://provider.example/authorize") {
		t.Fatalf("expected redirect to authorization endpoint, got %s", loc)
	}

	state := loc.Query().Get("state")
	if state == "" {
		t.Fatalf("expected state in redirect URL")
	}
	if got := cookieValue(w.Result(), stateCookie); got != state {
		t.Fatalf("expected state cookie %q to match redirect state %q", got, state)
	}
	if loc.Query().Get("client_id") != "client-id" {
		t.Fatalf("expected client_id in redirect URL")
	}
}

func TestLoginUnknownProviderRedirectsToFailure(t *testing.T) {
	_, r := testHandler(staticProvider())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/nope", nil))

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if w.Header().Get("Location") != failureURL {
		t.Fatalf("expected failure redirect, got %s", w.Header().Get("Location"))
	}
}

func TestCallbackStateMismatchRedirectsToFailure(t *testing.T) {
	_, r := testHandler(staticProvider())

	req := httptest.NewRequest(http.MethodGet, "/callback?state=other&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "expected"})
	req.AddCookie(&http.Cookie{Name: providerCookie, Value: "test"})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", w.Code)
	}
	if w.Header().Get("Location") != failureURL {
		t.Fatalf("expected failure redirect, got %s", w.Header().Get("Location"))
	}
	if cookieValue(w.Result(), SessionCookie) != "" {
		t.Fatalf("expected no session cookie on failed handshake")
	}
}

func TestCallbackProviderErrorRedirectsToFailure(t *testing.T) {
	_, r := testHandler(staticProvider())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/callback?error=access_denied", nil))

	if w.Header().Get("Location") != failureURL {
		t.Fatalf("expected failure redirect, got %s", w.Header().Get("Location"))
	}
}

func TestCallbackHandshakeEstablishesSession(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/token":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"access_token":"tok123","token_type":"Bearer"}`)
		case "/userinfo":
			if r.Header.Get("Authorization") != "Bearer tok123" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"sub":"u1","name":"Ash Ketchum","email":"ash@example.com","picture":"ash.png"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer provider.Close()

	p := staticProvider()
	p.AuthorizationURL = provider.URL + "/authorize"
	p.TokenURL = provider.URL + "/token"
	p.UserInfoURL = provider.URL + "/userinfo"
	_, r := testHandler(p)

	// start the handshake to obtain the state
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/test", nil))
	loc, err := url.Parse(w.Header().Get("Location"))
	if err != nil {
		t.Fatalf("could not parse redirect location: %v", err)
	}
	state := loc.Query().Get("state")

	req := httptest.NewRequest(http.MethodGet, "/callback?state="+state+"&code=abc", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: state})
	req.AddCookie(&http.Cookie{Name: providerCookie, Value: "test"})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get("Location") != successURL {
		t.Fatalf("expected success redirect, got %s", w.Header().Get("Location"))
	}

	session := cookieValue(w.Result(), SessionCookie)
	if session == "" {
		t.Fatalf("expected session cookie on successful handshake")
	}

	// the session cookie authenticates /auth/me
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: session})

	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 from /auth/me, got %d %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	for _, want := range []string{`"u1"`, `"Ash Ketchum"`, `"ash@example.com"`, `"test"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in principal, got %s", want, body)
		}
	}
}

func TestMeWithoutSessionReturns401(t *testing.T) {
	_, r := testHandler(staticProvider())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth/me", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestNoCatchAllAuthRoute(t *testing.T) {
	_, r := testHandler(staticProvider())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/auth", nil))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for /auth, got %d", w.Code)
	}
}
