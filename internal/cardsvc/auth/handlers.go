package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/jwtauth"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	stateCookie    = "oidc_state"
	providerCookie = "oidc_provider"
	stateCookieAge = 600 // seconds, covers one round-trip to the provider
)

// Handler runs the OIDC handshake against an injected provider map.
// Every handshake failure ends in a redirect to the failure URL; no
// structured error reaches the caller.
type Handler struct {
	providers  map[string]ProviderConfig
	sessions   *Sessions
	successURL string
	failureURL string
}

func NewHandler(providers map[string]ProviderConfig, sessions *Sessions, successURL, failureURL string) *Handler {
	return &Handler{
		providers:  providers,
		sessions:   sessions,
		successURL: successURL,
		failureURL: failureURL,
	}
}

func (h *Handler) SetRoutes(r *chi.Mux) {
	r.Get("/auth/{provider}", h.LoginHandler)
	r.Get("/callback", h.CallbackHandler)

	r.Group(func(r chi.Router) {
		r.Use(h.sessions.Verifier())
		r.Use(jwtauth.Authenticator)

		r.Get("/auth/me", h.MeHandler)
	})
}

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "provider")
	p, ok := h.providers[name]
	if !ok {
		log.Errorf("Error: auth requested for unknown provider %q", name)
		http.Redirect(w, r, h.failureURL, http.StatusFound)
		return
	}

	state := uuid.NewString()
	setHandshakeCookie(w, stateCookie, state)
	setHandshakeCookie(w, providerCookie, name)

	http.Redirect(w, r, p.oauth2Config().AuthCodeURL(state), http.StatusFound)
}

func (h *Handler) CallbackHandler(w http.ResponseWriter, r *http.Request) {
	clearHandshakeCookie(w, stateCookie)
	clearHandshakeCookie(w, providerCookie)

	principal, err := h.completeHandshake(r)
	if err != nil {
		log.Errorf("Error [auth callback] %s", err)
		http.Redirect(w, r, h.failureURL, http.StatusFound)
		return
	}

	token, err := h.sessions.Issue(principal)
	if err != nil {
		log.Errorf("Error [auth session] %s", err)
		http.Redirect(w, r, h.failureURL, http.StatusFound)
		return
	}

	http.SetCookie(w, h.sessions.Cookie(token))
	http.Redirect(w, r, h.successURL, http.StatusFound)
}

func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	principal, err := PrincipalFromContext(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(principal)
}

func (h *Handler) completeHandshake(r *http.Request) (Principal, error) {
	query := r.URL.Query()

	if errParam := query.Get("error"); errParam != "" {
		return Principal{}, fmt.Errorf("provider returned error %q", errParam)
	}

	state, err := r.Cookie(stateCookie)
	if err != nil || state.Value == "" || state.Value != query.Get("state") {
		return Principal{}, fmt.Errorf("state mismatch")
	}

	name, err := r.Cookie(providerCookie)
	if err != nil {
		return Principal{}, fmt.Errorf("missing provider cookie")
	}
	p, ok := h.providers[name.Value]
	if !ok {
		return Principal{}, fmt.Errorf("unknown provider %q in callback", name.Value)
	}

	code := query.Get("code")
	if code == "" {
		return Principal{}, fmt.Errorf("missing authorization code")
	}

	cfg := p.oauth2Config()
	token, err := cfg.Exchange(r.Context(), code)
	if err != nil {
		return Principal{}, fmt.Errorf("code exchange failed: %w", err)
	}

	return fetchPrincipal(r.Context(), p, name.Value, token.AccessToken)
}

func fetchPrincipal(ctx context.Context, p ProviderConfig, providerName, accessToken string) (Principal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.UserInfoURL, nil)
	if err != nil {
		return Principal{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return Principal{}, fmt.Errorf("userinfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Principal{}, fmt.Errorf("userinfo returned status %d", resp.StatusCode)
	}

	var claims struct {
		Sub     string `json:"sub"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&claims); err != nil {
		return Principal{}, fmt.Errorf("could not decode userinfo: %w", err)
	}

	return Principal{
		Subject:  claims.Sub,
		Name:     claims.Name,
		Email:    claims.Email,
		Picture:  claims.Picture,
		Provider: providerName,
	}, nil
}

func setHandshakeCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   stateCookieAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearHandshakeCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
