package handlers

import (
	"html/template"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Handler serves the two static frontend pages. The login page links
// straight at the backend's provider auth endpoint on another origin.
type Handler struct {
	backendOrigin string
}

func NewHandler(backendOrigin string) *Handler {
	return &Handler{backendOrigin: backendOrigin}
}

var loginPage = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="utf-8">
  <title>Connexion</title>
  <style>
    .login-button {
      display: inline-block;
      padding: 10px 20px;
      background: #4285f4;
      color: #fff;
      border-radius: 4px;
      text-decoration: none;
      font-family: sans-serif;
    }
  </style>
</head>
<body>
  <a class="login-button" href="{{.AuthURL}}">Se Connecter avec Google</a>
</body>
</html>
`))

const successPage = `<!DOCTYPE html>
<html lang="fr">
<head>
  <meta charset="utf-8">
  <title>Connexion réussie</title>
</head>
<body>
  <h1>Connexion réussie !</h1>
  <p>Vous êtes maintenant authentifié.</p>
</body>
</html>
`

func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	data := struct{ AuthURL string }{AuthURL: h.backendOrigin + "/auth/google"}
	if err := loginPage.Execute(w, data); err != nil {
		log.Errorf("Error rendering login page %s", err)
	}
}

func (h *Handler) SuccessHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(successPage))
}
