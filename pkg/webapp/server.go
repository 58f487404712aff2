package webapp

import (
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server serves the gate pages around the editor. It never touches image
// pixels; the editor itself runs on the client device.
type Server struct {
	cfg   Config
	store *Store
	log   *slog.Logger
	tmpl  *template.Template
}

// NewServer wires the handlers around a user store.
func NewServer(cfg Config, store *Store, log *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Server{cfg: cfg, store: store, log: log, tmpl: tmpl}, nil
}

// Router builds the route table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLoginPost)
	r.Get("/logout", s.handleLogout)
	r.Get("/manifest.json", s.handleManifest)

	r.Group(func(r chi.Router) {
		r.Use(s.requireLogin)
		r.Get("/", s.handleEditor)
	})

	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/admin", s.handleAdmin)
		r.Post("/admin/create_user", s.handleAdminCreate)
		r.Post("/admin/delete_user", s.handleAdminDelete)
	})

	return r
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		s.log.Error("render template", "template", name, "error", err)
	}
}

// safeNext keeps post-login redirects on-site.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return "/"
	}
	return next
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", map[string]string{
		"Msg":  r.URL.Query().Get("msg"),
		"Next": safeNext(r.URL.Query().Get("next")),
	})
}

func (s *Server) handleLoginPost(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := safeNext(r.FormValue("next"))

	u, err := s.store.Authenticate(username, password)
	if err != nil {
		if !errors.Is(err, ErrBadCredentials) {
			s.log.Error("authenticate", "error", err)
		}
		http.Redirect(w, r,
			"/login?msg="+url.QueryEscape("Sai tài khoản hoặc mật khẩu")+"&next="+url.QueryEscape(next),
			http.StatusFound)
		return
	}

	token, err := s.issueToken(u)
	if err != nil {
		s.log.Error("issue token", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.setSessionCookie(w, token)
	s.log.Info("login", "user", u.Username, "role", u.Role)
	http.Redirect(w, r, next, http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login?msg="+url.QueryEscape("Đã đăng xuất"), http.StatusFound)
}

func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	claims := claimsFrom(r.Context())
	s.render(w, "editor", map[string]any{
		"Username": claims.Username,
		"IsAdmin":  claims.Role == "admin",
	})
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers()
	if err != nil {
		s.log.Error("list users", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.render(w, "admin", map[string]any{
		"Username": claimsFrom(r.Context()).Username,
		"Users":    users,
	})
}

func (s *Server) handleAdminCreate(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username != "" && password != "" {
		// Duplicate usernames are silently ignored, as before.
		if err := s.store.CreateUser(username, password); err != nil {
			s.log.Warn("create user", "user", username, "error", err)
		}
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	if err := s.store.DeleteUser(username); err != nil {
		s.log.Warn("delete user", "user", username, "error", err)
		http.Redirect(w, r, "/admin", http.StatusFound)
		return
	}
	// Deleting yourself ends your session.
	if claims := claimsFrom(r.Context()); claims != nil && claims.Username == username {
		s.clearSessionCookie(w)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/admin", http.StatusFound)
}

func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	const icon = "https://cdn-icons-png.flaticon.com/512/2928/2928883.png"
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"name":             "TimeMark Editor",
		"short_name":       "TimeMark",
		"start_url":        "/",
		"display":          "standalone",
		"background_color": "#07101f",
		"theme_color":      "#07101f",
		"icons": []map[string]string{
			{"src": icon, "sizes": "192x192", "type": "image/png"},
			{"src": icon, "sizes": "512x512", "type": "image/png"},
		},
	})
}
