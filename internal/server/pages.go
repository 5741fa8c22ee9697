package server

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"strings"

	"github.com/rs/zerolog/hlog"

	"github.com/rainwise/web-go/internal/api"
	"github.com/rainwise/web-go/internal/signup"
	"github.com/rainwise/web-go/internal/states"
)

var pageNames = []string{"index", "signup", "login", "map", "states"}

type pages struct {
	templates map[string]*template.Template
}

type pageData struct {
	Title  string
	Active string
	Data   any
}

type signupPage struct {
	Form      signup.Form
	Errors    signup.FieldErrors
	Message   string
	RequestID string
}

type loginPage struct {
	Registered bool
}

type mapPage struct {
	TileURL         string
	TileAttribution string
	MaxZoom         int
}

type statesPage struct {
	Links []states.Link
}

func loadPages(fsys fs.FS) (*pages, error) {
	funcs := template.FuncMap{
		"stateCount": states.Count,
		"fieldError": func(errs signup.FieldErrors, field string) string { return errs[field] },
	}

	p := &pages{templates: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(funcs).ParseFS(fsys, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing %s template: %w", name, err)
		}
		p.templates[name] = t
	}
	return p, nil
}

// render buffers the page so a template failure still yields a clean 500.
func (p *pages) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	t, ok := p.templates[name]
	if !ok {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		hlog.FromRequest(r).Error().Err(err).Str("page", name).Msg("Template failed to execute")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if os.Getenv("ENV") != "production" {
		w.Header().Set("X-Robots-Tag", "none")
	}
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func staticHandler(fsys fs.FS) (http.Handler, error) {
	sub, err := fs.Sub(fsys, "static")
	if err != nil {
		return nil, err
	}
	return http.FileServer(http.FS(sub)), nil
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, r, http.StatusOK, "index", pageData{Title: "Rainwise", Active: "home"})
}

func (s *Server) handleSignupPage(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, r, http.StatusOK, "signup", pageData{
		Title:  "Create your account",
		Active: "signup",
		Data:   signupPage{Errors: signup.FieldErrors{}},
	})
}

func formFromRequest(r *http.Request) signup.Form {
	terms := strings.ToLower(r.PostFormValue("acceptTerms"))
	return signup.Form{
		FirstName:       r.PostFormValue("firstName"),
		LastName:        r.PostFormValue("lastName"),
		Username:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Phone:           r.PostFormValue("phone"),
		Organization:    r.PostFormValue("organization"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirmPassword"),
		AcceptTerms:     terms == "on" || terms == "true" || terms == "1",
	}
}

// handleSignupForm is the no-script path. Passwords are never echoed back.
func (s *Server) handleSignupForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	form := formFromRequest(r)

	result, err := s.submitSignup(r, form)
	if err == nil {
		http.Redirect(w, r, result.Redirect+"?registered=1", http.StatusSeeOther)
		return
	}

	status, body := api.SignupFailure(err)
	page := signupPage{Errors: signup.FieldErrors{}, RequestID: requestID(r.Context())}
	var invalid *signup.ValidationError
	if errors.As(err, &invalid) {
		page.Errors = invalid.Fields
	} else {
		page.Message = body.Error
	}
	form.Password, form.ConfirmPassword = "", ""
	page.Form = form

	s.pages.render(w, r, status, "signup", pageData{Title: "Create your account", Active: "signup", Data: page})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, r, http.StatusOK, "login", pageData{
		Title:  "Sign in",
		Active: "login",
		Data:   loginPage{Registered: r.URL.Query().Get("registered") != ""},
	})
}

func (s *Server) handleMapPage(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, r, http.StatusOK, "map", pageData{
		Title:  "Nearest station",
		Active: "map",
		Data: mapPage{
			TileURL:         s.deps.Tiles.URLTemplate,
			TileAttribution: s.deps.Tiles.Attribution,
			MaxZoom:         s.deps.Tiles.MaxZoom,
		},
	})
}

func (s *Server) handleStatesPage(w http.ResponseWriter, r *http.Request) {
	s.pages.render(w, r, http.StatusOK, "states", pageData{
		Title:  "State water resources",
		Active: "states",
		Data:   statesPage{Links: states.Links()},
	})
}
