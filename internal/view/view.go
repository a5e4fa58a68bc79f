// Package view renders the HTML pages of the user management screen.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"usersadmin/internal/model"
	"usersadmin/internal/notify"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names accepted by Renderer.Render.
const (
	PageUsers   = "users.html"
	PageLoading = "loading.html"
	PageHome    = "home.html"
)

// RoleScope is one line of the static permission explanation shown on every card.
type RoleScope struct {
	Label       string
	Description string
}

// RoleScopes lists the permission scope of each role, lowest first.
var RoleScopes = []RoleScope{
	{Label: "Lecteur", Description: "Consultation uniquement"},
	{Label: "Secrétaire", Description: "Création et modification"},
	{Label: "Admin", Description: "Tous les droits + suppression"},
}

// UsersPage is the data of the user management page.
type UsersPage struct {
	Users  []model.EnrichedUser
	Failed bool
	Toasts []notify.Flash
}

// HomePage is the data of the application root.
type HomePage struct {
	Toasts []notify.Flash
}

// RoleIcon returns the icon name for role.
func RoleIcon(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "shield-alert"
	case model.RoleSecretaire:
		return "shield"
	default:
		return "users"
	}
}

// RoleBadgeClass returns the badge colour class for role.
func RoleBadgeClass(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "bg-red-500"
	case model.RoleSecretaire:
		return "bg-blue-500"
	default:
		return "bg-gray-500"
	}
}

// RoleLabel returns the human label of role used in the selector.
func RoleLabel(role model.Role) string {
	switch role {
	case model.RoleAdmin:
		return "Admin"
	case model.RoleSecretaire:
		return "Secrétaire"
	case model.RoleLecteur:
		return "Lecteur"
	}
	return string(role)
}

// Renderer implements echo.Renderer over the embedded templates.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses every page together with the shared layout.
func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"roleIcon":       RoleIcon,
		"roleBadgeClass": RoleBadgeClass,
		"roleLabel":      RoleLabel,
		"allRoles":       model.AllRoles,
		"roleScopes":     func() []RoleScope { return RoleScopes },
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageUsers, PageLoading, PageHome} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes the named page inside the layout.
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}
