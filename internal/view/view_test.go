package view

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"usersadmin/internal/model"
	"usersadmin/internal/notify"
)

func render(t *testing.T, page string, data interface{}) string {
	t.Helper()
	r, err := NewRenderer()
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, page, data, nil))
	return buf.String()
}

func TestRoleHelpers(t *testing.T) {
	tests := []struct {
		role  model.Role
		icon  string
		badge string
		label string
	}{
		{model.RoleAdmin, "shield-alert", "bg-red-500", "Admin"},
		{model.RoleSecretaire, "shield", "bg-blue-500", "Secrétaire"},
		{model.RoleLecteur, "users", "bg-gray-500", "Lecteur"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			assert.Equal(t, tt.icon, RoleIcon(tt.role))
			assert.Equal(t, tt.badge, RoleBadgeClass(tt.role))
			assert.Equal(t, tt.label, RoleLabel(tt.role))
		})
	}
}

func TestRender_UserCardWithoutRole(t *testing.T) {
	name := "Alice"
	html := render(t, PageUsers, UsersPage{Users: []model.EnrichedUser{
		{ID: "u1", FullName: &name, Email: "a@x.com", Role: model.RoleLecteur},
	}})

	assert.Contains(t, html, "Gestion des utilisateurs")
	assert.Contains(t, html, `data-user-id="u1"`)
	assert.Contains(t, html, "Alice")
	assert.Contains(t, html, "a@x.com")
	assert.Contains(t, html, `data-icon="users"`)
	assert.Contains(t, html, `class="badge bg-gray-500">lecteur</span>`)
	assert.Contains(t, html, `<option value="lecteur" selected>Lecteur</option>`)
	assert.Contains(t, html, `<option value="admin">Admin</option>`)
	assert.Contains(t, html, "Consultation uniquement")
	assert.Contains(t, html, "Création et modification")
	assert.Contains(t, html, "Tous les droits + suppression")
}

func TestRender_AdminCardAndPlaceholder(t *testing.T) {
	html := render(t, PageUsers, UsersPage{Users: []model.EnrichedUser{
		{ID: "u1", Email: "a@x.com", Role: model.RoleAdmin},
	}})

	assert.Contains(t, html, model.NamePlaceholder)
	assert.Contains(t, html, `data-icon="shield-alert"`)
	assert.Contains(t, html, "bg-red-500")
	assert.Contains(t, html, `<option value="admin" selected>Admin</option>`)
}

func TestRender_FailedListHasNoCards(t *testing.T) {
	html := render(t, PageUsers, UsersPage{
		Users:  []model.EnrichedUser{{ID: "u1", Role: model.RoleAdmin}},
		Failed: true,
	})

	assert.NotContains(t, html, "data-user-id")
	assert.Contains(t, html, "Gestion des utilisateurs")
}

func TestRender_Toasts(t *testing.T) {
	html := render(t, PageHome, HomePage{Toasts: []notify.Flash{
		{Kind: notify.KindError, Message: notify.MsgUnauthorized},
	}})

	assert.Contains(t, html, "toast-error")
	assert.Contains(t, html, "Accès non autorisé")
}

func TestRender_Loading(t *testing.T) {
	html := render(t, PageLoading, HomePage{})

	assert.Contains(t, html, "Chargement...")
	assert.Contains(t, html, `http-equiv="refresh"`)
	assert.False(t, strings.Contains(html, "data-user-id"))
}

func TestRender_UnknownPage(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, "nope.html", nil, nil))
}
