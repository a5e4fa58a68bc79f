package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_Valid(t *testing.T) {
	for _, r := range AllRoles() {
		assert.True(t, r.Valid(), r)
	}
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
	assert.False(t, Role("Admin").Valid())
}

func TestEnrichedUser_DisplayName(t *testing.T) {
	name := "Alice"
	empty := ""

	assert.Equal(t, "Alice", EnrichedUser{FullName: &name}.DisplayName())
	assert.Equal(t, NamePlaceholder, EnrichedUser{}.DisplayName())
	assert.Equal(t, NamePlaceholder, EnrichedUser{FullName: &empty}.DisplayName())
}
