package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeRole(t *testing.T) {
	tests := map[string]string{
		"Farmer":            RoleFarmer,
		"Quality Inspector": RoleQualityInspector,
		"QualityInspector":  RoleQualityInspector,
		"quality_inspector": RoleQualityInspector,
		"Factory":           RoleFactory,
		"Admin":             RoleAdmin,
		"Authenticated":     "",
		"":                  "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeRole(in), in)
	}
}

func TestSessionHasRole(t *testing.T) {
	s := Session{Role: RoleFactory}
	assert.True(t, s.HasRole(RoleAdmin, RoleFactory))
	assert.False(t, s.HasRole(RoleFarmer))
}

func TestHomePath(t *testing.T) {
	assert.Equal(t, "/farmer/dashboard", HomePath(RoleFarmer))
	assert.Equal(t, UnauthorizedPath, HomePath(""))
}
