package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestAdminAllowList_IsAdmin(t *testing.T) {
	allow := NewAdminAllowList([]string{"Admin@CampusConnect.com", " mod@campus.edu ", ""})

	assert.True(t, allow.IsAdmin(strPtr("admin@campusconnect.com")))
	assert.True(t, allow.IsAdmin(strPtr("ADMIN@campusconnect.COM")))
	assert.True(t, allow.IsAdmin(strPtr("mod@campus.edu")))

	assert.False(t, allow.IsAdmin(strPtr("student@campusconnect.com")))
	assert.False(t, allow.IsAdmin(strPtr("")))
	assert.False(t, allow.IsAdmin(nil))
}

func TestNewAdminAllowList_DropsBlanks(t *testing.T) {
	allow := NewAdminAllowList([]string{"", "  ", "a@b.c"})
	assert.Len(t, allow, 1)
}
