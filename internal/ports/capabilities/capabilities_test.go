package capabilities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	c, ok := Parse(" role_owner_admin ")
	assert.True(t, ok)
	assert.Equal(t, OwnerAdmin, c)

	_, ok = Parse("SUPERUSER")
	assert.False(t, ok)
}

func TestParseList_DedupAndSkipUnknown(t *testing.T) {
	got := ParseList("VET_ADMIN, nope ,ROLE_VET_ADMIN,OWNER_ADMIN")
	assert.Equal(t, []Capability{VetAdmin, OwnerAdmin}, got)

	assert.Empty(t, ParseList(""))
}

func TestAllows(t *testing.T) {
	assert.True(t, Allows([]Capability{VetAdmin, OwnerAdmin}, OwnerAdmin))
	assert.False(t, Allows([]Capability{VetAdmin}, OwnerAdmin))
	// ADMIN no implica OWNER_ADMIN
	assert.False(t, Allows([]Capability{Admin}, OwnerAdmin))
	assert.False(t, Allows(nil, VetAdmin))
}
