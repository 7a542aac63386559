package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidEmail(t *testing.T) {
	assert.True(t, IsValidEmail("contact@fadem.gn"))
	assert.True(t, IsValidEmail("a.b+c@sous.domaine.org"))
	assert.False(t, IsValidEmail("sans-arobase"))
	assert.False(t, IsValidEmail("deux espaces@exemple.com"))
	assert.False(t, IsValidEmail("manque@tld"))
}

func TestIsValidTelephone(t *testing.T) {
	assert.True(t, IsValidTelephone("620112233"))
	assert.True(t, IsValidTelephone("+224 620 00 00 00"))
	assert.False(t, IsValidTelephone("12345"))
	assert.False(t, IsValidTelephone("abc123456"))
	assert.False(t, IsValidTelephone("+224620000000000000000"))
}

func TestIsValidPassword(t *testing.T) {
	assert.True(t, IsValidPassword("S3cret!pass"))
	assert.False(t, IsValidPassword("court1!"))
	assert.False(t, IsValidPassword("sansChiffre!"))
	assert.False(t, IsValidPassword("sansspecial1"))
	assert.False(t, IsValidPassword("12345678!"))
}
