package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve_SpanishMexico(t *testing.T) {
	info := Resolve("es-MX")
	assert.True(t, info.Spanish)
	assert.True(t, info.DayFirst())
	assert.Equal(t, "MXN", info.Currency)
	assert.Equal(t, "es-MX", info.String())
}

func TestResolve_SpanishArgentina(t *testing.T) {
	info := Resolve("es-AR")
	assert.True(t, info.Spanish)
	assert.Equal(t, "ARS", info.Currency)
}

func TestResolve_EnglishUS(t *testing.T) {
	info := Resolve("en-US")
	assert.False(t, info.Spanish)
	assert.False(t, info.DayFirst())
	assert.Equal(t, "USD", info.Currency)
}

func TestResolve_BareSpanish(t *testing.T) {
	// No explicit region: don't let the tag library guess one.
	info := Resolve("es")
	assert.True(t, info.Spanish)
	assert.Equal(t, "MXN", info.Currency)
}

func TestResolve_UnknownRegion(t *testing.T) {
	info := Resolve("es-GT")
	assert.True(t, info.Spanish)
	assert.Equal(t, "MXN", info.Currency)
}

func TestResolve_EmptyAndGarbage(t *testing.T) {
	for _, tag := range []string{"", "not a tag!", "zz-ZZZZ"} {
		info := Resolve(tag)
		assert.False(t, info.Spanish, "tag %q", tag)
		assert.Equal(t, "USD", info.Currency, "tag %q", tag)
	}
}
