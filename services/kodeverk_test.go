package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetYtelse(t *testing.T) {
	ytelse, ok := GetYtelse("SYKEPENGER")
	assert.True(t, ok)
	assert.Equal(t, "Sykepenger", ytelse.Navn)
	assert.Equal(t, "SYK", ytelse.Tema)

	_, ok = GetYtelse("UKJENT")
	assert.False(t, ok)
}

func TestYtelseForTema(t *testing.T) {
	ytelse, ok := YtelseForTema("DAG")
	assert.True(t, ok)
	assert.Equal(t, "DAGPENGER", ytelse.ID)

	_, ok = YtelseForTema("XXX")
	assert.False(t, ok)
}

func TestIsValidHjemmel(t *testing.T) {
	assert.True(t, IsValidHjemmel("FTRL_8_4"))
	assert.True(t, IsValidHjemmel("FVL_35"))
	assert.False(t, IsValidHjemmel("ftrl_8_4"))
	assert.False(t, IsValidHjemmel(""))
}
