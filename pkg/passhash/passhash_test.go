package passhash_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/novaflow-api/pkg/passhash"
)

// Round-trip: toda contraseña verifica contra su propio hash.
func TestVerify_RoundTrip(t *testing.T) {
	for _, pw := range []string{"password123", "", "ñandú☂", strings.Repeat("x", 200)} {
		cred := passhash.Hash(pw)
		assert.True(t, passhash.Verify(pw, cred), "la contraseña debe verificar contra su propio hash")
	}
}

func TestVerify_ContraseñaIncorrecta(t *testing.T) {
	cred := passhash.Hash("correcta")
	assert.False(t, passhash.Verify("incorrecta", cred))
	assert.False(t, passhash.Verify("", cred))
}

// Compatibilidad legacy: un digest sin salt (sin '$') sigue verificando.
func TestVerify_FormatoLegacy(t *testing.T) {
	legacy := passhash.LegacyHash("vieja-clave")
	require.NotContains(t, legacy, "$")

	assert.True(t, passhash.Verify("vieja-clave", legacy),
		"el digest legacy sin salt debe seguir siendo aceptado")
	assert.False(t, passhash.Verify("otra-clave", legacy))
}

// Monotonicidad de formato: Hash siempre produce el formato con salt,
// con exactamente un separador y un salt hex de 32 caracteres.
func TestHash_SiempreFormatoConSalt(t *testing.T) {
	cred := passhash.Hash("cualquiera")

	require.True(t, passhash.IsSalted(cred))
	parts := strings.Split(cred, "$")
	require.Len(t, parts, 2, "formato esperado: salt$digest")
	assert.Len(t, parts[0], 32, "salt de 16 bytes en hex")
	assert.Len(t, parts[1], 64, "digest sha256 en hex")
}

// Cada Hash usa un salt distinto: dos hashes de la misma contraseña difieren.
func TestHash_SaltAleatorio(t *testing.T) {
	a := passhash.Hash("misma")
	b := passhash.Hash("misma")
	assert.NotEqual(t, a, b, "dos hashes de la misma contraseña deben tener salts distintos")
	assert.True(t, passhash.Verify("misma", a))
	assert.True(t, passhash.Verify("misma", b))
}

func TestHashWithSalt_EsDeterminista(t *testing.T) {
	a := passhash.HashWithSalt("clave", "abc123")
	b := passhash.HashWithSalt("clave", "abc123")
	assert.Equal(t, a, b)
}

// Credenciales malformadas devuelven false, nunca panic ni error.
func TestVerify_CredencialMalformada(t *testing.T) {
	assert.False(t, passhash.Verify("clave", ""))
	assert.False(t, passhash.Verify("clave", "$"))
	assert.False(t, passhash.Verify("clave", "solo-salt$"))
	assert.False(t, passhash.Verify("clave", "no-es-un-digest"))
}
