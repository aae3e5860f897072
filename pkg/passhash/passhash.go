// Package passhash implementa el esquema dual de credenciales:
// hashes legacy sin salt (solo verificación) y hashes con salt en formato
// "salt$digest" (todo lo nuevo). Verificar acepta ambos formatos, así la
// migración ocurre sin forzar un reset masivo de contraseñas.
package passhash

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

const saltBytes = 16

// Hash genera un salt aleatorio y devuelve la credencial en formato "salt$digest".
// Es el único formato que se escribe: el formato legacy decrece con cada reset.
func Hash(password string) string {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		// crypto/rand solo falla si el sistema no tiene entropía disponible
		panic("passhash: sin fuente de aleatoriedad: " + err.Error())
	}
	return HashWithSalt(password, hex.EncodeToString(salt))
}

// HashWithSalt calcula "salt$sha256(salt+password)" con el salt dado.
func HashWithSalt(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return salt + "$" + hex.EncodeToString(sum[:])
}

// LegacyHash calcula el digest sin salt del esquema anterior.
// Existe solo para verificar credenciales viejas; nunca se persiste.
func LegacyHash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify compara password contra la credencial almacenada aceptando ambos
// formatos. Devuelve false ante cualquier discrepancia, nunca error, para no
// filtrar el formato almacenado por la vía de excepciones.
func Verify(password, stored string) bool {
	if stored == "" {
		return false
	}
	if salt, _, ok := strings.Cut(stored, "$"); ok {
		return equal(HashWithSalt(password, salt), stored)
	}
	return equal(LegacyHash(password), stored)
}

// IsSalted indica si la credencial ya está en el formato nuevo "salt$digest".
func IsSalted(stored string) bool {
	return strings.Contains(stored, "$")
}

// equal compara en tiempo constante para no filtrar información por timing.
func equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
