package dotenv

import "strings"

// MaskedValue replaces sensitive values in diagnostics.
const MaskedValue = "*** (masked)"

var sensitiveParts = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"auth_key",
	"private_key",
}

// Mask returns MaskedValue when the key looks sensitive, otherwise value.
// It only affects log output, never what is stored.
func Mask(key, value string) string {
	k := strings.ToLower(key)
	for _, part := range sensitiveParts {
		if strings.Contains(k, part) {
			return MaskedValue
		}
	}
	return value
}
