package certificate

import (
	"strings"

	"github.com/google/uuid"
)

const codeLength = 12

// NewCode returns a 12 character uppercase hex code cut from a random UUID.
func NewCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:codeLength])
}

// NormalizeCode upper-cases and trims user input so lookups are case
// insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func validCode(code string) bool {
	if len(code) != codeLength {
		return false
	}
	for _, r := range code {
		if (r < '0' || r > '9') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
