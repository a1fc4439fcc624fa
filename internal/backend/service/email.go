package service

import "strings"

// NormalizeEmail lower-cases the domain part of an address, splitting at the
// last "@". The local part is kept as typed since some providers treat it as
// case sensitive. Surrounding whitespace is trimmed from addresses; input
// without an "@" is returned exactly as given.
func NormalizeEmail(email string) string {
	trimmed := strings.TrimSpace(email)

	at := strings.LastIndex(trimmed, "@")
	if at < 0 {
		return email
	}
	return trimmed[:at] + "@" + strings.ToLower(trimmed[at+1:])
}
