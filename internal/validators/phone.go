package validators

import "strings"

const (
	minPhoneDigits = 10
	maxPhoneDigits = 13
)

// NormalizePhone strips formatting and keeps the digits, with an optional
// leading "+". "(11) 98888-7777" becomes "11988887777".
func NormalizePhone(phone string) (string, bool) {
	phone = strings.TrimSpace(phone)

	var b strings.Builder
	for i, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
		default:
			return "", false
		}
	}

	out := b.String()
	digits := len(strings.TrimPrefix(out, "+"))
	if digits < minPhoneDigits || digits > maxPhoneDigits {
		return "", false
	}
	return out, true
}

// PhoneDigits keeps the digits of a partial phone like "98888-7" for
// searches. It fails when s has anything besides digits and separators.
func PhoneDigits(s string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.' || r == '+':
		default:
			return "", false
		}
	}
	if b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
