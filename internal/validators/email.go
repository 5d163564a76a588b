package validators

import (
	"net"
	"net/mail"
	"strings"
)

// IsEmailFormat accepts a bare address, without display name.
func IsEmailFormat(email string) bool {
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	return addr.Address == email && strings.Contains(email[strings.LastIndex(email, "@")+1:], ".")
}

// IsEmailDomainValid checks that the domain resolves to an MX or A record.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	if ips, err := net.LookupIP(domain); err == nil && len(ips) > 0 {
		return true
	}

	return false
}
