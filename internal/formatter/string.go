package formatter

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// FormatPhone formats a phone number to E164 format
func FormatPhone(phone, countryCode string) (string, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	num, err := phonenumbers.Parse(phone, countryCode)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NormalizeEmail lowercases and trims an email address
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ContainsPattern builds an ILIKE pattern matching s anywhere, with the
// wildcard characters in s escaped
func ContainsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.TrimSpace(s)) + "%"
}
