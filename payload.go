package errwatch

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/errwatch/errwatch-go/severity"
)

// errorRecord is the wire body of POST /errors.
type errorRecord struct {
	AppID           int64             `json:"appId"`
	Severity        severity.Severity `json:"severity"`
	ErrorMessage    string            `json:"errorMessage"`
	StackTrace      string            `json:"stackTrace"`
	Platform        string            `json:"platform"`
	PlatformVersion string            `json:"platformVersion"`
	ErrorDatetime   string            `json:"errorDatetime"`
}

// validateRequest is the wire body of POST /app/validate.
type validateRequest struct {
	AppIdentifier string `json:"appIdentifier"`
}

// validateResponse is the success envelope of POST /app/validate.
// Data is null when the service recognized the credentials but has no
// application id to hand out.
type validateResponse struct {
	Data *int64 `json:"data"`
}

// sanitize makes a message or stack trace safe for JSON encoding. Windows
// hosts feed ANSI-codepage console output into error text; invalid UTF-8 is
// reinterpreted as windows-1251 before falling back to replacement runes.
func sanitize(s string) string {
	if utf8.ValidString(s) {
		return s
	}
	if decoded, err := charmap.Windows1251.NewDecoder().String(s); err == nil && utf8.ValidString(decoded) {
		return decoded
	}
	return strings.ToValidUTF8(s, string(utf8.RuneError))
}
