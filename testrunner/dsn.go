package testrunner

import (
	"net/url"
	"strings"
)

// RedactDSN masks a DSN's password component for log output (spec.md
// §4.F/§8): host, port, user, path, and query string survive unchanged;
// the password, if present, becomes "****". Non-URL DSNs (bare
// key=value connection strings) are returned unchanged since there is
// no reliable password field to locate.
func RedactDSN(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, hasPassword := u.User.Password(); !hasPassword {
		return dsn
	}
	// url.UserPassword would percent-encode the mask, so it is spliced in
	// after the username instead.
	u.User = url.User(u.User.Username())
	s := u.String()
	at := strings.Index(s, u.User.String()+"@") + len(u.User.String())
	return s[:at] + ":****" + s[at:]
}
