// Package rpcauth resolves the credentials used to authenticate against the
// bitcoind RPC server.
package rpcauth

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/lightningnetwork/corerpc/rpcerr"
)

// Auth is the credential source of a client. It is one of None, UserPass or
// CookieFile.
type Auth interface {
	// Resolve returns the username and password to send with each
	// request. Cookie files are read on every call.
	Resolve() (string, string, error)
}

// None supplies no credentials. Resolving it always fails since bitcoind
// never accepts unauthenticated requests.
type None struct{}

// Resolve implements Auth.
func (None) Resolve() (string, string, error) {
	return "", "", rpcerr.New(
		rpcerr.KindCredential, "", rpcerr.ErrMissingUserPassword,
	)
}

// UserPass is a fixed username and password, as set with rpcuser and
// rpcpassword.
type UserPass struct {
	User string
	Pass string
}

// Resolve implements Auth.
func (u UserPass) Resolve() (string, string, error) {
	if u.User == "" && u.Pass == "" {
		return "", "", rpcerr.New(
			rpcerr.KindCredential, "",
			rpcerr.ErrMissingUserPassword,
		)
	}

	return u.User, u.Pass, nil
}

// CookieFile is the path of the .cookie file bitcoind writes on startup.
type CookieFile string

// Resolve implements Auth.
func (c CookieFile) Resolve() (string, string, error) {
	return ReadCookieFile(string(c))
}

// String returns the cookie path.
func (c CookieFile) String() string {
	return string(c)
}

// ReadCookieFile reads the username and password from a cookie file. Only the
// first line is read and it is split on the first colon, so the password may
// itself contain colons.
func ReadCookieFile(path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", cookieError(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		err := scanner.Err()
		if err == nil {
			err = errors.New("empty file")
		}

		return "", "", cookieError(path, err)
	}

	user, pass, ok := strings.Cut(scanner.Text(), ":")
	if !ok {
		return "", "", cookieError(path, errors.New("missing colon"))
	}

	log.Debugf("Read RPC credentials for user %v from %v", user, path)

	return user, pass, nil
}

// cookieError wraps a cookie failure as a terminal credential error.
func cookieError(path string, err error) error {
	return rpcerr.New(rpcerr.KindCredential, "", fmt.Errorf(
		"%w %v: %w", rpcerr.ErrInvalidCookieFile, path, err,
	))
}
