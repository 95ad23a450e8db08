package client

import (
	"net/http"

	"petmate/internal/platform/httpclient"
)

// IsUnauthorized: el token venció o fue revocado.
func IsUnauthorized(err error) bool {
	st, ok := httpclient.StatusOf(err)
	return ok && st == http.StatusUnauthorized
}
