//go:build !tinygo

package pitchfork

import (
	"golang.org/x/crypto/acme/autocert"
)

// ServeTLS serves https for host, with automatic Let's Encrypt
// certificates.  The server must be reachable from the internet on
// port 443.
func (s *Server) ServeTLS(host string) error {
	return s.Serve(autocert.NewListener(host))
}
