package middlewares

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/unrolled/secure"
)

const swaggerPathPrefix = "/swagger/"

// apiContentSecurityPolicy locks down the JSON endpoints: nothing they
// return is ever rendered as a page.
const apiContentSecurityPolicy = "default-src 'none'; frame-ancestors 'none'; base-uri 'none'; form-action 'none'"

// swaggerContentSecurityPolicy lets the bundled swagger UI load its own
// scripts, styles and inline bootstrap code.
const swaggerContentSecurityPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; " +
	"style-src 'self' 'unsafe-inline'; img-src 'self' data:; object-src 'none'; " +
	"frame-ancestors 'none'; base-uri 'self'; form-action 'self'"

func newSecure(policy string) *secure.Secure {
	return secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: policy,
		ReferrerPolicy:        "no-referrer",
	})
}

// SecurityHeadersMiddleware sets the security headers of every response. The
// swagger UI gets a content security policy it can run under, everything else
// the strict API one.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	api := newSecure(apiContentSecurityPolicy)
	docs := newSecure(swaggerContentSecurityPolicy)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sec := api
			if strings.HasPrefix(r.URL.Path, swaggerPathPrefix) {
				sec = docs
			}
			if err := sec.Process(w, r); err != nil {
				log.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).
					Msg("error while applying security headers")
				http.Error(w, err.Error(), http.StatusInternalServerError)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
