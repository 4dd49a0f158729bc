package auth

import (
	"github.com/labstack/echo/v4"
)

// publicPaths bypass authentication: health checks, metrics and CDS Hooks
// discovery, which EHRs call without credentials.
var publicPaths = map[string]bool{
	"/health":       true,
	"/metrics":      true,
	"/cds-services": true,
}

// AuthSkipper returns true for requests whose route should skip
// authentication. Pass it as JWTConfig.Skipper.
func AuthSkipper(c echo.Context) bool {
	return publicPaths[c.Path()]
}

// IsPublicPath reports whether path is a public endpoint.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
