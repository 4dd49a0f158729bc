package middleware

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// BodyLimit caps the request body size. The limit is a human-readable
// string: "1M", "512K", "2G" or a bare byte count. Oversized requests get
// 413, either up front from Content-Length or on the read that crosses the
// limit.
func BodyLimit(limit string) echo.MiddlewareFunc {
	max := parseLimit(limit)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if req.Body == nil || req.Body == http.NoBody {
				return next(c)
			}

			if req.ContentLength > max {
				return payloadTooLarge(max)
			}

			req.Body = &limitedReadCloser{
				ReadCloser: req.Body,
				remaining:  max,
				limit:      max,
			}
			return next(c)
		}
	}
}

// limitedReadCloser fails reads once more than limit bytes have been read,
// covering requests with a missing or wrong Content-Length.
type limitedReadCloser struct {
	io.ReadCloser
	remaining int64
	limit     int64
	exceeded  bool
}

func (r *limitedReadCloser) Read(p []byte) (n int, err error) {
	if r.exceeded {
		return 0, payloadTooLarge(r.limit)
	}

	toRead := int64(len(p))
	if toRead > r.remaining+1 {
		toRead = r.remaining + 1
	}

	n, err = r.ReadCloser.Read(p[:toRead])
	r.remaining -= int64(n)

	if r.remaining < 0 {
		r.exceeded = true
		return 0, payloadTooLarge(r.limit)
	}
	return n, err
}

func payloadTooLarge(limit int64) *echo.HTTPError {
	return echo.NewHTTPError(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("request body exceeds maximum allowed size of %d bytes", limit))
}

// parseLimit parses a size string such as "1M", "512K" or "10G" into bytes.
// Empty or malformed input falls back to 1 MB.
func parseLimit(s string) int64 {
	n, err := ParseLimit(s)
	if err != nil {
		return 1 << 20
	}
	return n
}

// ParseLimit is the strict form of the size parser, used by config
// validation.
func ParseLimit(s string) (int64, error) {
	orig := s
	s = strings.TrimSuffix(strings.ToUpper(strings.TrimSpace(s)), "B")

	var multiplier int64 = 1
	switch {
	case strings.HasSuffix(s, "G"):
		multiplier = 1 << 30
	case strings.HasSuffix(s, "M"):
		multiplier = 1 << 20
	case strings.HasSuffix(s, "K"):
		multiplier = 1 << 10
	}
	if multiplier > 1 {
		s = s[:len(s)-1]
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid size %q", orig)
	}
	return n * multiplier, nil
}
