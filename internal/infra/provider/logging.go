package provider

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
)

// RoundTripperOpts contains options for the upstream request logger.
type RoundTripperOpts struct {
	Level slog.Level
}

// LoggingRoundTripper logs every upstream request with a trimmed body preview.
func LoggingRoundTripper(lg *slog.Logger, opts RoundTripperOpts) middleware.RoundTripperHandler {
	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if !lg.Enabled(req.Context(), opts.Level) {
				return next.RoundTrip(req)
			}

			start := time.Now()
			resp, err := next.RoundTrip(req)

			attrs := []slog.Attr{
				slog.String("method", req.Method),
				slog.String("url", req.URL.String()),
				slog.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				attrs = append(attrs, slog.Any("error", err))
				lg.LogAttrs(req.Context(), opts.Level, "Upstream request failed", attrs...)
				return resp, err
			}

			var preview string
			resp.Body, preview = copyAndTrim(resp.Body)
			attrs = append(attrs, slog.Int("status", resp.StatusCode), slog.String("body", preview))
			lg.LogAttrs(req.Context(), opts.Level, "Upstream response received", attrs...)
			return resp, nil
		})
	}
}

const trimBodyAt = 512

func copyAndTrim(r io.ReadCloser) (io.ReadCloser, string) {
	if r == nil || r == http.NoBody {
		return r, ""
	}

	buf := &bytes.Buffer{}
	read, err := io.CopyN(buf, r, trimBodyAt)
	preview := strings.NewReplacer("\n", "", "\t", "").Replace(buf.String())
	if read == trimBodyAt {
		preview += "..."
	}
	if err != nil {
		// whole body is buffered
		return &closer{rd: bytes.NewReader(buf.Bytes()), closeFn: r.Close}, preview
	}
	return &closer{rd: io.MultiReader(buf, r), closeFn: r.Close}, preview
}

type closer struct {
	rd      io.Reader
	closeFn func() error
}

func (c *closer) Read(p []byte) (n int, err error) { return c.rd.Read(p) }
func (c *closer) Close() error                     { return c.closeFn() }
