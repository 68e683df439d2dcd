package handler

import (
	"io"
	"net/http"
)

// CORS header values sent with every response.
const (
	AllowOrigin  = "*"
	AllowMethods = "GET, POST, OPTIONS"
	AllowHeaders = "Content-Type"
)

// HeaderFunc edits the response headers once the status is known and before
// anything reaches the client.
type HeaderFunc func(h http.Header, r *http.Request, status int)

// BeforeHeaders wraps next so that fn runs exactly once per response, after
// next has set its own headers and right before they are written.
// If next writes nothing, an empty 200 response is finalized through fn.
func BeforeHeaders(next http.Handler, fn HeaderFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hw := &hookWriter{ResponseWriter: w, req: r, fn: fn}
		next.ServeHTTP(hw, r)
		if !hw.wroteHeader {
			hw.WriteHeader(http.StatusOK)
		}
	})
}

type hookWriter struct {
	http.ResponseWriter
	req         *http.Request
	fn          HeaderFunc
	wroteHeader bool
}

func (w *hookWriter) WriteHeader(code int) {
	// 1xx responses are interim; the final header is still to come.
	if !w.wroteHeader && (code >= 200 || code == http.StatusSwitchingProtocols) {
		w.wroteHeader = true
		w.fn(w.Header(), w.req, code)
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *hookWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// ReadFrom keeps the sendfile path of the underlying writer available to
// http.FileServer.
func (w *hookWriter) ReadFrom(src io.Reader) (int64, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return io.Copy(w.ResponseWriter, src)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *hookWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// CORS adds the permissive cross-origin headers to every response of next,
// whatever its status. Headers set by next are kept.
// Cross-origin isolation headers (COEP/COOP) are never sent: they stop pages
// from loading images hosted elsewhere.
//
// Preflight OPTIONS requests are answered directly with 200 and no body.
func CORS(next http.Handler) http.Handler {
	return BeforeHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			w.Header().Set("Content-Length", "0")
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	}), setCORS)
}

func setCORS(h http.Header, _ *http.Request, _ int) {
	h.Set("Access-Control-Allow-Origin", AllowOrigin)
	h.Set("Access-Control-Allow-Methods", AllowMethods)
	h.Set("Access-Control-Allow-Headers", AllowHeaders)
}

// NoCache asks browsers to revalidate every file, so edits show up on reload.
func NoCache(next http.Handler) http.Handler {
	return BeforeHeaders(next, func(h http.Header, _ *http.Request, _ int) {
		h.Set("Cache-Control", "no-cache")
	})
}
