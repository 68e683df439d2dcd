// Package handler builds the HTTP handler of the development server: a plain
// static file server decorated with CORS headers and content-type overrides.
package handler

import (
	"errors"
	"io/fs"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

// Options tunes the handler returned by New. The zero value serves files with
// only the mandatory CORS headers and the .js override.
type Options struct {
	// NoCache adds "Cache-Control: no-cache" to every response.
	NoCache bool
	// CleanURLs serves /page from /page.html when /page does not exist.
	CleanURLs bool
	// Overrides forces content types per extension. The .js override is
	// always added.
	Overrides TypeOverrides
	// Logger receives one line per request. Nil disables request logging.
	Logger *log.Logger
}

// New returns a handler serving the files under root.
//
// Missing files, directory listings and redirects are whatever
// http.FileServer produces; the decorators only touch headers.
func New(root string, opts Options) http.Handler {
	dir := http.Dir(root)

	var h http.Handler = http.FileServer(dir)
	if opts.CleanURLs {
		h = cleanURLs(h, dir)
	}
	h = ContentTypes(h, DefaultTypeOverrides().With(opts.Overrides))
	if opts.NoCache {
		h = NoCache(h)
	}
	h = CORS(h)
	if opts.Logger != nil {
		h = Logging(h, opts.Logger)
	}
	return h
}

// cleanURLs rewrites an extension-less path to its .html sibling when only
// the sibling exists.
func cleanURLs(next http.Handler, dir http.FileSystem) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := r.URL.Path
		if p == "" || strings.HasSuffix(p, "/") || path.Ext(p) != "" || exists(dir, p) || !exists(dir, p+".html") {
			next.ServeHTTP(w, r)
			return
		}

		// same shallow copy as http.StripPrefix
		r2 := new(http.Request)
		*r2 = *r
		r2.URL = new(url.URL)
		*r2.URL = *r.URL
		r2.URL.Path = p + ".html"
		r2.URL.RawPath = ""
		next.ServeHTTP(w, r2)
	})
}

func exists(dir http.FileSystem, name string) bool {
	f, err := dir.Open(name)
	if err != nil {
		return !errors.Is(err, fs.ErrNotExist)
	}
	f.Close()
	return true
}

// Logging writes one line per request to logger: client, method, path,
// status and duration.
func Logging(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		status := 0
		BeforeHeaders(next, func(_ http.Header, _ *http.Request, code int) {
			status = code
		}).ServeHTTP(w, r)
		logger.Printf("%s %s %s %d %s", r.RemoteAddr, r.Method, r.URL.Path, status, time.Since(start).Round(time.Microsecond))
	})
}
