package handler

import (
	"net/http"
	"path"
	"strings"
)

// JavaScriptType is forced for .js files. Older MIME tables map .js to
// text/plain, and browsers refuse to load ES modules served that way.
const JavaScriptType = "application/javascript"

// TypeOverrides maps a file extension (with its leading dot) to the content
// type served for it regardless of the system MIME table.
// Extensions are matched case-sensitively.
type TypeOverrides map[string]string

// DefaultTypeOverrides returns the overrides that are always in effect.
func DefaultTypeOverrides() TypeOverrides {
	return TypeOverrides{".js": JavaScriptType}
}

// With returns a copy of o extended by extra. The .js override always wins.
func (o TypeOverrides) With(extra map[string]string) TypeOverrides {
	out := make(TypeOverrides, len(o)+len(extra)+1)
	for ext, typ := range o {
		out[ext] = typ
	}
	for ext, typ := range extra {
		out[ext] = typ
	}
	out[".js"] = JavaScriptType
	return out
}

// Lookup returns the forced content type for the file name, if any.
// Names without an override return false so the caller falls back to the
// default inference.
func (o TypeOverrides) Lookup(name string) (string, bool) {
	ext := path.Ext(name)
	if ext == "" {
		return "", false
	}
	typ, ok := o[ext]
	return typ, ok
}

// ContentTypes replaces the Content-Type that next inferred for a served file
// whenever the request path has an override. Error pages, redirects and
// multipart range responses keep the type next chose.
func ContentTypes(next http.Handler, overrides TypeOverrides) http.Handler {
	return BeforeHeaders(next, func(h http.Header, r *http.Request, status int) {
		if status != http.StatusOK && status != http.StatusPartialContent {
			return
		}
		if strings.HasPrefix(h.Get("Content-Type"), "multipart/") {
			return
		}
		if typ, ok := overrides.Lookup(r.URL.Path); ok {
			h.Set("Content-Type", typ)
		}
	})
}
