// Package browser opens URLs in the user's default web browser.
package browser

import (
	"io"

	pkgbrowser "github.com/pkg/browser"
)

// Opener opens a URL for the user.
type Opener interface {
	Open(url string) error
}

// OpenerFunc adapts a function to Opener.
type OpenerFunc func(url string) error

// Open calls f(url).
func (f OpenerFunc) Open(url string) error {
	return f(url)
}

// System opens URLs with the platform launcher (open, xdg-open, start).
// The launcher's own output is discarded so it does not interleave with the
// server log.
type System struct{}

// Open starts the default browser on url. It fails on headless machines where
// no launcher is installed.
func (System) Open(url string) error {
	stdout, stderr := pkgbrowser.Stdout, pkgbrowser.Stderr
	pkgbrowser.Stdout, pkgbrowser.Stderr = io.Discard, io.Discard
	defer func() { pkgbrowser.Stdout, pkgbrowser.Stderr = stdout, stderr }()

	return pkgbrowser.OpenURL(url)
}
