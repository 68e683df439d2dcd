package server

import (
	"fmt"
	"net"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/f4ah6o/devserve/internal/config"
	"github.com/f4ah6o/devserve/internal/netaddr"
)

var (
	titleColor = color.New(color.FgCyan, color.Bold)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

func (s *Server) printBanner(port int) {
	titleColor.Fprintf(s.out, "Development server listening on %s\n", net.JoinHostPort(s.cfg.Host, strconv.Itoa(port)))
	fmt.Fprintf(s.out, "Root directory: %s\n\n", s.cfg.Root)

	table := tablewriter.NewWriter(s.out)
	table.SetHeader([]string{"Access", "URL"})
	table.SetBorder(false)
	table.Append([]string{"Local", config.LocalURL(port)})
	// a loopback bind is unreachable from other devices
	if !netaddr.IsLoopbackHost(s.cfg.Host) {
		table.Append([]string{"Network (mobile)", netaddr.URL(s.localIP(), port)})
	}
	table.Render()
	fmt.Fprintln(s.out)
}

func (s *Server) printBrowserOpened(url string) {
	okColor.Fprintf(s.out, "Browser opened to %s\n", url)
}

func (s *Server) printBrowserFailed(url string, err error) {
	warnColor.Fprintf(s.out, "Could not auto-open browser: %v\n", err)
	fmt.Fprintf(s.out, "Please open %s manually\n", url)
}

func (s *Server) printRunning() {
	fmt.Fprintln(s.out, "Server is running. Press Ctrl+C to stop the server")
}

func (s *Server) printStopped() {
	fmt.Fprintln(s.out)
	okColor.Fprintln(s.out, "Server stopped by user")
}
