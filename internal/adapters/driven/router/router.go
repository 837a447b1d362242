package router

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"github.com/custodia-labs/finvo-cli/internal/core/domain"
	"github.com/custodia-labs/finvo-cli/internal/core/ports/driven"
	"github.com/custodia-labs/finvo-cli/internal/logger"
)

// Ensure routers implement the interface.
var (
	_ driven.Navigator = (*PrintRouter)(nil)
	_ driven.Navigator = (*BrowserRouter)(nil)
)

// URL joins the web frontend base URL and a route.
// An empty base returns the route unchanged.
func URL(webBaseURL, route string) string {
	base := strings.TrimRight(strings.TrimSpace(webBaseURL), "/")
	if base == "" {
		return route
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}

// PrintRouter writes one line per navigation.
type PrintRouter struct {
	mu         sync.Mutex
	w          io.Writer
	webBaseURL string
}

// NewPrintRouter creates a router that prints to w.
// With an empty webBaseURL only the route is printed.
func NewPrintRouter(w io.Writer, webBaseURL string) *PrintRouter {
	return &PrintRouter{w: w, webBaseURL: webBaseURL}
}

// Navigate implements driven.Navigator.
func (r *PrintRouter) Navigate(_ context.Context, intent domain.NavigationIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := fmt.Fprintln(r.w, URL(r.webBaseURL, intent.Route))
	return err
}

// Starter starts an external command without waiting for it.
type Starter func(name string, args ...string) error

func startCommand(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// BrowserRouter opens records in the web frontend.
type BrowserRouter struct {
	webBaseURL string
	goos       string
	start      Starter
	log        logger.Scoped
}

// NewBrowserRouter creates a router that opens webBaseURL + route.
func NewBrowserRouter(webBaseURL string) *BrowserRouter {
	return &BrowserRouter{
		webBaseURL: webBaseURL,
		goos:       runtime.GOOS,
		start:      startCommand,
		log:        logger.For("router"),
	}
}

// SetStarter replaces how the opener command is started. Used by tests.
func (r *BrowserRouter) SetStarter(start Starter, goos string) {
	r.start = start
	r.goos = goos
}

// Navigate implements driven.Navigator.
func (r *BrowserRouter) Navigate(_ context.Context, intent domain.NavigationIntent) error {
	target := URL(r.webBaseURL, intent.Route)

	name, args, err := openerFor(r.goos, target)
	if err != nil {
		return err
	}
	r.log.Debug("opening %s", target)
	if err := r.start(name, args...); err != nil {
		return fmt.Errorf("open %s: %w", target, err)
	}
	return nil
}

// openerFor returns the platform command that opens target.
func openerFor(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("%w: %s", domain.ErrNoOpener, goos)
	}
}

// New selects a router by mode. Print mode writes to w.
func New(settings domain.RouterSettings, w io.Writer) (driven.Navigator, error) {
	switch settings.Mode {
	case domain.RouterModePrint, "":
		return NewPrintRouter(w, settings.WebBaseURL), nil
	case domain.RouterModeBrowser:
		return NewBrowserRouter(settings.WebBaseURL), nil
	default:
		return nil, fmt.Errorf("router mode %q: %w", settings.Mode, domain.ErrInvalidInput)
	}
}
