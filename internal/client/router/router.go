package router

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rentkeeper/internal/client/session"
	"github.com/dmitrijs2005/rentkeeper/internal/logging"
)

const defaultMaxHops = 8

var ErrRedirectLoop = errors.New("too many redirects")

// Result describes a resolved navigation attempt.
type Result struct {
	Requested  string
	Final      string
	Redirected bool
	Page       string
}

type Router struct {
	store    *session.Store
	routes   map[string]Route
	order    []string
	fallback string
	maxHops  int
	logger   logging.Logger
}

type Option func(*Router)

// WithFallback sets where unknown paths go.
func WithFallback(path string) Option {
	return func(r *Router) { r.fallback = path }
}

func WithMaxHops(n int) Option {
	return func(r *Router) { r.maxHops = n }
}

func New(store *session.Store, routes []Route, logger logging.Logger, opts ...Option) *Router {
	r := &Router{
		store:    store,
		routes:   make(map[string]Route, len(routes)),
		fallback: LoginPath,
		maxHops:  defaultMaxHops,
		logger:   logger.With("module", "router"),
	}
	for _, rt := range routes {
		p := normalize(rt.Path)
		rt.Path = p
		if _, dup := r.routes[p]; !dup {
			r.order = append(r.order, p)
		}
		r.routes[p] = rt
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Navigate resolves path to a page. It blocks until the session check has
// completed or ctx is done; the guards of every hop then see the same
// snapshot.
func (r *Router) Navigate(ctx context.Context, path string) (Result, error) {
	res := Result{Requested: path}

	if err := r.store.WaitReady(ctx); err != nil {
		return res, fmt.Errorf("navigate %s: %w", path, err)
	}
	snap := r.store.Snapshot()

	cur := normalize(path)
	for hop := 0; ; hop++ {
		if hop > r.maxHops {
			return res, fmt.Errorf("navigate %s: %w", path, ErrRedirectLoop)
		}

		next, page := r.resolve(cur, snap)
		if next == "" {
			res.Final = cur
			res.Page = page
			res.Redirected = hop > 0
			r.logger.Debug(ctx, "navigation resolved", "requested", path, "final", cur, "page", page)
			return res, nil
		}
		r.logger.Debug(ctx, "navigation redirected", "from", cur, "to", next)
		cur = normalize(next)
	}
}

// resolve returns either a redirect target or the page for p.
func (r *Router) resolve(p string, snap session.Snapshot) (redirect, page string) {
	rt, ok := r.routes[p]
	if !ok {
		return r.fallback, ""
	}
	if rt.RedirectTo != "" {
		return rt.RedirectTo, ""
	}
	for _, g := range rt.Guards {
		if d := g(snap); !d.Allowed() {
			return d.Target, ""
		}
	}
	return "", rt.Page
}

// Paths lists the registered paths in registration order.
func (r *Router) Paths() []string {
	return append([]string(nil), r.order...)
}

func normalize(p string) string {
	p = strings.TrimSpace(p)
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = "/"
		}
	}
	return p
}
