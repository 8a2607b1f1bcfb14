// Package dispatch routes chat-style command lines ("logs 10m 0430",
// "rollup fault=x 10m") to handlers by regular expression.
package dispatch

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// ErrNoRoute is returned for a line no route matches
var ErrNoRoute = errors.New("no route matches")

// Handler runs a matched line. args holds the route's capture groups.
type Handler func(ctx context.Context, args []string) error

// Route is one registered pattern
type Route struct {
	Name    string
	Pattern *regexp.Regexp
	Help    string
	handler Handler
}

// Router matches lines against routes in registration order
type Router struct {
	routes []*Route
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{}
}

// Handle registers a route. Patterns are matched case-insensitively
// against the trimmed line.
func (r *Router) Handle(name, pattern, help string, h Handler) {
	r.routes = append(r.routes, &Route{
		Name:    name,
		Pattern: regexp.MustCompile("(?i)" + pattern),
		Help:    help,
		handler: h,
	})
}

// Routes returns the registered routes
func (r *Router) Routes() []*Route {
	return r.routes
}

// Match finds the first route matching line
func (r *Router) Match(line string) (*Route, []string, bool) {
	line = strings.TrimSpace(line)
	for _, rt := range r.routes {
		if m := rt.Pattern.FindStringSubmatch(line); m != nil {
			return rt, m[1:], true
		}
	}
	return nil, nil, false
}

// Dispatch runs the handler of the first route matching line
func (r *Router) Dispatch(ctx context.Context, line string) error {
	rt, args, ok := r.Match(line)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoRoute, strings.TrimSpace(line))
	}
	return rt.handler(ctx, args)
}

// Serve dispatches every non-empty line of in until EOF or cancellation.
// A failing line is passed to onErr and reading continues.
func (r *Router) Serve(ctx context.Context, in io.Reader, onErr func(line string, err error)) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4*1024), 64*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := r.Dispatch(ctx, line); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if onErr != nil {
				onErr(line, err)
			}
		}
	}
	return scanner.Err()
}
