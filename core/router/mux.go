package router

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/dmitrymomot/httpkit/core/handler"
)

// mux is the Router implementation. One routing tree is shared by the root
// mux and every inline view created through With and Group; Route and Mount
// attach whole child muxes with trees of their own.
type mux[C handler.Context] struct {
	tree         *node[C]
	middlewares  []handler.Middleware[C]
	errorHandler handler.ErrorHandler[C]
	newContext   func(http.ResponseWriter, *http.Request, map[string]string) C
	logger       *slog.Logger

	parent  *mux[C] // set on inline views
	inline  bool
	handler handler.HandlerFunc[C] // non-nil once any route is registered
}

func newMux[C handler.Context](opts ...Option[C]) *mux[C] {
	m := &mux[C]{
		tree:         &node[C]{},
		errorHandler: defaultErrorHandler[C],
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(m)
	}

	// Without a factory only the package's own *Context can be built.
	// Custom context types must come with WithContextFactory.
	if m.newContext == nil {
		m.newContext = func(w http.ResponseWriter, r *http.Request, params map[string]string) C {
			var zero C
			if _, ok := any(zero).(*Context); ok {
				return any(newContext(w, r, params)).(C)
			}
			panic(ErrNoContextFactory)
		}
	}

	return m
}

// ServeHTTP implements http.Handler.
func (m *mux[C]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ww := newResponseWriter(w)

	// RawPath keeps percent-encoding intact when present.
	path := r.URL.Path
	if r.URL.RawPath != "" {
		path = r.URL.RawPath
	}
	if path == "" {
		path = "/"
	}

	method, ok := methodMap[r.Method]
	if !ok {
		ctx := m.newContext(ww, r, nil)
		m.errorHandler(ctx, ErrMethodNotAllowed)
		return
	}

	matched, endpoints, h, params := m.tree.findRoute(method, path)

	ctx := m.newContext(ww, r, paramsToMap(params))

	// Everything from here on runs user code; panics become errors unless
	// the response already went out, in which case logging is all that is
	// left to do.
	defer func() {
		if p := recover(); p != nil {
			panicErr := &panicError{value: p, stack: debug.Stack()}
			if ww.Written() {
				m.logger.Error("panic after response written",
					"value", panicErr.value,
					"stack", string(panicErr.stack),
					"path", r.URL.Path,
					"method", r.Method,
					"status", ww.Status(),
				)
				return
			}
			m.errorHandler(ctx, panicErr)
		}
	}()

	// A mount node delegates the remainder of the path to its subrouter.
	if matched != nil && matched.subroutes != nil {
		mountPattern := ""
		if matched.endpoints[mSTUB] != nil {
			mountPattern = matched.endpoints[mSTUB].pattern
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = stripMountPath(path, mountPattern)
		matched.subroutes.ServeHTTP(w, r2)
		return
	}

	if h == nil {
		if allowed := allowedMethods(endpoints); len(allowed) > 0 {
			if !ww.Written() {
				ww.Header().Set("Allow", strings.Join(allowed, ", "))
			}
			m.errorHandler(ctx, ErrMethodNotAllowed)
		} else {
			m.errorHandler(ctx, ErrNotFound)
		}
		return
	}

	if len(m.middlewares) > 0 {
		h = chain(m.middlewares, h)
	}

	response := h(ctx)
	if response == nil {
		m.errorHandler(ctx, ErrNilResponse)
		return
	}

	if err := response(ww, r); err != nil {
		m.errorHandler(ctx, err)
	}
}

func paramsToMap(params routeParams) map[string]string {
	if len(params.Keys) == 0 {
		return nil
	}
	out := make(map[string]string, len(params.Keys))
	for i, key := range params.Keys {
		if i < len(params.Values) {
			out[key] = params.Values[i]
		}
	}
	return out
}

// stripMountPath removes the mount prefix so the subrouter sees a rooted
// path. The mount pattern's trailing wildcard is not part of the prefix.
func stripMountPath(path, mountPattern string) string {
	if mountPattern == "" || mountPattern == "/" {
		return path
	}
	mountPattern = strings.TrimSuffix(mountPattern, "*")
	mountPattern = strings.TrimSuffix(mountPattern, "/")
	if !strings.HasPrefix(path, mountPattern) {
		return path
	}

	sub := path[len(mountPattern):]
	if sub == "" {
		return "/"
	}
	if sub[0] != '/' {
		sub = "/" + sub
	}
	return sub
}

// allowedMethods lists the methods with real handlers on a node, for the
// Allow header on 405 responses.
func allowedMethods[C handler.Context](eps endpoints[C]) []string {
	var allowed []string
	for mt, ep := range eps {
		if mt == mALL || mt == mSTUB {
			continue
		}
		if ep != nil && ep.handler != nil {
			allowed = append(allowed, reverseMethodMap[mt])
		}
	}
	return allowed
}

// Get registers a handler for GET requests.
func (m *mux[C]) Get(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mGET, pattern, handler)
}

// Post registers a handler for POST requests.
func (m *mux[C]) Post(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mPOST, pattern, handler)
}

// Put registers a handler for PUT requests.
func (m *mux[C]) Put(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mPUT, pattern, handler)
}

// Delete registers a handler for DELETE requests.
func (m *mux[C]) Delete(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mDELETE, pattern, handler)
}

// Patch registers a handler for PATCH requests.
func (m *mux[C]) Patch(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mPATCH, pattern, handler)
}

// Head registers a handler for HEAD requests.
func (m *mux[C]) Head(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mHEAD, pattern, handler)
}

// Options registers a handler for OPTIONS requests.
func (m *mux[C]) Options(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mOPTIONS, pattern, handler)
}

// Connect registers a handler for CONNECT requests.
func (m *mux[C]) Connect(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mCONNECT, pattern, handler)
}

// Trace registers a handler for TRACE requests.
func (m *mux[C]) Trace(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mTRACE, pattern, handler)
}

// Handle registers a handler for every HTTP method at once.
func (m *mux[C]) Handle(pattern string, handler handler.HandlerFunc[C]) {
	m.handle(mALL, pattern, handler)
}

// Method registers a handler for an explicit list of methods. Unknown
// method names and an empty list are registration bugs and panic.
func (m *mux[C]) Method(pattern string, handler handler.HandlerFunc[C], methods ...string) {
	if len(methods) == 0 {
		panic(fmt.Errorf("%w: no methods provided", ErrInvalidMethod))
	}

	seen := make(map[methodTyp]bool)
	for _, method := range methods {
		mt, ok := methodMap[strings.ToUpper(method)]
		if !ok {
			panic(fmt.Errorf("%w: %s", ErrInvalidMethod, method))
		}
		if seen[mt] {
			continue
		}
		seen[mt] = true
		m.handle(mt, pattern, handler)
	}
}

// Use appends middleware to the router's global chain. The chain is fixed
// once the first route is registered.
func (m *mux[C]) Use(middlewares ...handler.Middleware[C]) {
	if m.handler != nil {
		panic("httpkit: all middlewares must be defined before routes on a mux")
	}
	m.middlewares = append(m.middlewares, middlewares...)
}

// With returns an inline view of the router carrying extra middlewares.
// Those wrap only routes registered through the view, at registration time,
// inside the parent's global chain.
func (m *mux[C]) With(middlewares ...handler.Middleware[C]) Router[C] {
	return &mux[C]{
		inline:       true,
		parent:       m,
		tree:         m.tree,
		middlewares:  middlewares,
		errorHandler: m.errorHandler,
		newContext:   m.newContext,
		logger:       m.logger,
	}
}

// Group runs fn against an inline view, a readable way to register a batch
// of related routes.
func (m *mux[C]) Group(fn func(r Router[C])) Router[C] {
	im := m.With()
	if fn != nil {
		fn(im)
	}
	return im
}

// Route builds a fresh sub-router, lets fn populate it, and mounts it at
// pattern.
func (m *mux[C]) Route(pattern string, fn func(r Router[C])) Router[C] {
	if fn == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilSubrouter, pattern))
	}
	sub := newMux[C]()
	sub.errorHandler = m.errorHandler
	sub.newContext = m.newContext
	sub.logger = m.logger

	fn(sub)
	m.Mount(pattern, sub)
	return sub
}

// Mount attaches a sub-router under pattern. The sub-router dispatches with
// its own middleware chain; it inherits the parent's error handler, logger,
// and context factory so behavior stays uniform across mounts.
func (m *mux[C]) Mount(pattern string, sub Router[C]) {
	if sub == nil {
		panic(fmt.Errorf("%w on '%s'", ErrNilRouter, pattern))
	}

	subMux, ok := sub.(*mux[C])
	if !ok {
		panic("httpkit: can only mount *mux[C] routers")
	}
	subMux.errorHandler = m.errorHandler
	subMux.logger = m.logger
	subMux.newContext = m.newContext

	// The stub handler never runs; dispatch recognizes mount nodes and
	// delegates before invoking it.
	mountHandler := func(ctx C) handler.Response {
		return nil
	}

	var nodes []*node[C]
	if pattern == "" || pattern[len(pattern)-1] != '/' {
		if n := m.handle(mALL|mSTUB, pattern, mountHandler); n != nil {
			nodes = append(nodes, n)
		}
		if n := m.handle(mALL|mSTUB, pattern+"/", mountHandler); n != nil {
			nodes = append(nodes, n)
		}
		pattern += "/"
	}
	if n := m.handle(mALL|mSTUB, pattern+"*", mountHandler); n != nil {
		nodes = append(nodes, n)
	}

	for _, node := range nodes {
		node.subroutes = sub
	}
}

// Routes reports every registered route, mount stubs included.
func (m *mux[C]) Routes() []Route {
	return m.tree.routes()
}

// handle inserts one pattern into the tree. Inline views fold their own and
// their ancestors' middlewares around the handler here, at registration,
// which is what scopes With middlewares to these routes only.
func (m *mux[C]) handle(method methodTyp, pattern string, fn handler.HandlerFunc[C]) *node[C] {
	if len(pattern) == 0 || pattern[0] != '/' {
		panic(fmt.Errorf("%w: '%s'", ErrInvalidPattern, pattern))
	}

	// Remember that a route exists so Use can refuse late middleware.
	if !m.inline && m.handler == nil {
		m.handler = fn
	}

	h := fn
	if m.inline {
		var inherited []handler.Middleware[C]
		for curr := m; curr != nil && curr.inline; curr = curr.parent {
			if len(curr.middlewares) > 0 {
				inherited = append(curr.middlewares, inherited...)
			}
		}
		if len(inherited) > 0 {
			h = chain(inherited, fn)
		}
	}

	return m.tree.insertRoute(method, pattern, h)
}
