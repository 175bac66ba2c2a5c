package router

// The routing tree is a radix trie derived from Armon Dadgar's go-radix
// (https://github.com/armon/go-radix, MIT), reworked for HTTP routing with
// typed handlers, path parameters, regexp segments, and catch-all routes.

import (
	"fmt"
	"net/http"
	"regexp"
	"sort"
	"strings"

	"github.com/dmitrymomot/httpkit/core/handler"
)

type methodTyp uint

const (
	mSTUB methodTyp = 1 << iota
	mCONNECT
	mDELETE
	mGET
	mHEAD
	mOPTIONS
	mPATCH
	mPOST
	mPUT
	mTRACE
)

var mALL = mCONNECT | mDELETE | mGET | mHEAD |
	mOPTIONS | mPATCH | mPOST | mPUT | mTRACE

var methodMap = map[string]methodTyp{
	http.MethodConnect: mCONNECT,
	http.MethodDelete:  mDELETE,
	http.MethodGet:     mGET,
	http.MethodHead:    mHEAD,
	http.MethodOptions: mOPTIONS,
	http.MethodPatch:   mPATCH,
	http.MethodPost:    mPOST,
	http.MethodPut:     mPUT,
	http.MethodTrace:   mTRACE,
}

var reverseMethodMap = map[methodTyp]string{
	mCONNECT: http.MethodConnect,
	mDELETE:  http.MethodDelete,
	mGET:     http.MethodGet,
	mHEAD:    http.MethodHead,
	mOPTIONS: http.MethodOptions,
	mPATCH:   http.MethodPatch,
	mPOST:    http.MethodPost,
	mPUT:     http.MethodPut,
	mTRACE:   http.MethodTrace,
}

// routeParams collects parameter keys and values during a tree search.
// Values accumulate while descending; keys are only known once a handler
// node is reached, from the pattern recorded on its endpoint.
type routeParams struct {
	Keys   []string
	Values []string
}

type nodeTyp uint8

const (
	ntStatic   nodeTyp = iota // /home
	ntRegexp                  // /{id:[0-9]+}
	ntParam                   // /{user}
	ntCatchAll                // /api/v1/*
)

type node[C handler.Context] struct {
	// mounted sub-router, set on mount stub nodes
	subroutes Router[C]

	// compiled matcher on ntRegexp nodes
	rex *regexp.Regexp

	// method handlers when this node terminates a route
	endpoints endpoints[C]

	// path fragment this node consumes
	prefix string

	// children bucketed by node type; buckets are searched in type order,
	// so static beats param beats regexp beats catch-all
	children [ntCatchAll + 1]nodes[C]

	// byte that terminates a param segment, '/' unless the pattern says
	// otherwise
	tail byte

	typ nodeTyp

	// first byte of prefix, the edge key within a static bucket
	label byte
}

// endpoints maps method bits to the handler registered for them.
type endpoints[C handler.Context] map[methodTyp]*endpoint[C]

type endpoint[C handler.Context] struct {
	handler handler.HandlerFunc[C]

	// registration pattern, kept for route listings
	pattern string

	// parameter keys parsed out of pattern, in path order
	paramKeys []string
}

func (s endpoints[C]) ensure(method methodTyp) *endpoint[C] {
	e, ok := s[method]
	if !ok {
		e = &endpoint[C]{}
		s[method] = e
	}
	return e
}

// segment describes one parsed chunk of a route pattern.
type segment struct {
	typ    nodeTyp
	key    string // param name, or "*" for catch-alls
	rexpat string // anchored regexp source for ntRegexp
	tail   byte
	start  int // index where the segment begins in the pattern
	end    int // index just past the segment
}

func (n *node[C]) insertRoute(method methodTyp, pattern string, fn handler.HandlerFunc[C]) *node[C] {
	var parent *node[C]
	search := pattern

	for {
		if len(search) == 0 {
			// Pattern consumed; this node terminates the route.
			n.setEndpoint(method, fn, pattern)
			return n
		}

		label := search[0]
		var seg segment
		if label == '{' || label == '*' {
			seg = scanSegment(search)
		}

		var prefix string
		if seg.typ == ntRegexp {
			prefix = seg.rexpat
		}

		parent = n
		n = n.getEdge(seg.typ, label, seg.tail, prefix)

		if n == nil {
			// No edge for this segment yet, grow the tree here.
			child := &node[C]{label: label, tail: seg.tail, prefix: search}
			leaf := parent.addChild(child, search)
			leaf.setEndpoint(method, fn, pattern)
			return leaf
		}

		if n.typ > ntStatic {
			// Matched an existing param/regexp/catch-all edge; the
			// segment itself is already in the tree, skip past it.
			search = search[seg.end:]
			continue
		}

		// Static edge. If the node's whole prefix matches, descend.
		common := commonPrefixLen(search, n.prefix)
		if common == len(n.prefix) {
			search = search[common:]
			continue
		}

		// Partial match: split the node at the shared prefix.
		child := &node[C]{
			typ:    ntStatic,
			prefix: search[:common],
		}
		parent.replaceChild(search[0], seg.tail, child)

		// The old node keeps the remainder of its prefix and hangs off
		// the split point.
		n.label = n.prefix[common]
		n.prefix = n.prefix[common:]
		child.addChild(n, n.prefix)

		search = search[common:]
		if len(search) == 0 {
			// New pattern ends exactly at the split point.
			child.setEndpoint(method, fn, pattern)
			return child
		}

		// Remainder of the new pattern becomes a sibling edge.
		subchild := &node[C]{
			typ:    ntStatic,
			label:  search[0],
			prefix: search,
		}
		leaf := child.addChild(subchild, search)
		leaf.setEndpoint(method, fn, pattern)
		return leaf
	}
}

// addChild attaches child under n, splitting the prefix at the first
// param/regexp/wildcard boundary so each node stays single-typed. Returns
// the node the route's handler belongs on, which may be a descendant of
// child when the prefix had to be split.
func (n *node[C]) addChild(child *node[C], prefix string) *node[C] {
	search := prefix
	leaf := child

	seg := scanSegment(search)

	switch seg.typ {
	case ntStatic:
		// fully static prefix, nothing to split

	default:
		if seg.typ == ntRegexp {
			rex, err := regexp.Compile(seg.rexpat)
			if err != nil {
				panic(fmt.Errorf("%w: '%s'", ErrInvalidRegexp, seg.rexpat))
			}
			child.prefix = seg.rexpat
			child.rex = rex
		}

		if seg.start == 0 {
			// Prefix leads with the dynamic segment.
			child.typ = seg.typ
			child.tail = seg.tail

			if seg.end != len(search) {
				// Static text follows the segment; adjacent dynamic
				// segments cannot occur, so the remainder starts static.
				search = search[seg.end:]

				nn := &node[C]{
					typ:    ntStatic,
					label:  search[0],
					prefix: search,
				}
				leaf = child.addChild(nn, search)
			}
		} else {
			// Static lead-in, then the dynamic segment as a child edge.
			child.typ = ntStatic
			child.prefix = search[:seg.start]
			child.rex = nil

			search = search[seg.start:]
			nn := &node[C]{
				typ:   seg.typ,
				label: search[0],
				tail:  seg.tail,
			}
			leaf = child.addChild(nn, search)
		}
	}

	n.children[child.typ] = append(n.children[child.typ], child)
	n.children[child.typ].sort()
	return leaf
}

func (n *node[C]) replaceChild(label, tail byte, child *node[C]) {
	bucket := n.children[child.typ]
	for i := range bucket {
		if bucket[i].label == label && bucket[i].tail == tail {
			bucket[i] = child
			bucket[i].label = label
			bucket[i].tail = tail
			return
		}
	}
	panic(ErrMissingChild)
}

func (n *node[C]) getEdge(ntyp nodeTyp, label, tail byte, prefix string) *node[C] {
	nds := n.children[ntyp]
	for i := range nds {
		if nds[i].label == label && nds[i].tail == tail {
			// Regexp edges with the same delimiters are distinguished by
			// their pattern source.
			if ntyp == ntRegexp && nds[i].prefix != prefix {
				continue
			}
			return nds[i]
		}
	}
	return nil
}

func (n *node[C]) setEndpoint(method methodTyp, fn handler.HandlerFunc[C], pattern string) {
	if n.endpoints == nil {
		n.endpoints = make(endpoints[C])
	}

	paramKeys := collectParamKeys(pattern)

	if method&mSTUB == mSTUB {
		n.endpoints.ensure(mSTUB).handler = fn
	}
	if method&mALL == mALL {
		// Register under mALL and fan out to every concrete method so
		// lookups need no special casing.
		e := n.endpoints.ensure(mALL)
		e.handler = fn
		e.pattern = pattern
		e.paramKeys = paramKeys
		for _, m := range methodMap {
			e := n.endpoints.ensure(m)
			e.handler = fn
			e.pattern = pattern
			e.paramKeys = paramKeys
		}
	} else {
		e := n.endpoints.ensure(method)
		e.handler = fn
		e.pattern = pattern
		e.paramKeys = paramKeys
	}
}

func (n *node[C]) findRoute(method methodTyp, path string) (*node[C], endpoints[C], handler.HandlerFunc[C], routeParams) {
	rctx := &routeParams{
		Keys:   make([]string, 0),
		Values: make([]string, 0),
	}

	rn := n.matchPath(method, path, rctx)
	if rn == nil {
		return nil, nil, nil, *rctx
	}

	if rn.endpoints[method] != nil && rn.endpoints[method].handler != nil {
		return rn, rn.endpoints, rn.endpoints[method].handler, *rctx
	}

	// Node exists but has no handler for this method; the caller turns
	// that into a 405.
	return rn, rn.endpoints, nil, *rctx
}

// matchPath walks the tree depth-first, trying child buckets in type order
// so more specific edges win. Parameter values are pushed as branches are
// tried and popped again on backtrack.
func (n *node[C]) matchPath(method methodTyp, path string, rctx *routeParams) *node[C] {
	search := path

	for t, nds := range n.children {
		ntyp := nodeTyp(t)
		if len(nds) == 0 {
			continue
		}

		var xn *node[C]
		xsearch := search

		var label byte
		if search != "" {
			label = search[0]
		}

		switch ntyp {
		case ntStatic:
			xn = nds.findEdge(label)
			if xn == nil || !strings.HasPrefix(xsearch, xn.prefix) {
				continue
			}
			xsearch = xsearch[len(xn.prefix):]

		case ntParam, ntRegexp:
			// A param cannot match the empty string.
			if xsearch == "" {
				continue
			}

			for idx := range nds {
				xn = nds[idx]

				// The param value runs up to the node's tail delimiter.
				p := strings.IndexByte(xsearch, xn.tail)

				if p < 0 {
					if xn.tail == '/' {
						// no more slashes; the rest of the path is the value
						p = len(xsearch)
					} else {
						continue
					}
				} else if ntyp == ntRegexp && p == 0 {
					continue
				}

				if ntyp == ntRegexp && xn.rex != nil {
					if !xn.rex.MatchString(xsearch[:p]) {
						continue
					}
				} else if strings.IndexByte(xsearch[:p], '/') != -1 {
					// param values never span path segments
					continue
				}

				prevlen := len(rctx.Values)
				rctx.Values = append(rctx.Values, xsearch[:p])
				xsearch = xsearch[p:]

				if len(xsearch) == 0 {
					if fin := xn.matchLeaf(method, rctx); fin != nil {
						return fin
					}
				}

				fin := xn.matchPath(method, xsearch, rctx)
				if fin != nil {
					return fin
				}

				// Dead end down this edge; undo and try the next one.
				rctx.Values = rctx.Values[:prevlen]
				xsearch = search
			}

			rctx.Values = append(rctx.Values, "")

		default:
			// catch-all swallows the rest of the path
			rctx.Values = append(rctx.Values, search)
			xn = nds[0]
			xsearch = ""
		}

		if xn == nil {
			continue
		}

		if len(xsearch) == 0 {
			if fin := xn.matchLeaf(method, rctx); fin != nil {
				return fin
			}
		}

		fin := xn.matchPath(method, xsearch, rctx)
		if fin != nil {
			return fin
		}

		if xn.typ > ntStatic {
			if len(rctx.Values) > 0 {
				rctx.Values = rctx.Values[:len(rctx.Values)-1]
			}
		}
	}

	return nil
}

// matchLeaf resolves a fully consumed path at n. A leaf is returned even
// when it lacks a handler for the method, so dispatch can answer 405
// rather than 404; param keys are only recorded on a real handler match.
func (n *node[C]) matchLeaf(method methodTyp, rctx *routeParams) *node[C] {
	if !n.isLeaf() {
		return nil
	}
	if h := n.endpoints[method]; h != nil && h.handler != nil {
		rctx.Keys = append(rctx.Keys, h.paramKeys...)
	}
	return n
}

func (n *node[C]) isLeaf() bool {
	return n.endpoints != nil
}

func (n *node[C]) routes() []Route {
	out := []Route{}

	n.walk(func(eps endpoints[C], subroutes Router[C]) bool {
		if eps[mSTUB] != nil && eps[mSTUB].handler != nil && subroutes == nil {
			return false
		}

		// One node can terminate several patterns; group by pattern before
		// expanding methods.
		pats := make(map[string]endpoints[C])
		for mt, e := range eps {
			if e.pattern == "" {
				continue
			}
			p, ok := pats[e.pattern]
			if !ok {
				p = endpoints[C]{}
				pats[e.pattern] = p
			}
			p[mt] = e
		}

		for pattern, mh := range pats {
			for mt := range mh {
				if mt == mALL || mt == mSTUB {
					continue
				}
				m := reverseMethodMap[mt]
				if m == "" {
					continue
				}
				out = append(out, Route{Method: m, Pattern: pattern})
			}
		}

		return false
	})

	return out
}

func (n *node[C]) walk(fn func(eps endpoints[C], subroutes Router[C]) bool) bool {
	if (n.endpoints != nil || n.subroutes != nil) && fn(n.endpoints, n.subroutes) {
		return true
	}

	for _, ns := range n.children {
		for _, cn := range ns {
			if cn.walk(fn) {
				return true
			}
		}
	}
	return false
}

// scanSegment parses the next pattern segment. Static text scans to the end
// of the pattern; '{' opens a param or regexp segment; '*' is a catch-all
// and must be last. Malformed patterns panic since they are registration
// bugs.
func scanSegment(pattern string) segment {
	ps := strings.Index(pattern, "{")
	ws := strings.Index(pattern, "*")

	if ps < 0 && ws < 0 {
		return segment{typ: ntStatic, end: len(pattern)}
	}

	if ps >= 0 && ws >= 0 && ws < ps {
		panic(ErrWildcardPosition)
	}

	var tail byte = '/'

	if ps >= 0 {
		nt := ntParam

		// Scan to the matching close brace; braces may nest inside a
		// regexp quantifier like {2,4}.
		cc := 0
		pe := ps
		for i, c := range pattern[ps:] {
			if c == '{' {
				cc++
			} else if c == '}' {
				cc--
				if cc == 0 {
					pe = ps + i
					break
				}
			}
		}
		if pe == ps {
			panic(ErrParamDelimiter)
		}

		key := pattern[ps+1 : pe]
		pe++

		if pe < len(pattern) {
			tail = pattern[pe]
		}

		key, rexpat, isRegexp := strings.Cut(key, ":")
		if isRegexp {
			nt = ntRegexp
		}

		if len(rexpat) > 0 {
			if rexpat[0] != '^' {
				rexpat = "^" + rexpat
			}
			if rexpat[len(rexpat)-1] != '$' {
				rexpat += "$"
			}
		}

		return segment{typ: nt, key: key, rexpat: rexpat, tail: tail, start: ps, end: pe}
	}

	if ws < len(pattern)-1 {
		panic(ErrWildcardPosition)
	}
	return segment{typ: ntCatchAll, key: "*", start: ws, end: len(pattern)}
}

func collectParamKeys(pattern string) []string {
	pat := pattern
	var keys []string
	for {
		seg := scanSegment(pat)
		if seg.typ == ntStatic {
			return keys
		}
		for i := range keys {
			if keys[i] == seg.key {
				panic(fmt.Errorf("%w: '%s' has duplicate key '%s'", ErrDuplicateParam, pattern, seg.key))
			}
		}
		keys = append(keys, seg.key)
		pat = pat[seg.end:]
	}
}

func commonPrefixLen(k1, k2 string) int {
	max := min(len(k1), len(k2))
	for i := 0; i < max; i++ {
		if k1[i] != k2[i] {
			return i
		}
	}
	return max
}

type nodes[C handler.Context] []*node[C]

func (ns nodes[C]) sort() {
	sort.Slice(ns, func(i, j int) bool { return ns[i].label < ns[j].label })
	ns.tailSort()
}

// tailSort moves the '/'-tailed param node to the end of its bucket so
// params with custom delimiters get first crack at matching.
func (ns nodes[C]) tailSort() {
	for i := len(ns) - 1; i >= 0; i-- {
		if ns[i].typ > ntStatic && ns[i].tail == '/' {
			ns[i], ns[len(ns)-1] = ns[len(ns)-1], ns[i]
			return
		}
	}
}

// findEdge binary-searches a static bucket by label byte.
func (ns nodes[C]) findEdge(label byte) *node[C] {
	idx := sort.Search(len(ns), func(i int) bool { return ns[i].label >= label })
	if idx >= len(ns) || ns[idx].label != label {
		return nil
	}
	return ns[idx]
}
