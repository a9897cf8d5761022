package router

import (
	"sort"
	"strings"

	"github.com/civilian-dev/civilian/internal/errors"
	"github.com/civilian-dev/civilian/pkg/pathparam"
)

// Declaration extends the resource at Parent by either a literal Segment or
// a path parameter Param, and maps the resulting resource to HandlerID.
//
// Parent is a path pattern such as "/customers/{customerId}"; "" and "/"
// denote the root. Missing resources along Parent are created without a
// handler. An empty HandlerID declares the resource without mapping it.
type Declaration struct {
	Parent    string
	Segment   string
	Param     pathparam.PathParam
	HandlerID string
}

// Builder assembles a resource tree from declarations. A Builder is meant
// for a single goroutine and can build one tree.
type Builder struct {
	params   *pathparam.Map
	opts     options
	nodes    []node
	handlers []int
	built    bool
}

// NewBuilder creates a builder that resolves "{name}" pattern pieces
// through params. A nil params is treated as pathparam.Empty.
func NewBuilder(params *pathparam.Map, opts ...Option) *Builder {
	if params == nil {
		params = pathparam.Empty
	}
	return &Builder{
		params: params,
		opts:   applyOptions(opts),
		nodes:  []node{{parent: noParent}},
	}
}

// Add applies one declaration. A Param must be registered in the builder's
// parameter map.
func (b *Builder) Add(d Declaration) error {
	if err := b.checkUsable(); err != nil {
		return err
	}
	hasSegment, hasParam := d.Segment != "", d.Param != nil
	if hasSegment == hasParam {
		return errors.New("E108").
			WithDetailf("declaration under %q sets segment %q and parameter %v", d.Parent, d.Segment, d.Param)
	}
	if hasParam && !b.params.Contains(d.Param) {
		return errors.New("E106").
			WithDetailf("parameter %q is not the one registered under that name", d.Param.Name()).
			WithSuggestion("Register the parameter in the builder's pathparam.Map")
	}

	parent, err := b.resolve(d.Parent)
	if err != nil {
		return err
	}

	var child int
	if hasSegment {
		if err := checkSegment(d.Segment); err != nil {
			return err
		}
		child = b.literalChild(parent, d.Segment)
	} else {
		child, err = b.paramChild(parent, d.Param)
		if err != nil {
			return err
		}
	}

	b.opts.logger.Debug("resource declared",
		"parent", b.pathOf(parent),
		"path", b.pathOf(child),
		"handler", d.HandlerID)

	return b.mapHandler(child, d.HandlerID)
}

// AddSegment declares parent/segment.
func (b *Builder) AddSegment(parent, segment, handlerID string) error {
	return b.Add(Declaration{Parent: parent, Segment: segment, HandlerID: handlerID})
}

// AddParam declares parent/{name} for the parameter registered as name.
func (b *Builder) AddParam(parent, name, handlerID string) error {
	p, err := b.lookupParam(name)
	if err != nil {
		return err
	}
	return b.Add(Declaration{Parent: parent, Param: p, HandlerID: handlerID})
}

// AddPath declares every resource along pattern, e.g.
// "/customers/{customerId}/details", and maps the last one to handlerID.
// "/" maps the root.
func (b *Builder) AddPath(pattern, handlerID string) error {
	if err := b.checkUsable(); err != nil {
		return err
	}
	i, err := b.resolve(pattern)
	if err != nil {
		return err
	}
	b.opts.logger.Debug("resource declared", "path", b.pathOf(i), "handler", handlerID)
	return b.mapHandler(i, handlerID)
}

// Build sorts the children of every resource, precomputes paths and routes
// and returns the finished tree. The builder cannot be used afterwards.
func (b *Builder) Build() (*Tree, error) {
	if err := b.checkUsable(); err != nil {
		return nil, err
	}
	b.built = true

	nodes := b.nodes
	b.nodes = nil

	for i := range nodes {
		sortChildren(nodes, &nodes[i])
	}

	// A child is always created after its parent, so index order visits
	// parents first.
	for i := range nodes {
		n := &nodes[i]
		n.size = 1
		if n.parent == noParent {
			n.path = "/"
			continue
		}
		parent := &nodes[n.parent]
		n.depth = parent.depth + 1
		base := strings.TrimSuffix(parent.path, "/")
		if n.isParam() {
			n.path = base + n.param.String()
		} else {
			n.path = base + "/" + n.segment
		}
	}
	for i := len(nodes) - 1; i > 0; i-- {
		nodes[nodes[i].parent].size += nodes[i].size
	}
	for i := range nodes {
		nodes[i].route = newRouteTemplate(nodes, i)
	}

	byHandler := make(map[string]int, len(b.handlers))
	for _, i := range b.handlers {
		if _, ok := byHandler[nodes[i].handler]; !ok {
			byHandler[nodes[i].handler] = i
		}
	}

	t := &Tree{
		nodes:     nodes,
		appPath:   b.opts.appPath,
		scanOpts:  b.opts.scanOpts,
		byHandler: byHandler,
		params:    b.params,
	}
	b.opts.logger.Info("resource tree built",
		"resources", len(nodes),
		"handlers", len(byHandler),
		"params", b.params.Len(),
		"appPath", t.appPath)
	return t, nil
}

func (b *Builder) checkUsable() error {
	if b.built {
		return errors.New("E109").WithSuggestion("Create a new Builder for every tree")
	}
	return nil
}

func (b *Builder) lookupParam(name string) (pathparam.PathParam, error) {
	p := b.params.Get(name)
	if p == nil {
		return nil, errors.New("E106").
			WithDetailf("{%s}", name).
			WithSuggestion("Register it in the parameter map, known: " + strings.Join(b.params.Names(), ", "))
	}
	return p, nil
}

// resolve finds or creates the resource for pattern and returns its index.
func (b *Builder) resolve(pattern string) (int, error) {
	cur := 0
	for _, piece := range strings.Split(strings.Trim(pattern, "/"), "/") {
		if piece == "" {
			continue
		}
		if strings.HasPrefix(piece, "{") && strings.HasSuffix(piece, "}") {
			p, err := b.lookupParam(piece[1 : len(piece)-1])
			if err != nil {
				return 0, err
			}
			if cur, err = b.paramChild(cur, p); err != nil {
				return 0, err
			}
			continue
		}
		if err := checkSegment(piece); err != nil {
			return 0, err
		}
		cur = b.literalChild(cur, piece)
	}
	return cur, nil
}

func checkSegment(segment string) error {
	if segment == "" || strings.ContainsAny(segment, "/{}") {
		return errors.New("E107").WithDetailf("%q", segment)
	}
	return nil
}

func (b *Builder) literalChild(parent int, segment string) int {
	for _, c := range b.nodes[parent].children {
		if n := &b.nodes[c]; !n.isParam() && n.segment == segment {
			return c
		}
	}
	return b.addNode(node{parent: parent, segment: segment})
}

func (b *Builder) paramChild(parent int, p pathparam.PathParam) (int, error) {
	for _, c := range b.nodes[parent].children {
		if b.nodes[c].param == p {
			return c, nil
		}
	}
	for j := parent; j != noParent; j = b.nodes[j].parent {
		if q := b.nodes[j].param; q != nil && q.Name() == p.Name() {
			return 0, errors.New("E104").
				WithDetailf("%s already appears in %s", p, b.pathOf(parent))
		}
	}
	return b.addNode(node{parent: parent, param: p}), nil
}

func (b *Builder) addNode(n node) int {
	i := len(b.nodes)
	b.nodes = append(b.nodes, n)
	b.nodes[n.parent].children = append(b.nodes[n.parent].children, i)
	return i
}

func (b *Builder) mapHandler(i int, id string) error {
	if id == "" {
		return nil
	}
	n := &b.nodes[i]
	switch n.handler {
	case "":
		n.handler = id
		b.handlers = append(b.handlers, i)
		return nil
	case id:
		b.opts.logger.Debug("handler declared again", "path", b.pathOf(i), "handler", id)
		return nil
	default:
		return &DuplicateMappingError{Path: b.pathOf(i), Existing: n.handler, Duplicate: id}
	}
}

// pathOf renders the path pattern of node i while the tree is being built.
func (b *Builder) pathOf(i int) string {
	var pieces []string
	for j := i; b.nodes[j].parent != noParent; j = b.nodes[j].parent {
		if p := b.nodes[j].param; p != nil {
			pieces = append(pieces, p.String())
		} else {
			pieces = append(pieces, "/"+b.nodes[j].segment)
		}
	}
	if len(pieces) == 0 {
		return "/"
	}
	var sb strings.Builder
	for k := len(pieces) - 1; k >= 0; k-- {
		sb.WriteString(pieces[k])
	}
	return sb.String()
}

// sortChildren orders literal children lexicographically before path
// parameter children, which keep their declaration order, and indexes the
// literals.
func sortChildren(nodes []node, n *node) {
	sort.SliceStable(n.children, func(a, b int) bool {
		na, nb := &nodes[n.children[a]], &nodes[n.children[b]]
		if na.isParam() != nb.isParam() {
			return !na.isParam()
		}
		return !na.isParam() && na.segment < nb.segment
	})

	n.firstParam = len(n.children)
	for k, c := range n.children {
		if nodes[c].isParam() {
			n.firstParam = k
			break
		}
		if n.literals == nil {
			n.literals = make(map[string]int)
		}
		n.literals[nodes[c].segment] = c
	}
}
