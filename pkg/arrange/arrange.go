package arrange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nodecanvas/pkg/cache"
	"github.com/matzehuels/nodecanvas/pkg/errors"
	"github.com/matzehuels/nodecanvas/pkg/geom"
	"github.com/matzehuels/nodecanvas/pkg/layout"
	"github.com/matzehuels/nodecanvas/pkg/scene"
)

// pointsPerInch converts scene pixels to DOT inches.
const pointsPerInch = 72.0

// Defaults for zero [Options] fields, in scene pixels.
const (
	DefaultRankDir = "LR"
	DefaultNodeSep = 24.0
	DefaultRankSep = 64.0
	DefaultMargin  = 16.0
)

// Options configures [Arrange].
type Options struct {
	// RankDir is the DOT rank direction: LR, RL, TB or BT.
	RankDir string
	NodeSep float64
	RankSep float64
	// Margin is added to every location so nodes clear the view edge.
	Margin float64

	// Cache stores computed positions. Nil disables caching.
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

func (o *Options) setDefaults() error {
	if o.RankDir == "" {
		o.RankDir = DefaultRankDir
	}
	switch o.RankDir {
	case "LR", "RL", "TB", "BT":
	default:
		return errors.New(errors.ErrCodeInvalidInput, "invalid rankdir %q", o.RankDir)
	}
	if o.NodeSep <= 0 {
		o.NodeSep = DefaultNodeSep
	}
	if o.RankSep <= 0 {
		o.RankSep = DefaultRankSep
	}
	if o.Margin < 0 {
		o.Margin = 0
	} else if o.Margin == 0 {
		o.Margin = DefaultMargin
	}
	if o.Cache == nil {
		o.Cache = cache.NewNullCache()
	}
	if o.Keyer == nil {
		o.Keyer = cache.NewDefaultKeyer()
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return nil
}

func (o *Options) keyOpts() cache.ArrangeKeyOpts {
	return cache.ArrangeKeyOpts{RankDir: o.RankDir, NodeSep: o.NodeSep, RankSep: o.RankSep, Margin: o.Margin}
}

// Result reports what [Arrange] did.
type Result struct {
	// Bounds is the area covered by the arranged nodes.
	Bounds geom.Rect
	Moved  int
	Cached bool
}

// nodeID names the i-th scene node in DOT.
func nodeID(i int) string { return "n" + strconv.Itoa(i) }

// ToDOT exports the laid-out scene as a DOT digraph.
func ToDOT(s *scene.Scene, opts Options) string {
	if err := opts.setDefaults(); err != nil {
		opts.RankDir = DefaultRankDir
	}
	nodes := s.Nodes()
	index := make(map[*scene.Node]int, len(nodes))

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.RankDir)
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(opts.NodeSep))
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(opts.RankSep))
	buf.WriteString("  node [shape=box, fixedsize=true, label=\"\"];\n")
	buf.WriteString("\n")

	for i, n := range nodes {
		index[n] = i
		b := n.Bounds()
		fmt.Fprintf(&buf, "  %s [width=%s, height=%s];\n", nodeID(i), inches(b.W), inches(b.H))
	}

	buf.WriteString("\n")
	for _, c := range s.Connections() {
		if !c.Attached() {
			continue
		}
		from, okFrom := index[c.From().Node()]
		to, okTo := index[c.To().Node()]
		if !okFrom || !okTo {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", nodeID(from), nodeID(to))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func inches(px float64) string {
	return strconv.FormatFloat(math.Max(px, 1)/pointsPerInch, 'f', 4, 64)
}

// placement is the cached form of an arrangement: top-left locations by
// node index and the covered area.
type placement struct {
	Locations []geom.Point `json:"locations"`
	Bounds    geom.Rect    `json:"bounds"`
}

// Arrange lays every node out with m, runs the dot engine and moves the
// nodes to the computed locations. A nil m uses the current bounds.
func Arrange(ctx context.Context, s *scene.Scene, m layout.Measurer, opts Options) (Result, error) {
	if s == nil {
		return Result{}, errors.New(errors.ErrCodeInvalidInput, "scene is nil")
	}
	if err := opts.setDefaults(); err != nil {
		return Result{}, err
	}
	if s.Len() == 0 {
		return Result{}, nil
	}
	if m != nil {
		layout.Scene(s, m)
	}

	start := time.Now()
	dot := ToDOT(s, opts)
	key := opts.Keyer.ArrangeKey(cache.Hash([]byte(dot)), opts.keyOpts())

	var p placement
	cached := false
	if data, hit, err := opts.Cache.Get(ctx, key); err == nil && hit {
		if json.Unmarshal(data, &p) == nil && len(p.Locations) == s.Len() {
			cached = true
		}
	}
	if !cached {
		out, err := runDot(ctx, dot)
		if err != nil {
			return Result{}, err
		}
		p, err = parsePlacement(out, s.Nodes(), opts.Margin)
		if err != nil {
			return Result{}, err
		}
		if data, err := json.Marshal(p); err == nil {
			if err := opts.Cache.Set(ctx, key, data, cache.TTLArrange); err != nil {
				opts.Logger.Warn("cache arrange result", "error", err)
			}
		}
	}

	res := Result{Bounds: p.Bounds, Cached: cached}
	for i, n := range s.Nodes() {
		if n.Location != p.Locations[i] {
			n.Location = p.Locations[i]
			res.Moved++
		}
	}
	if m != nil {
		layout.Scene(s, m)
	}
	opts.Logger.Debug("arranged scene",
		"nodes", s.Len(),
		"moved", res.Moved,
		"cached", cached,
		"duration", time.Since(start))
	return res, nil
}

func runDot(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.XDOT, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayoutFailed, err, "run dot")
	}
	return buf.Bytes(), nil
}

// parsePlacement reads node centres and the bounding box from laid-out
// dot output and converts them to top-left locations with y growing
// downwards.
func parsePlacement(out []byte, nodes []*scene.Node, margin float64) (placement, error) {
	g, err := graphviz.ParseBytes(out)
	if err != nil {
		return placement{}, errors.Wrap(errors.ErrCodeLayoutFailed, err, "parse dot output")
	}
	defer g.Close()

	bb, ok := parseFloats(g.GetStr("bb"), 4)
	if !ok {
		return placement{}, errors.New(errors.ErrCodeLayoutFailed, "dot output has no bounding box")
	}
	top := bb[3]

	p := placement{Locations: make([]geom.Point, len(nodes))}
	for i, n := range nodes {
		gn, err := g.NodeByName(nodeID(i))
		if err != nil || gn == nil {
			return placement{}, errors.New(errors.ErrCodeLayoutFailed, "dot output has no node %s", nodeID(i))
		}
		pos, ok := parseFloats(strings.TrimSuffix(gn.GetStr("pos"), "!"), 2)
		if !ok {
			return placement{}, errors.New(errors.ErrCodeLayoutFailed, "dot output has no position for %s", nodeID(i))
		}
		c := geom.Pt(pos[0], top-pos[1])
		size := n.Bounds().Size()
		loc := geom.Pt(math.Round(c.X-size.W/2+margin), math.Round(c.Y-size.H/2+margin))
		p.Locations[i] = loc
		r := geom.Rect{X: loc.X, Y: loc.Y, W: size.W, H: size.H}
		if i == 0 {
			p.Bounds = r
		} else {
			p.Bounds = p.Bounds.Union(r)
		}
	}
	return p, nil
}

// parseFloats splits a comma-separated DOT point or box into exactly n
// numbers.
func parseFloats(s string, n int) ([]float64, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, false
	}
	out := make([]float64, n)
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
