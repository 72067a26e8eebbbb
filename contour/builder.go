package contour

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"mapengine/geometry"
)

// StitchEpsilon is the endpoint-matching tolerance used when chaining
// segments into paths.
const StitchEpsilon = 0.1

// Path is an ordered point sequence produced by stitching. For closed paths
// the first point is not repeated at the end; the closing edge is implied.
type Path struct {
	Points []mgl64.Vec2
	Closed bool

	// Parent is the index of the smallest enclosing path after
	// BuildHierarchy, or -1 for roots.
	Parent int
}

// Area returns the signed area of the path treated as a polygon.
func (p *Path) Area() float64 {
	return geometry.SignedArea(p.Points)
}

// Bounds returns the bounding rect of the path points.
func (p *Path) Bounds() geometry.Rect {
	return geometry.BoundsOf(p.Points)
}

// endpoint hashing: buckets of StitchEpsilon-sized cells, neighbors probed on
// lookup so matches across bucket boundaries are not missed.
type endpointIndex struct {
	cell    float64
	buckets map[[2]int][]int
}

func newEndpointIndex(cell float64) *endpointIndex {
	return &endpointIndex{cell: cell, buckets: make(map[[2]int][]int)}
}

func (ix *endpointIndex) key(p mgl64.Vec2) [2]int {
	return [2]int{int(math.Floor(p.X() / ix.cell)), int(math.Floor(p.Y() / ix.cell))}
}

func (ix *endpointIndex) add(p mgl64.Vec2, seg int) {
	k := ix.key(p)
	ix.buckets[k] = append(ix.buckets[k], seg)
}

func (ix *endpointIndex) near(p mgl64.Vec2) []int {
	k := ix.key(p)
	var out []int
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			out = append(out, ix.buckets[[2]int{k[0] + dx, k[1] + dy}]...)
		}
	}
	return out
}

func samePoint(a, b mgl64.Vec2, eps float64) bool {
	return math.Abs(a.X()-b.X()) <= eps && math.Abs(a.Y()-b.Y()) <= eps
}

// Stitch chains a segment soup into ordered paths by greedy endpoint
// matching. Each unused segment seeds a path which grows at its tail until no
// unused segment continues it; the path is then reversed once and grown again
// so seeds that land mid-path still produce a single chain. A path whose ends
// meet becomes a closed loop. Chains whose points all coincide within eps are
// dropped.
func Stitch(segs []Segment, eps float64) []*Path {
	if eps <= 0 {
		eps = StitchEpsilon
	}
	ix := newEndpointIndex(eps)
	for i, s := range segs {
		ix.add(s.A, i)
		ix.add(s.B, i)
	}

	used := make([]bool, len(segs))
	var paths []*Path

	takeNext := func(tip mgl64.Vec2) (mgl64.Vec2, bool) {
		for _, cand := range ix.near(tip) {
			if used[cand] {
				continue
			}
			if samePoint(segs[cand].A, tip, eps) {
				used[cand] = true
				return segs[cand].B, true
			}
			if samePoint(segs[cand].B, tip, eps) {
				used[cand] = true
				return segs[cand].A, true
			}
		}
		return mgl64.Vec2{}, false
	}

	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		pts := []mgl64.Vec2{segs[i].A, segs[i].B}

		for pass := 0; pass < 2; pass++ {
			for {
				next, ok := takeNext(pts[len(pts)-1])
				if !ok {
					break
				}
				pts = append(pts, next)
			}
			reverse(pts)
		}

		// A chain of only zero-length segments (an iso-line touching a sample
		// exactly) has no extent and yields no path.
		extent := false
		for _, q := range pts[1:] {
			if !samePoint(q, pts[0], eps) {
				extent = true
				break
			}
		}
		if !extent {
			continue
		}

		p := &Path{Points: pts, Parent: -1}
		if len(pts) > 2 && samePoint(pts[0], pts[len(pts)-1], eps) {
			p.Points = pts[:len(pts)-1]
			p.Closed = true
		}
		paths = append(paths, p)
	}
	return paths
}

func reverse(pts []mgl64.Vec2) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// Chaikin applies corner-cutting smoothing: every consecutive point pair is
// replaced by points at 0.25 and 0.75 along it. Closed paths wrap; open paths
// keep their original endpoints. k iterations double the point count of a
// closed path k times.
func Chaikin(pts []mgl64.Vec2, closed bool, iterations int) []mgl64.Vec2 {
	for it := 0; it < iterations; it++ {
		if len(pts) < 3 {
			return pts
		}
		var out []mgl64.Vec2
		if closed {
			out = make([]mgl64.Vec2, 0, len(pts)*2)
			for i := range pts {
				p, q := pts[i], pts[(i+1)%len(pts)]
				out = append(out,
					p.Mul(0.75).Add(q.Mul(0.25)),
					p.Mul(0.25).Add(q.Mul(0.75)))
			}
		} else {
			out = make([]mgl64.Vec2, 0, len(pts)*2)
			out = append(out, pts[0])
			for i := 0; i < len(pts)-1; i++ {
				p, q := pts[i], pts[i+1]
				out = append(out,
					p.Mul(0.75).Add(q.Mul(0.25)),
					p.Mul(0.25).Add(q.Mul(0.75)))
			}
			out = append(out, pts[len(pts)-1])
		}
		pts = out
	}
	return pts
}

// hierarchyEpsilon is boundary-inclusive slack for the containment test.
const hierarchyEpsilon = 0.5

// BuildHierarchy assigns each closed path its parent: the smallest-area path
// that fully encloses it (bounding-box prefilter, then point-in-polygon on a
// sample of vertices). Open paths keep Parent == -1 and never parent others.
func BuildHierarchy(paths []*Path) {
	type entry struct {
		idx  int
		area float64
		bbox geometry.Rect
	}
	var closed []entry
	for i, p := range paths {
		p.Parent = -1
		if p.Closed && len(p.Points) >= 3 {
			closed = append(closed, entry{i, math.Abs(p.Area()), p.Bounds()})
		}
	}
	// Candidates checked smallest-first so the first enclosing hit is the
	// tightest parent.
	sort.Slice(closed, func(i, j int) bool { return closed[i].area < closed[j].area })

	for ci, child := range closed {
		for _, cand := range closed[ci+1:] {
			if cand.area <= child.area {
				continue
			}
			if !cand.bbox.Pad(hierarchyEpsilon).ContainsRect(child.bbox) {
				continue
			}
			if enclosesSample(paths[cand.idx].Points, paths[child.idx].Points) {
				paths[child.idx].Parent = cand.idx
				break
			}
		}
	}
}

// enclosesSample tests a few vertices of the child against the candidate
// polygon; majority containment wins to stay robust against smoothed points
// that touch the boundary.
func enclosesSample(outer, child []mgl64.Vec2) bool {
	stride := len(child) / 5
	if stride < 1 {
		stride = 1
	}
	inside, total := 0, 0
	for i := 0; i < len(child); i += stride {
		total++
		if geometry.PointInPolygon(child[i], outer, hierarchyEpsilon) {
			inside++
		}
	}
	return inside*2 > total
}

// Depth returns the nesting depth of path i (0 for roots).
func Depth(paths []*Path, i int) int {
	d := 0
	for paths[i].Parent >= 0 {
		i = paths[i].Parent
		d++
		if d > len(paths) {
			break // cycle guard; cannot happen with a well-formed forest
		}
	}
	return d
}

// FillGroup pairs a solid outer ring with the direct children punched out of
// it as holes.
type FillGroup struct {
	Outer int
	Holes []int
}

// FillGroups flattens the hierarchy for rendering: every even-depth closed
// path becomes a solid ring with its direct children as holes, so
// grandchildren re-emerge as solid islands inside holes. Groups are ordered
// by depth, roots first.
func FillGroups(paths []*Path) []FillGroup {
	children := make(map[int][]int)
	var groups []FillGroup
	for i, p := range paths {
		if p.Closed && p.Parent >= 0 {
			children[p.Parent] = append(children[p.Parent], i)
		}
	}
	type cand struct{ idx, depth int }
	var cands []cand
	for i, p := range paths {
		if !p.Closed || len(p.Points) < 3 {
			continue
		}
		if d := Depth(paths, i); d%2 == 0 {
			cands = append(cands, cand{i, d})
		}
	}
	sort.Slice(cands, func(i, j int) bool {
		if cands[i].depth != cands[j].depth {
			return cands[i].depth < cands[j].depth
		}
		return cands[i].idx < cands[j].idx
	})
	for _, c := range cands {
		groups = append(groups, FillGroup{Outer: c.idx, Holes: children[c.idx]})
	}
	return groups
}
