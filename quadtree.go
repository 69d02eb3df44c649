package main

// quadtreeCapacity is the maximum number of points a node holds before it subdivides
// (spec §4.1).
const quadtreeCapacity = 4

// Rect is an axis-aligned query/boundary rectangle in grid coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X && r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// quadtreePoint is one indexed (x, y, actor) triple.
type quadtreePoint struct {
	x, y  int
	actor *Actor
}

// Quadtree is a region quadtree over actor positions, rebuilt fresh every tick from the
// current snapshot (spec §4.1). Two are maintained per tick: one over every actor (for
// predator vision) and one over only flowers (for insect foraging).
type Quadtree struct {
	boundary Rect
	points   []quadtreePoint
	divided  bool
	nw, ne, sw, se *Quadtree
}

// NewQuadtree creates an empty quadtree covering boundary.
func NewQuadtree(boundary Rect) *Quadtree {
	return &Quadtree{boundary: boundary}
}

// Insert adds a point to the tree, subdividing this node if it overflows capacity.
// Points outside the boundary are silently ignored, matching how BuildGrid drops
// out-of-bounds actors rather than erroring mid-tick.
func (q *Quadtree) Insert(x, y int, actor *Actor) bool {
	if !q.boundary.contains(x, y) {
		return false
	}

	// A 1x1 node cannot be split any further, so it holds every point at its
	// cell regardless of capacity.
	unsplittable := q.boundary.W <= 1 && q.boundary.H <= 1
	if (len(q.points) < quadtreeCapacity || unsplittable) && !q.divided {
		q.points = append(q.points, quadtreePoint{x: x, y: y, actor: actor})
		return true
	}

	if !q.divided {
		q.subdivide()
	}

	switch {
	case q.nw.Insert(x, y, actor):
	case q.ne.Insert(x, y, actor):
	case q.sw.Insert(x, y, actor):
	case q.se.Insert(x, y, actor):
	default:
		// Keep a point that no quadrant accepts on this node rather than
		// drop it.
		q.points = append(q.points, quadtreePoint{x: x, y: y, actor: actor})
	}
	return true
}

func (q *Quadtree) subdivide() {
	x, y, w, h := q.boundary.X, q.boundary.Y, q.boundary.W, q.boundary.H
	halfW, halfH := w/2, h/2
	if halfW < 1 {
		halfW = 1
	}
	if halfH < 1 {
		halfH = 1
	}

	q.nw = NewQuadtree(Rect{X: x, Y: y, W: halfW, H: halfH})
	q.ne = NewQuadtree(Rect{X: x + halfW, Y: y, W: w - halfW, H: halfH})
	q.sw = NewQuadtree(Rect{X: x, Y: y + halfH, W: halfW, H: h - halfH})
	q.se = NewQuadtree(Rect{X: x + halfW, Y: y + halfH, W: w - halfW, H: h - halfH})
	q.divided = true

	existing := q.points
	q.points = nil
	for _, p := range existing {
		switch {
		case q.nw.Insert(p.x, p.y, p.actor):
		case q.ne.Insert(p.x, p.y, p.actor):
		case q.sw.Insert(p.x, p.y, p.actor):
		case q.se.Insert(p.x, p.y, p.actor):
		default:
			q.points = append(q.points, p)
		}
	}
}

// Query returns every actor in the tree whose position lies within the given
// rectangle, via recursive boundary-intersection pruning (spec §4.1).
func (q *Quadtree) Query(area Rect) []*Actor {
	var found []*Actor
	q.query(area, &found)
	return found
}

func (q *Quadtree) query(area Rect, found *[]*Actor) {
	if !q.boundary.intersects(area) {
		return
	}

	for _, p := range q.points {
		if area.contains(p.x, p.y) {
			*found = append(*found, p.actor)
		}
	}

	if q.divided {
		q.nw.query(area, found)
		q.ne.query(area, found)
		q.sw.query(area, found)
		q.se.query(area, found)
	}
}

// QueryRadius returns every actor within a square of the given radius centered on
// (cx, cy), clipped to the tree's own boundary.
func (q *Quadtree) QueryRadius(cx, cy, radius int) []*Actor {
	area := Rect{X: cx - radius, Y: cy - radius, W: 2*radius + 1, H: 2*radius + 1}
	return q.Query(area)
}

// BuildQuadtree indexes every actor in actors matching the predicate (pass nil to
// index all of them) over a boundary covering the grid.
func BuildQuadtree(width, height int, actors map[string]*Actor, include func(*Actor) bool) *Quadtree {
	qt := NewQuadtree(Rect{X: 0, Y: 0, W: width, H: height})
	for _, a := range actors {
		if include != nil && !include(a) {
			continue
		}
		qt.Insert(a.X, a.Y, a)
	}
	return qt
}
