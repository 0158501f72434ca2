// Package reach finds the light fixtures a wall switch can reach: within a
// radius and with an unobstructed line from the switch.
package reach

import (
	"lightstation/pkg/engine/spatial"
	"lightstation/pkg/engine/world"
)

// MaxTargets caps how many candidates a single query considers
const MaxTargets = 44

// Space is the spatial service a query runs against
type Space interface {
	OverlapCircle(origin world.Vec2, radius float64, mask world.LayerMask, out []*spatial.Body) int
	Raycast(origin, target world.Vec2, mask world.LayerMask) bool
}

// Query holds fixed-capacity buffers so FindTargets never allocates.
// A Query is not safe for concurrent use.
type Query struct {
	space      Space
	targetMask world.LayerMask

	candidates [MaxTargets]*spatial.Body
	found      [MaxTargets]*spatial.Body
}

// NewQuery creates a query over space that considers bodies in targetMask
func NewQuery(space Space, targetMask world.LayerMask) *Query {
	return &Query{space: space, targetMask: targetMask}
}

// FindTargets returns candidates within radius of origin whose line to origin
// is not blocked by obstacleMask, in discovery order.
// The returned slice aliases the query's buffer and is only valid until the next call.
func (q *Query) FindTargets(origin world.Vec2, radius float64, obstacleMask world.LayerMask) []*spatial.Body {
	n := q.space.OverlapCircle(origin, radius, q.targetMask, q.candidates[:])
	out := q.found[:0]
	for i := 0; i < n; i++ {
		b := q.candidates[i]
		q.candidates[i] = nil
		distance := origin.Distance(b.Position)
		if q.isWithinReach(origin, b.Position, distance, radius, obstacleMask) {
			out = append(out, b)
		}
	}
	for i := len(out); i < MaxTargets && q.found[i] != nil; i++ {
		q.found[i] = nil
	}
	return out
}

func (q *Query) isWithinReach(origin, target world.Vec2, distance, radius float64, obstacleMask world.LayerMask) bool {
	return distance <= radius && !q.space.Raycast(origin, target, obstacleMask)
}
