package geometry

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Items       []int // Item indices for leaf nodes (nil for internal nodes)
}

// BVH is a Bounding Volume Hierarchy over indexed items. It stores indices
// only; the owner resolves an index to its primitive or face when testing.
type BVH struct {
	Root *BVHNode
}

var infinity = math.Inf(1)

// Leaf threshold: if we have this many or fewer items, store them in a leaf node
const leafThreshold = 8

// NewBVH builds a BVH over items whose bounds are given by index
func NewBVH(bounds []core.AABB) *BVH {
	if len(bounds) == 0 {
		return &BVH{}
	}

	items := make([]int, len(bounds))
	for i := range items {
		items[i] = i
	}
	return &BVH{Root: buildBVH(items, bounds)}
}

// buildBVH recursively builds the BVH using median splits along the longest axis
func buildBVH(items []int, bounds []core.AABB) *BVHNode {
	boundingBox := bounds[items[0]]
	for _, i := range items[1:] {
		boundingBox = boundingBox.Union(bounds[i])
	}

	if len(items) <= leafThreshold {
		return &BVHNode{BoundingBox: boundingBox, Items: items}
	}

	axis := boundingBox.LongestAxis()
	minVal, maxVal := boundingBox.Min.Axis(axis), boundingBox.Max.Axis(axis)
	if maxVal <= minVal {
		return &BVHNode{BoundingBox: boundingBox, Items: items}
	}
	splitPos := (minVal + maxVal) * 0.5

	var left, right []int
	for _, i := range items {
		if bounds[i].Center().Axis(axis) < splitPos {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	// Ensure we don't create empty partitions
	if len(left) == 0 || len(right) == 0 {
		return &BVHNode{BoundingBox: boundingBox, Items: items}
	}

	return &BVHNode{
		BoundingBox: boundingBox,
		Left:        buildBVH(left, bounds),
		Right:       buildBVH(right, bounds),
	}
}

// Intersect returns the nearest hit among all items. hitItem tests a single
// item by index.
func (bvh *BVH) Intersect(ray core.Ray, hitItem func(i int) (material.Intersection, bool)) (material.Intersection, bool) {
	closest := material.Intersection{T: material.MissT}
	if bvh.Root == nil {
		return closest, false
	}

	found := false
	bvh.hitNode(bvh.Root, ray, hitItem, &closest, &found)
	return closest, found
}

// hitNode recursively tests ray intersection with BVH nodes
func (bvh *BVH) hitNode(node *BVHNode, ray core.Ray, hitItem func(int) (material.Intersection, bool), closest *material.Intersection, found *bool) {
	tMax := closest.T
	if !*found {
		tMax = infinity
	}
	if !node.BoundingBox.Hit(ray, 0, tMax) {
		return
	}

	if node.Items != nil {
		for _, i := range node.Items {
			isect, hit := hitItem(i)
			if hit && (!*found || isect.T < closest.T) {
				*closest = isect
				*found = true
			}
		}
		return
	}

	if node.Left != nil {
		bvh.hitNode(node.Left, ray, hitItem, closest, found)
	}
	if node.Right != nil {
		bvh.hitNode(node.Right, ray, hitItem, closest, found)
	}
}

// Group is a set of primitives intersected through a BVH
type Group struct {
	primitives []Primitive
	bvh        *BVH
	bounds     core.AABB
}

// NewGroup builds a BVH over primitives
func NewGroup(primitives []Primitive) *Group {
	bounds := make([]core.AABB, len(primitives))
	var total core.AABB
	for i, p := range primitives {
		bounds[i] = p.Bounds()
		if i == 0 {
			total = bounds[i]
		} else {
			total = total.Union(bounds[i])
		}
	}

	return &Group{
		primitives: primitives,
		bvh:        NewBVH(bounds),
		bounds:     total,
	}
}

// Intersect returns the nearest hit over every primitive in the group
func (g *Group) Intersect(ray core.Ray) (material.Intersection, bool) {
	return g.bvh.Intersect(ray, func(i int) (material.Intersection, bool) {
		return g.primitives[i].Intersect(ray)
	})
}

// Bounds returns the box enclosing all primitives
func (g *Group) Bounds() core.AABB { return g.bounds }

// Len returns the number of primitives
func (g *Group) Len() int { return len(g.primitives) }
