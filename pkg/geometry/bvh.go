package geometry

import (
	"math"
	"sort"
	"sync"

	"github.com/df07/go-progressive-raytracer/pkg/core"
)

// Cost constants for the surface-area heuristic, as recommended by Wald &
// Havran: a traversal step is cheaper than a ray/primitive test, but not
// free.
const (
	intersectionCost = 1.0
	traversalCost    = 1.5

	// the fork/join build recurses sequentially at or below this size to
	// avoid spawning a goroutine per handful of triangles; whether a range
	// becomes a leaf is decided by the SAH cost alone.
	parallelBuildThreshold = 64
)

// bvhNode is either a Leaf (a contiguous range [begin,end) into BVH.items)
// or a Split with two children, ordered by axis for front-to-back traversal.
type bvhNode struct {
	bbox        core.AABB
	begin, end  int
	axis        core.Axis
	left, right *bvhNode
}

func (n *bvhNode) isLeaf() bool { return n.left == nil }

// BVH is a generic bounding volume hierarchy over a slice of items of type T.
// Items are permuted during Build so that every leaf is a contiguous slice.
type BVH[T any] struct {
	items []T
	root  *bvhNode
}

// CentroidFunc projects an item's centroid onto the given axis.
type CentroidFunc[T any] func(item T, axis core.Axis) float64

// BBoxFunc returns an item's world-space bounding box.
type BBoxFunc[T any] func(item T) core.AABB

// BuildBVH constructs a SAH BVH over items, reordering them in place.
// proj is the centroid projector, bbox the per-item bounding box. Sibling
// subtrees are built concurrently via fork/join, falling back to sequential
// recursion once a range is small enough that goroutine overhead would
// dominate.
func BuildBVH[T any](items []T, proj CentroidFunc[T], bbox BBoxFunc[T]) *BVH[T] {
	b := &BVH[T]{items: items}
	if len(items) == 0 {
		b.root = &bvhNode{bbox: core.EmptyAABB(), begin: 0, end: 0}
		return b
	}
	var wg sync.WaitGroup
	b.root = buildRange(items, 0, len(items), proj, bbox, &wg)
	wg.Wait()
	return b
}

func buildRange[T any](items []T, begin, end int, proj CentroidFunc[T], bbox BBoxFunc[T], wg *sync.WaitGroup) *bvhNode {
	n := end - begin
	bestCost := intersectionCost * float64(n)
	bestAxis := -1
	bestIndex := 0
	var nodeBBox core.AABB
	var lastSortedAxis core.Axis

	prefixArea := make([]float64, n)

	for axisIdx := 0; axisIdx < 3; axisIdx++ {
		axis := core.Axis(axisIdx)
		sub := items[begin:end]
		sort.SliceStable(sub, func(i, j int) bool {
			ci, cj := proj(sub[i], axis), proj(sub[j], axis)
			if math.IsNaN(ci) || math.IsNaN(cj) {
				panic("bvh: centroid is NaN")
			}
			return ci < cj
		})
		lastSortedAxis = axis

		// left-to-right prefix scan
		prefix := core.EmptyAABB()
		for i := 0; i < n; i++ {
			prefix = prefix.Union(bbox(sub[i]))
			prefixArea[i] = prefix.SurfaceArea()
		}
		if axisIdx == 0 {
			nodeBBox = prefix
		}

		// right-to-left suffix scan, evaluating the SAH cost of splitting
		// before index i (i items on the left, n-i on the right)
		tariFactor := intersectionCost / nodeBBox.SurfaceArea()
		suffix := core.EmptyAABB()
		for i := n - 1; i >= 1; i-- {
			suffix = suffix.Union(bbox(sub[i]))
			suffixArea := suffix.SurfaceArea()
			cost := 2*traversalCost + tariFactor*(float64(i)*prefixArea[i-1]+float64(n-i)*suffixArea)
			if cost < bestCost {
				bestCost = cost
				bestAxis = axisIdx
				bestIndex = i
			}
		}
	}

	if bestAxis < 0 {
		return &bvhNode{bbox: nodeBBox, begin: begin, end: end}
	}

	if core.Axis(bestAxis) != lastSortedAxis {
		sub := items[begin:end]
		axis := core.Axis(bestAxis)
		sort.SliceStable(sub, func(i, j int) bool {
			return proj(sub[i], axis) < proj(sub[j], axis)
		})
	}

	mid := begin + bestIndex
	node := &bvhNode{bbox: nodeBBox, axis: core.Axis(bestAxis)}

	if n <= parallelBuildThreshold {
		node.left = buildRange(items, begin, mid, proj, bbox, wg)
		node.right = buildRange(items, mid, end, proj, bbox, wg)
		return node
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		node.left = buildRange(items, begin, mid, proj, bbox, wg)
	}()
	node.right = buildRange(items, mid, end, proj, bbox, wg)

	return node
}

// IntersectItemFunc tests a single item for intersection, returning the hit
// distance (<=0 to signal a miss) and arbitrary user data for the hit.
type IntersectItemFunc[T any, D any] func(ray core.Ray, item T) (float64, D)

// Intersect traverses the BVH front-to-back, returning the globally closest
// strictly-positive hit's distance, item index and user data. A miss is
// signalled by a distance of -1.
func Intersect[T any, D any](b *BVH[T], ray core.Ray, intersectItem IntersectItemFunc[T, D]) (float64, int, D) {
	var zero D
	invDir := core.Vec3{X: 1 / ray.Direction.X, Y: 1 / ray.Direction.Y, Z: 1 / ray.Direction.Z}
	return intersectRec(b, b.root, ray, invDir, math.Inf(1), intersectItem, zero)
}

func intersectRec[T any, D any](b *BVH[T], node *bvhNode, ray core.Ray, invDir core.Vec3, distMax float64, intersectItem IntersectItemFunc[T, D], zero D) (float64, int, D) {
	tNear, tFar := node.bbox.IntersectFast(ray, invDir)
	if tFar < 0 || (tNear >= 0 && tNear >= distMax) {
		return -1, -1, zero
	}

	if node.isLeaf() {
		bestT := -1.0
		bestIdx := -1
		bestData := zero
		for i := node.begin; i < node.end; i++ {
			t, data := intersectItem(ray, b.items[i])
			if t > 0 && t < distMax && (bestT < 0 || t < bestT) {
				bestT = t
				bestIdx = i
				bestData = data
				distMax = t
			}
		}
		return bestT, bestIdx, bestData
	}

	// visit the child the ray enters first
	first, second := node.left, node.right
	if ray.Direction.Component(node.axis) < 0 {
		first, second = node.right, node.left
	}

	t1, i1, d1 := intersectRec(b, first, ray, invDir, distMax, intersectItem, zero)
	if t1 > 0 && t1 < distMax {
		distMax = t1
	}
	t2, i2, d2 := intersectRec(b, second, ray, invDir, distMax, intersectItem, zero)

	if t2 > 0 && (t1 <= 0 || t2 < t1) {
		return t2, i2, d2
	}
	return t1, i1, d1
}

// BoundingBox returns the BVH root's bounding box, the union of every item.
func (b *BVH[T]) BoundingBox() core.AABB {
	return b.root.bbox
}

// Items returns the BVH's internally-permuted item slice; leaves reference
// contiguous ranges of this slice.
func (b *BVH[T]) Items() []T {
	return b.items
}
