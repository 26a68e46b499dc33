// Package geom provides the 2D primitives shared by the scene model and the
// renderers: points, axis-aligned rectangles and direction vectors.
//
// All coordinates are screen coordinates: X grows to the right and Y grows
// downward. A [Direction] is a free vector; [Direction.NearestCardinal]
// quantizes it to one of the four [Cardinal] buckets:
//
//	|x| >  |y|  →  East (x > 0) or West (x < 0)
//	|x| <= |y|  →  North (y < 0) or South (y > 0)
//
// Exact diagonals therefore resolve to the vertical bucket, which keeps
// attachment layouts stable when two nodes are perfectly diagonal. The zero
// vector has no cardinal direction.
package geom
