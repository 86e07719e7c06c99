package inpaint

import "image"

// Point is a pixel coordinate within the working image.
type Point struct {
	X, Y int
}

// patchRegion returns the square region of side 2*radius+1 centered at p,
// clipped to bounds. Mirrors the flat-index bounds clipping caire's carver
// uses for its energy window, generalized to an arbitrary radius.
func patchRegion(p Point, radius int, bounds image.Rectangle) image.Rectangle {
	r := image.Rect(p.X-radius, p.Y-radius, p.X+radius+1, p.Y+radius+1)
	return r.Intersect(bounds)
}

// fullPatchRegion returns the region without clipping; used to test whether
// a patch is fully inside the image (status INVALID otherwise).
func fullPatchRegion(p Point, radius int) image.Rectangle {
	return image.Rect(p.X-radius, p.Y-radius, p.X+radius+1, p.Y+radius+1)
}

// inBounds reports whether r lies entirely within bounds.
func inBounds(r, bounds image.Rectangle) bool {
	return r.Min.X >= bounds.Min.X && r.Min.Y >= bounds.Min.Y &&
		r.Max.X <= bounds.Max.X && r.Max.Y <= bounds.Max.Y
}

// offsets enumerates the (dx, dy) pairs covered by a patch of the given
// radius, row-major, matching the iteration order used throughout the
// priority/descriptor/KNN code so patch comparisons line up index-for-index.
func offsets(radius int) []Point {
	side := 2*radius + 1
	out := make([]Point, 0, side*side)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			out = append(out, Point{dx, dy})
		}
	}
	return out
}

func neighbors8(p Point) [8]Point {
	return [8]Point{
		{p.X - 1, p.Y - 1}, {p.X, p.Y - 1}, {p.X + 1, p.Y - 1},
		{p.X - 1, p.Y}, {p.X + 1, p.Y},
		{p.X - 1, p.Y + 1}, {p.X, p.Y + 1}, {p.X + 1, p.Y + 1},
	}
}
