package inpaint

import (
	"image"
	"runtime"
	"sort"
	"sync"
)

// DistanceFunc scores how well the source patch centered at src matches the
// known portion of the target descriptor. Lower is better.
type DistanceFunc func(b *Buffers, target Descriptor, src Point) float64

// DistanceSSD is the sum of squared differences over the valid-offset
// pixels of target, summed across the original, blurred and
// lightly-blurred layers.
func DistanceSSD(b *Buffers, target Descriptor, src Point) float64 {
	return patchDistance(b, target, src, func(d float64) float64 { return d * d })
}

// DistanceSAD is the sum of absolute differences, otherwise identical to
// DistanceSSD.
func DistanceSAD(b *Buffers, target Descriptor, src Point) float64 {
	return patchDistance(b, target, src, absf)
}

func absf(d float64) float64 {
	if d < 0 {
		return -d
	}
	return d
}

func patchDistance(b *Buffers, target Descriptor, src Point, penalty func(float64) float64) float64 {
	offs := offsets(b.Radius)
	var sum float64
	for i, o := range offs {
		if !target.ValidOffset[i] {
			continue
		}
		tx, ty := target.Center.X+o.X, target.Center.Y+o.Y
		sx, sy := src.X+o.X, src.Y+o.Y

		sum += layerDistance(b.Image, tx, ty, sx, sy, penalty)
		sum += 0.5 * layerDistance(b.Blurred, tx, ty, sx, sy, penalty)
		sum += 0.25 * layerDistance(b.LightBlurred, tx, ty, sx, sy, penalty)
	}
	return sum
}

func layerDistance(img *image.NRGBA, tx, ty, sx, sy int, penalty func(float64) float64) float64 {
	t := img.NRGBAAt(tx, ty)
	s := img.NRGBAAt(sx, sy)
	return penalty(float64(t.R)-float64(s.R)) +
		penalty(float64(t.G)-float64(s.G)) +
		penalty(float64(t.B)-float64(s.B))
}

func rect(w, h int) image.Rectangle { return image.Rect(0, 0, w, h) }

// Candidate is one of the K nearest source patches returned by the search.
type Candidate struct {
	Center   Point
	Distance float64
}

// Search scans every fully-valid source patch in the image and returns the
// K closest to target under dist. The scan is split across workers
// contiguous-row shards; each worker collects every source in its shard,
// sorts them and keeps its K closest, and the per-worker results are merged
// with a deterministic, lexicographic tie-break so the result is identical
// regardless of how many workers ran (S5).
func Search(b *Buffers, target Descriptor, k int, workers int, dist DistanceFunc) ([]Candidate, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > b.H {
		workers = b.H
	}
	if workers < 1 {
		workers = 1
	}

	rowsPerWorker := (b.H + workers - 1) / workers
	results := make([][]Candidate, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		y0 := w * rowsPerWorker
		y1 := y0 + rowsPerWorker
		if y1 > b.H {
			y1 = b.H
		}
		if y0 >= y1 {
			continue
		}
		wg.Add(1)
		go func(w, y0, y1 int) {
			defer wg.Done()
			results[w] = localTopK(b, target, k, dist, y0, y1)
		}(w, y0, y1)
	}
	wg.Wait()

	merged := make([]Candidate, 0, k*workers)
	for _, r := range results {
		merged = append(merged, r...)
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].Distance != merged[j].Distance {
			return merged[i].Distance < merged[j].Distance
		}
		if merged[i].Center.Y != merged[j].Center.Y {
			return merged[i].Center.Y < merged[j].Center.Y
		}
		return merged[i].Center.X < merged[j].Center.X
	})

	if len(merged) > k {
		merged = merged[:k]
	}
	if len(merged) < k {
		return merged, ErrInsufficientSources
	}
	return merged, nil
}

func localTopK(b *Buffers, target Descriptor, k int, dist DistanceFunc, y0, y1 int) []Candidate {
	local := make([]Candidate, 0, k+1)
	for y := y0; y < y1; y++ {
		for x := 0; x < b.W; x++ {
			p := Point{x, y}
			full := fullPatchRegion(p, b.Radius)
			if !inBounds(full, rect(b.W, b.H)) {
				continue
			}
			if !b.Mask.RegionFullyValid(full) {
				continue
			}
			d := dist(b, target, p)
			local = append(local, Candidate{Center: p, Distance: d})
		}
	}
	sort.Slice(local, func(i, j int) bool {
		if local[i].Distance != local[j].Distance {
			return local[i].Distance < local[j].Distance
		}
		if local[i].Center.Y != local[j].Center.Y {
			return local[i].Center.Y < local[j].Center.Y
		}
		return local[i].Center.X < local[j].Center.X
	})
	if len(local) > k {
		local = local[:k]
	}
	return local
}
