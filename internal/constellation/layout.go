package constellation

import (
	"math"

	"github.com/golang/geo/r1"
	"github.com/golang/geo/r2"
	"github.com/jengzang/ghostquant-backend-go/internal/models"
)

// link is an edge whose endpoints resolved to node indices
type link struct {
	from, to int
	strength float64
	edge     models.GraphEdge
}

// Minimum pull along an edge so weak relationships still attract a little
const minLinkWeight = 0.1

// canvasRect returns the drawable area: the canvas shrunk by padding,
// never more than a quarter of either side
func canvasRect(width, height, padding float64) r2.Rect {
	pad := math.Min(padding, math.Min(width/4, height/4))
	if pad < 0 {
		pad = 0
	}
	return r2.Rect{
		X: r1.Interval{Lo: pad, Hi: width - pad},
		Y: r1.Interval{Lo: pad, Hi: height - pad},
	}
}

// placeNodes assigns every node a position inside area.
// Nodes with their own coordinates are scaled from their joint bounding box and
// stay pinned; the rest start on a circle and settle under a force simulation.
func placeNodes(nodes []models.GraphNode, links []link, area r2.Rect, iterations int) []r2.Point {
	pos := make([]r2.Point, len(nodes))
	pinned := make([]bool, len(nodes))

	bounds := r2.EmptyRect()
	for _, n := range nodes {
		if n.HasPosition() {
			bounds = bounds.AddPoint(r2.Point{X: *n.X, Y: *n.Y})
		}
	}

	var free []int
	for i, n := range nodes {
		if n.HasPosition() {
			pos[i] = area.ClampPoint(r2.Point{
				X: scaleInto(*n.X, bounds.X, area.X),
				Y: scaleInto(*n.Y, bounds.Y, area.Y),
			})
			pinned[i] = true
			continue
		}
		free = append(free, i)
	}
	if len(free) == 0 {
		return pos
	}

	center := area.Center()
	size := area.Size()
	if len(nodes) == 1 {
		pos[free[0]] = center
		return pos
	}

	radius := math.Min(size.X, size.Y) / 3
	for k, i := range free {
		angle := 2 * math.Pi * float64(k) / float64(len(free))
		pos[i] = area.ClampPoint(center.Add(r2.Point{X: math.Cos(angle), Y: math.Sin(angle)}.Mul(radius)))
	}

	simulate(pos, pinned, links, area, iterations)
	return pos
}

// scaleInto maps v linearly from the src interval into dst.
// A zero-length src maps everything to the middle of dst. Values are divided
// by the largest magnitude first so spans near math.MaxFloat64 do not overflow.
func scaleInto(v float64, src, dst r1.Interval) float64 {
	if !(src.Hi > src.Lo) {
		return dst.Center()
	}
	m := math.Max(math.Abs(v), math.Max(math.Abs(src.Lo), math.Abs(src.Hi)))
	t := (v/m - src.Lo/m) / (src.Hi/m - src.Lo/m)
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return dst.Center()
	}
	return dst.Lo + t*dst.Length()
}

// simulate runs a Fruchterman-Reingold layout over the free nodes
func simulate(pos []r2.Point, pinned []bool, links []link, area r2.Rect, iterations int) {
	size := area.Size()
	n := len(pos)
	surface := size.X * size.Y
	if surface <= 0 || n < 2 || iterations <= 0 {
		return
	}

	k := math.Sqrt(surface / float64(n))
	temperature := math.Min(size.X, size.Y) / 10
	cooling := temperature / float64(iterations)
	disp := make([]r2.Point, n)

	for it := 0; it < iterations; it++ {
		for i := range disp {
			disp[i] = r2.Point{}
		}

		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				delta := pos[i].Sub(pos[j])
				d := delta.Norm()
				if d < 1e-6 {
					// Coincident nodes: separate them along a fixed direction
					delta = r2.Point{X: 0.01, Y: 0.01 * float64(j-i)}
					d = delta.Norm()
				}
				push := delta.Mul(k * k / (d * d))
				disp[i] = disp[i].Add(push)
				disp[j] = disp[j].Sub(push)
			}
		}

		for _, l := range links {
			if l.from == l.to {
				continue
			}
			delta := pos[l.from].Sub(pos[l.to])
			d := delta.Norm()
			if d < 1e-6 {
				continue
			}
			weight := math.Max(minLinkWeight, math.Min(l.strength, 1))
			pull := delta.Mul(d * weight / k)
			disp[l.from] = disp[l.from].Sub(pull)
			disp[l.to] = disp[l.to].Add(pull)
		}

		for i := range pos {
			if pinned[i] {
				continue
			}
			length := disp[i].Norm()
			if length > 0 {
				step := math.Min(length, temperature)
				pos[i] = pos[i].Add(disp[i].Mul(step / length))
			}
			pos[i] = area.ClampPoint(pos[i])
		}

		temperature -= cooling
		if temperature <= 0 {
			break
		}
	}
}
