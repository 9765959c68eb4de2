package debug

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/soypat/terraskel"
)

// LevelHistogram counts, for each LOD level, how many triangle groups
// currently exist at that depth and how many triangles are queued for
// a distance test. It exists so a host can eyeball whether a
// subdivide/unsubdivide pass is concentrating work at the levels it
// expects.
type LevelHistogram struct {
	GroupCount      []int
	QueuedNextCount []int
}

// BuildLevelHistogram walks every live triangle group in sk and tallies
// group counts per depth, plus sp's pending next-wave queue depth per
// level.
func BuildLevelHistogram(sk *terraskel.Skeleton, sp *terraskel.Scratchpad, levelMax int) LevelHistogram {
	h := LevelHistogram{
		GroupCount:      make([]int, levelMax),
		QueuedNextCount: make([]int, levelMax),
	}
	groupCapacity := int(sk.TriGroupCapacity())
	for i := 0; i < groupCapacity; i++ {
		g := terraskel.GroupId(i)
		if !sk.GroupExists(g) {
			continue
		}
		depth := int(sk.TriGroupAt(g).Depth)
		if depth < levelMax {
			h.GroupCount[depth]++
		}
	}
	for lvl := 0; lvl < levelMax && lvl < sp.LevelCount(); lvl++ {
		h.QueuedNextCount[lvl] = sp.QueuedNextCount(lvl)
	}
	return h
}

// SaveBarChart renders h.GroupCount as a bar chart, one bar per LOD
// level, and saves it as a PNG to outputname.
func SaveBarChart(h LevelHistogram, outputname string) error {
	values := make(plotter.Values, len(h.GroupCount))
	for i, c := range h.GroupCount {
		values[i] = float64(c)
	}

	p := plot.New()
	p.Title.Text = "triangle groups per level"
	p.Y.Label.Text = "groups"
	p.X.Label.Text = "level"

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)

	labels := make([]string, len(h.GroupCount))
	for i := range labels {
		labels[i] = fmt.Sprintf("%d", i)
	}
	p.NominalX(labels...)

	return p.Save(6*vg.Inch, 4*vg.Inch, outputname)
}
