package r2

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

type layerInfo struct {
	Index      int
	Classifier string
	Scaler     string
	Projection string
	C          float64
}

// ToDot returns the layer topology of a fitted learner in Graphviz dot format: one node per layer, forward edges
// between consecutive layers labelled with their projections, and feedback edges from every earlier layer when the
// learner is recurrent.
func (l *Learner) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("R2"); err != nil {
		panic(err)
	}
	if err := g.SetDir(true); err != nil {
		panic(err)
	}

	name := func(i int) string { return fmt.Sprintf("layer%d", i) }
	g.AddNode("R2", "input", map[string]string{"shape": "box", "label": fmt.Sprintf(`"X (%d features, %v)"`, l.features, l.repr)})

	var buf bytes.Buffer
	for i, ly := range l.layers {
		info := layerInfo{
			Index:      i,
			Classifier: fmt.Sprintf("%T", ly.cls),
			Scaler:     "none",
			Projection: "terminal",
			C:          ly.c,
		}
		if ly.scaler != nil {
			info.Scaler = fmt.Sprintf("%T", ly.scaler)
		}
		if ly.w != nil {
			r, c := ly.w.Dims()
			info.Projection = fmt.Sprintf("%d×%d", r, c)
		}
		buf.Reset()
		if err := layerTmpl.Execute(&buf, info); err != nil {
			panic(err)
		}
		g.AddNode("R2", name(i), map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		})

		if i == 0 {
			g.AddEdge("input", name(0), true, nil)
			continue
		}
		g.AddEdge(name(i-1), name(i), true, map[string]string{"label": fmt.Sprintf(`"W%d"`, i-1)})
		if !l.Recurrent {
			continue
		}
		for j := 0; j < i-1; j++ {
			g.AddEdge(name(j), name(i), true, map[string]string{"style": "dashed"})
		}
	}
	return g.String()
}

const layerTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Layer</TD><TD>{{.Index}}</TD></TR>
<TR><TD>Classifier</TD><TD>{{.Classifier}}</TD></TR>
<TR><TD>Scaler</TD><TD>{{.Scaler}}</TD></TR>
<TR><TD>Projection</TD><TD>{{.Projection}}</TD></TR>
<TR><TD>C</TD><TD>{{.C}}</TD></TR>
</TABLE>
>
`

var layerTmpl = template.Must(template.New("layer").Parse(layerTmplRaw))
