package libdnn

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/awalterschulze/gographviz"
)

type layerNode struct {
	Index    int
	Dim      int
	Kind     string
	WeightsR int
	WeightsC int
}

// ToDot renders the stack architecture as a graphviz digraph: one node per
// layer, edges labelled with the connecting weight shape and the Kind the
// layer was trained with.
func (s *Stack) ToDot() string {
	g := gographviz.NewGraph()
	if err := g.SetName("G"); err != nil {
		panic(err)
	}
	g.SetDir(true)

	for i, dim := range s.LayerDims {
		n := layerNode{Index: i, Dim: dim}
		if i > 0 && i-1 < len(s.Kinds) {
			n.Kind = s.Kinds[i-1].String()
			n.WeightsR = s.LayerDims[i-1] + 1
			n.WeightsC = dim + 1
		}

		var buf bytes.Buffer
		layerTmpl.Execute(&buf, n)
		attrs := map[string]string{
			"fontname": "Monaco",
			"shape":    "none",
			"label":    buf.String(),
		}
		g.AddNode("G", fmt.Sprintf("layer%d", i), attrs)
		if i > 0 {
			g.AddEdge(fmt.Sprintf("layer%d", i-1), fmt.Sprintf("layer%d", i), true, nil)
		}
	}
	return g.String()
}

const layerTmplRaw = `<
<TABLE BORDER="0" CELLBORDER="1" CELLSPACING="0">
<TR><TD>Layer</TD><TD>{{.Index}}</TD></TR>
<TR><TD>Units</TD><TD>{{.Dim}}</TD></TR>
{{if .Kind}}<TR><TD>Kind</TD><TD>{{.Kind}}</TD></TR>
<TR><TD>Weights</TD><TD>{{.WeightsR}}×{{.WeightsC}}</TD></TR>{{end}}
</TABLE>
>
`

var layerTmpl *template.Template

func init() {
	layerTmpl = template.Must(template.New("layer").Parse(layerTmplRaw))
}
