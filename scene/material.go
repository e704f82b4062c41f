package scene

// Material is a shader assignment with the nodes of its shader graph.
type Material struct {
	Name string `yaml:"name"`
	// ShaderName is the shader name (rdr lookup key), ShaderFile the shader
	// file name (gta lookup key, e.g. "default.sps").
	ShaderName   string `yaml:"shader"`
	ShaderFile   string `yaml:"shader_file"`
	RenderBucket int    `yaml:"render_bucket"`
	Nodes        Nodes  `yaml:"nodes"`
}

// Node is one shader graph node. The set of node kinds is closed.
type Node interface {
	NodeName() string
	isNode()
}

type ImageNode struct {
	Name        string `yaml:"name"`
	TextureName string `yaml:"texture"`
	ImagePath   string `yaml:"image"`
	Embedded    bool   `yaml:"embedded"`
	Width       int    `yaml:"width"`
	Height      int    `yaml:"height"`
	Format      string `yaml:"format"`
	Usage       string `yaml:"usage"`
	// Names of the texture flags set on the node.
	UsageFlags []string `yaml:"usage_flags"`
	ExtraFlags int      `yaml:"extra_flags"`
	// Sampler slot, rdr only.
	Index int `yaml:"index"`
}

// ValueNode holds a Rows x Cols float table plus the raw buffer placement used
// by cbuffer and sampler parameters.
type ValueNode struct {
	Name         string    `yaml:"name"`
	Values       []float32 `yaml:"values"`
	Cols         int       `yaml:"cols"`
	Rows         int       `yaml:"rows"`
	Buffer       int       `yaml:"buffer"`
	Offset       int       `yaml:"offset"`
	SamplerIndex int       `yaml:"sampler_index"`
}

func (n *ImageNode) NodeName() string { return n.Name }
func (n *ValueNode) NodeName() string { return n.Name }

func (*ImageNode) isNode() {}
func (*ValueNode) isNode() {}

// Get returns value i or 0 when absent.
func (n *ValueNode) Get(i int) float32 {
	if i < 0 || i >= len(n.Values) {
		return 0
	}
	return n.Values[i]
}

func (n *ValueNode) Columns() int {
	if n.Cols <= 0 {
		return 1
	}
	return n.Cols
}

func (n *ValueNode) RowsCount() int {
	if n.Rows <= 0 {
		return 1
	}
	return n.Rows
}

// EmbeddedImageNodes returns embedded image nodes that reference an image, in
// material then node order.
func EmbeddedImageNodes(materials []*Material) []*ImageNode {
	nodes := make([]*ImageNode, 0)
	for _, mat := range materials {
		for _, node := range mat.Nodes {
			if img, ok := node.(*ImageNode); ok && img.Embedded && img.ImagePath != "" {
				nodes = append(nodes, img)
			}
		}
	}
	return nodes
}
