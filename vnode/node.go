// Package vnode defines the immutable virtual-node tree applications
// build each frame. Containers and leaves are encoded as a sealed
// tagged union: a Kind discriminator plus the one payload field that
// kind uses, rather than a discriminant string with structural typing.
package vnode

// Kind discriminates the variant a Node holds.
type Kind uint8

const (
	KindText Kind = iota
	KindSpacer
	KindDivider
	KindWidget
	KindRow
	KindColumn
	KindBox
	KindLayers
)

func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindSpacer:
		return "spacer"
	case KindDivider:
		return "divider"
	case KindWidget:
		return "widget"
	case KindRow:
		return "row"
	case KindColumn:
		return "column"
	case KindBox:
		return "box"
	case KindLayers:
		return "layers"
	default:
		return "unknown"
	}
}

// WidgetKind names a built-in widget leaf.
type WidgetKind string

const (
	WidgetButton      WidgetKind = "button"
	WidgetInput       WidgetKind = "input"
	WidgetCheckbox    WidgetKind = "checkbox"
	WidgetSelect      WidgetKind = "select"
	WidgetTable       WidgetKind = "table"
	WidgetTree        WidgetKind = "tree"
	WidgetDropdown    WidgetKind = "dropdown"
	WidgetModal       WidgetKind = "modal"
	WidgetSplitPane   WidgetKind = "splitPane"
	WidgetCodeEditor  WidgetKind = "codeEditor"
	WidgetDiffViewer  WidgetKind = "diffViewer"
	WidgetLogsConsole WidgetKind = "logsConsole"
)

// Style carries the subset of visual attributes every leaf node may
// request; it mirrors the ZRDL style-attribute bitmap fields at the
// VNode level, before the renderer encodes them.
type Style struct {
	Bold          bool
	Italic        bool
	Underline     bool
	Inverse       bool
	Dim           bool
	Strikethrough bool
	Overline      bool
	Blink         bool
	FgRGB         uint32
	BgRGB         uint32
	HasFg         bool
	HasBg         bool
}

// Overflow controls how a Box or Widget handles content that exceeds
// its arranged rect.
type Overflow uint8

const (
	OverflowVisible Overflow = iota
	OverflowHidden
	OverflowScroll
)

// Justify controls main-axis distribution in Row/Column.
type Justify uint8

const (
	JustifyStart Justify = iota
	JustifyCenter
	JustifyEnd
	JustifyBetween
	JustifyAround
)

// Align controls cross-axis alignment in Row/Column.
type Align uint8

const (
	AlignStart Align = iota
	AlignCenter
	AlignEnd
	AlignStretch
)

// BorderKind selects a border glyph set.
type BorderKind uint8

const (
	BorderNone BorderKind = iota
	BorderSingle
	BorderDouble
	BorderRounded
	BorderBold
)

// Border describes which sides of a Box draw a border and with which
// glyph set.
type Border struct {
	Kind                       BorderKind
	Top, Right, Bottom, Left   bool
}

// Edges is a four-sided spacing value (padding or margin), in cells.
type Edges struct {
	Top, Right, Bottom, Left int
}

// Uniform returns an Edges with all four sides set to n.
func Uniform(n int) Edges { return Edges{Top: n, Right: n, Bottom: n, Left: n} }

// TextProps configures a KindText leaf.
type TextProps struct {
	Content string
	Style   Style
}

// SpacerProps configures a KindSpacer leaf. MinSize/MaxSize bound the
// main-axis size a flex distribution pass may assign when Flex > 0;
// both are nil (unbounded) by default.
type SpacerProps struct {
	Flex    float64
	Size    int
	MinSize *int
	MaxSize *int
}

// WidgetProps configures a KindWidget leaf.
type WidgetProps struct {
	Kind  WidgetKind
	Props map[string]interface{}
}

// BoxProps configures a KindBox container.
type BoxProps struct {
	Child    *Node
	Border   Border
	Padding  Edges
	Margin   Edges
	Width    *int
	Height   *int
	Overflow Overflow
}

// FlexProps configures a KindRow or KindColumn container.
type FlexProps struct {
	Children []*Node
	Gap      int
	Justify  Justify
	Align    Align
}

// LayersProps configures a KindLayers container (stacked children,
// later entries drawn on top).
type LayersProps struct {
	Children []*Node
}

// Node is an immutable VNode. Exactly one of the per-kind payload
// fields is meaningful, selected by Kind. ID and Key participate in
// reconciliation; both are optional.
type Node struct {
	Kind Kind
	ID   string
	Key  string

	Text    *TextProps
	Spacer  *SpacerProps
	Widget  *WidgetProps
	Box     *BoxProps
	Flex    *FlexProps
	Layers  *LayersProps
}

// Children returns this node's ordered children regardless of which
// container kind it is (leaves return nil).
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case KindBox:
		if n.Box != nil && n.Box.Child != nil {
			return []*Node{n.Box.Child}
		}
		return nil
	case KindRow, KindColumn:
		if n.Flex != nil {
			return n.Flex.Children
		}
		return nil
	case KindLayers:
		if n.Layers != nil {
			return n.Layers.Children
		}
		return nil
	default:
		return nil
	}
}

// IsLeaf reports whether n is a leaf kind (no structural children,
// though KindWidget leaves may still have widget-internal content the
// widget itself manages).
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case KindText, KindSpacer, KindDivider, KindWidget:
		return true
	default:
		return false
	}
}

// Text constructs a text leaf.
func Text(content string, style Style) *Node {
	return &Node{Kind: KindText, Text: &TextProps{Content: content, Style: style}}
}

// Spacer constructs a spacer leaf.
func Spacer(flex float64, size int) *Node {
	return &Node{Kind: KindSpacer, Spacer: &SpacerProps{Flex: flex, Size: size}}
}

// Divider constructs a divider leaf.
func Divider() *Node {
	return &Node{Kind: KindDivider}
}

// Widget constructs a built-in widget leaf.
func Widget(kind WidgetKind, props map[string]interface{}) *Node {
	return &Node{Kind: KindWidget, Widget: &WidgetProps{Kind: kind, Props: props}}
}

// Row constructs a row container.
func Row(children ...*Node) *Node {
	return &Node{Kind: KindRow, Flex: &FlexProps{Children: children}}
}

// Column constructs a column container.
func Column(children ...*Node) *Node {
	return &Node{Kind: KindColumn, Flex: &FlexProps{Children: children}}
}

// Box constructs a box container wrapping at most one child.
func Box(child *Node, props BoxProps) *Node {
	props.Child = child
	return &Node{Kind: KindBox, Box: &props}
}

// Layers constructs a layered (z-stacked) container.
func Layers(children ...*Node) *Node {
	return &Node{Kind: KindLayers, Layers: &LayersProps{Children: children}}
}

// WithID returns a copy of n carrying the given id.
func (n *Node) WithID(id string) *Node {
	cp := *n
	cp.ID = id
	return &cp
}

// WithKey returns a copy of n carrying the given reconciliation key.
func (n *Node) WithKey(key string) *Node {
	cp := *n
	cp.Key = key
	return &cp
}

// WithFlexLayout returns a copy of a Row/Column node with its gap,
// justify, and align set. Panics if n is not a flex container.
func (n *Node) WithFlexLayout(gap int, justify Justify, align Align) *Node {
	if n.Flex == nil {
		panic("vnode: WithFlexLayout called on non-flex node")
	}
	cp := *n
	flexCopy := *n.Flex
	flexCopy.Gap = gap
	flexCopy.Justify = justify
	flexCopy.Align = align
	cp.Flex = &flexCopy
	return &cp
}
