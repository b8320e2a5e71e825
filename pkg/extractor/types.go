package extractor

// SimplifiedDesign is the size-reduced representation of a Figma response.
// It is built once per request and consumed by serialization.
type SimplifiedDesign struct {
	Name          string                             `json:"name" yaml:"name"`
	Nodes         []*SimplifiedNode                  `json:"nodes" yaml:"nodes"`
	Components    map[string]*SimplifiedComponent    `json:"components" yaml:"components"`
	ComponentSets map[string]*SimplifiedComponentSet `json:"componentSets" yaml:"componentSets"`
	GlobalVars    GlobalVars                         `json:"globalVars" yaml:"globalVars"`
}

// GlobalVars holds values shared between nodes. Nodes reference entries of Styles by id
// instead of repeating them inline.
type GlobalVars struct {
	Styles map[string]any `json:"styles" yaml:"styles"`
}

// SimplifiedNode is the uniform per-node record. Optional fields are only set when the
// source node carried data for them; Children is either nil or non-empty.
type SimplifiedNode struct {
	ID                          string              `json:"id" yaml:"id"`
	Name                        string              `json:"name" yaml:"name"`
	Type                        string              `json:"type" yaml:"type"`
	Text                        string              `json:"text,omitempty" yaml:"text,omitempty"`
	TextStyle                   string              `json:"textStyle,omitempty" yaml:"textStyle,omitempty"`
	Fills                       string              `json:"fills,omitempty" yaml:"fills,omitempty"`
	Strokes                     string              `json:"strokes,omitempty" yaml:"strokes,omitempty"`
	StrokeWeight                string              `json:"strokeWeight,omitempty" yaml:"strokeWeight,omitempty"`
	Effects                     string              `json:"effects,omitempty" yaml:"effects,omitempty"`
	Opacity                     *float64            `json:"opacity,omitempty" yaml:"opacity,omitempty"`
	BorderRadius                string              `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
	Layout                      string              `json:"layout,omitempty" yaml:"layout,omitempty"`
	ComponentID                 string              `json:"componentId,omitempty" yaml:"componentId,omitempty"`
	ComponentProperties         []ComponentProperty `json:"componentProperties,omitempty" yaml:"componentProperties,omitempty"`
	ComponentPropertyReferences map[string]string   `json:"componentPropertyReferences,omitempty" yaml:"componentPropertyReferences,omitempty"`
	Icon                        *Icon               `json:"icon,omitempty" yaml:"icon,omitempty"`
	Children                    []*SimplifiedNode   `json:"children,omitempty" yaml:"children,omitempty"`
}

// Icon marks a container whose vector-only children were folded away.
type Icon struct {
	Format  string `json:"format" yaml:"format"`
	Vectors int    `json:"vectors" yaml:"vectors"`
}

// ComponentProperty is one property of an INSTANCE, with its value rendered as text.
type ComponentProperty struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

// SimplifiedComponent is the metadata kept for a component definition.
type SimplifiedComponent struct {
	ID             string `json:"id" yaml:"id"`
	Key            string `json:"key" yaml:"key"`
	Name           string `json:"name" yaml:"name"`
	ComponentSetID string `json:"componentSetId,omitempty" yaml:"componentSetId,omitempty"`
}

// SimplifiedComponentSet is the metadata kept for a component set.
type SimplifiedComponentSet struct {
	ID          string `json:"id" yaml:"id"`
	Key         string `json:"key" yaml:"key"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Layout is the CSS-flavoured description of a node's layout, registered in globalVars.
type Layout struct {
	Mode                     string      `json:"mode"`
	JustifyContent           string      `json:"justifyContent,omitempty"`
	AlignItems               string      `json:"alignItems,omitempty"`
	AlignSelf                string      `json:"alignSelf,omitempty"`
	Wrap                     bool        `json:"wrap,omitempty"`
	Gap                      string      `json:"gap,omitempty"`
	RowGap                   string      `json:"rowGap,omitempty"`
	LocationRelativeToParent *Location   `json:"locationRelativeToParent,omitempty"`
	Dimensions               *Dimensions `json:"dimensions,omitempty"`
	Padding                  string      `json:"padding,omitempty"`
	Sizing                   *Sizing     `json:"sizing,omitempty"`
	OverflowScroll           []string    `json:"overflowScroll,omitempty"`
	Position                 string      `json:"position,omitempty"`
}

// Location is an offset from the parent's top-left corner.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimensions are the fixed sizes of a node.
type Dimensions struct {
	Width       *float64 `json:"width,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	AspectRatio *float64 `json:"aspectRatio,omitempty"`
}

// Sizing describes how a node sizes along each axis: fixed, fill or hug.
type Sizing struct {
	Horizontal string `json:"horizontal,omitempty"`
	Vertical   string `json:"vertical,omitempty"`
}

// TextStyle is the typography of a TEXT node.
type TextStyle struct {
	FontFamily          string  `json:"fontFamily,omitempty"`
	FontWeight          float64 `json:"fontWeight,omitempty"`
	FontSize            float64 `json:"fontSize,omitempty"`
	LineHeight          string  `json:"lineHeight,omitempty"`
	LetterSpacing       string  `json:"letterSpacing,omitempty"`
	TextCase            string  `json:"textCase,omitempty"`
	TextAlignHorizontal string  `json:"textAlignHorizontal,omitempty"`
	TextAlignVertical   string  `json:"textAlignVertical,omitempty"`
}

// Strokes holds the stroke paints of a node.
type Strokes struct {
	Colors       []any     `json:"colors"`
	StrokeDashes []float64 `json:"strokeDashes,omitempty"`
}

// Effects holds the CSS renditions of a node's visible effects.
type Effects struct {
	BoxShadow      string `json:"boxShadow,omitempty"`
	TextShadow     string `json:"textShadow,omitempty"`
	Filter         string `json:"filter,omitempty"`
	BackdropFilter string `json:"backdropFilter,omitempty"`
}

// ImageFill is the simplified form of an IMAGE paint.
type ImageFill struct {
	Type      string `json:"type"`
	ImageRef  string `json:"imageRef"`
	ScaleMode string `json:"scaleMode,omitempty"`
}

// GradientFill is the simplified form of a gradient paint.
type GradientFill struct {
	Type                    string         `json:"type"`
	GradientHandlePositions []Location     `json:"gradientHandlePositions,omitempty"`
	GradientStops           []GradientStop `json:"gradientStops,omitempty"`
}

// GradientStop is one color stop of a GradientFill.
type GradientStop struct {
	Position float64 `json:"position"`
	Color    string  `json:"color"`
}
