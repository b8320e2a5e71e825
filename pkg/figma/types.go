package figma

// FileResponse represents the complete response from the Figma file API endpoint.
// It contains the file metadata, the document tree, and the component, component set
// and style registries referenced by nodes inside the tree.
type FileResponse struct {
	Name          string                  `json:"name"`
	LastModified  string                  `json:"lastModified"`
	ThumbnailURL  string                  `json:"thumbnailUrl"`
	Version       string                  `json:"version"`
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
	SchemaVersion int                     `json:"schemaVersion"`
}

// NodesResponse represents the response from the Figma nodes API endpoint when fetching specific nodes.
// Nodes the API could not resolve are reported as null and decode to a nil *NodeData.
type NodesResponse struct {
	Name         string               `json:"name"`
	LastModified string               `json:"lastModified"`
	Version      string               `json:"version"`
	Nodes        map[string]*NodeData `json:"nodes"`

	// Order lists the keys of Nodes in the order the API returned them.
	// It is filled by the Client; when empty, callers fall back to sorted keys.
	Order []string `json:"-"`
}

// NodeData wraps a node with its document structure and the component/style registries
// that apply to it.
type NodeData struct {
	Document      Node                    `json:"document"`
	Components    map[string]Component    `json:"components,omitempty"`
	ComponentSets map[string]ComponentSet `json:"componentSets,omitempty"`
	Styles        map[string]Style        `json:"styles,omitempty"`
}

// Component represents a Figma component definition with its metadata.
type Component struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	ComponentSetID string `json:"componentSetId,omitempty"`
	Remote         bool   `json:"remote,omitempty"`
}

// ComponentSet groups variants of a component.
type ComponentSet struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Remote      bool   `json:"remote,omitempty"`
}

// Style represents a published Figma style with its basic properties.
// Styles can be colors (FILL), text styles (TEXT), effects (EFFECT), or layout grids (GRID).
type Style struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StyleType   string `json:"styleType"`
}

// ImagesResponse is returned by the render endpoint: node id -> temporary image URL.
type ImagesResponse struct {
	Err    string            `json:"err"`
	Images map[string]string `json:"images"`
}

// FileImagesResponse maps imageRef values of IMAGE fills to download URLs.
type FileImagesResponse struct {
	Error  bool `json:"error"`
	Status int  `json:"status"`
	Meta   struct {
		Images map[string]string `json:"images"`
	} `json:"meta"`
}

// Node represents a single element in the Figma document tree hierarchy.
// Only the properties read by the extractors are declared; anything else in the
// payload is ignored on decode.
type Node struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Visible  *bool  `json:"visible,omitempty"`
	Children []Node `json:"children,omitempty"`

	// Geometry.
	AbsoluteBoundingBox *Rectangle      `json:"absoluteBoundingBox,omitempty"`
	PreserveRatio       bool            `json:"preserveRatio,omitempty"`
	ExportSettings      []ExportSetting `json:"exportSettings,omitempty"`

	// Auto layout.
	LayoutMode             string   `json:"layoutMode,omitempty"`
	LayoutWrap             string   `json:"layoutWrap,omitempty"`
	LayoutAlign            string   `json:"layoutAlign,omitempty"`
	LayoutGrow             float64  `json:"layoutGrow,omitempty"`
	LayoutPositioning      string   `json:"layoutPositioning,omitempty"`
	LayoutSizingHorizontal string   `json:"layoutSizingHorizontal,omitempty"`
	LayoutSizingVertical   string   `json:"layoutSizingVertical,omitempty"`
	PrimaryAxisAlignItems  string   `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems  string   `json:"counterAxisAlignItems,omitempty"`
	PaddingLeft            float64  `json:"paddingLeft,omitempty"`
	PaddingRight           float64  `json:"paddingRight,omitempty"`
	PaddingTop             float64  `json:"paddingTop,omitempty"`
	PaddingBottom          float64  `json:"paddingBottom,omitempty"`
	ItemSpacing            float64  `json:"itemSpacing,omitempty"`
	CounterAxisSpacing     *float64 `json:"counterAxisSpacing,omitempty"`
	OverflowDirection      string   `json:"overflowDirection,omitempty"`

	// Visuals.
	Fills                   []Paint           `json:"fills,omitempty"`
	Strokes                 []Paint           `json:"strokes,omitempty"`
	StrokeWeight            *float64          `json:"strokeWeight,omitempty"`
	IndividualStrokeWeights *StrokeWeights    `json:"individualStrokeWeights,omitempty"`
	StrokeDashes            []float64         `json:"strokeDashes,omitempty"`
	Effects                 []Effect          `json:"effects,omitempty"`
	Opacity                 *float64          `json:"opacity,omitempty"`
	CornerRadius            float64           `json:"cornerRadius,omitempty"`
	RectangleCornerRadii    []float64         `json:"rectangleCornerRadii,omitempty"`
	Styles                  map[string]string `json:"styles,omitempty"`

	// Text.
	Characters string     `json:"characters,omitempty"`
	Style      *TypeStyle `json:"style,omitempty"`

	// Components.
	ComponentID                 string                       `json:"componentId,omitempty"`
	ComponentProperties         map[string]ComponentProperty `json:"componentProperties,omitempty"`
	ComponentPropertyReferences map[string]string            `json:"componentPropertyReferences,omitempty"`
}

// IsVisible reports whether the node is visible. An absent visible flag means visible.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// ComponentProperty is a property value set on an INSTANCE node.
type ComponentProperty struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Color represents an RGBA color with float values ranging from 0 to 1.
// The R, G, B, and A (alpha/opacity) values must be converted to 0-255 range for standard use.
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Paint represents a fill or stroke applied to a Figma node.
// It includes the paint type (SOLID, GRADIENT_LINEAR, IMAGE, etc.), visibility, opacity, and color information.
type Paint struct {
	Type                    string      `json:"type"`
	Visible                 *bool       `json:"visible,omitempty"`
	Opacity                 *float64    `json:"opacity,omitempty"`
	BlendMode               string      `json:"blendMode,omitempty"`
	Color                   *Color      `json:"color,omitempty"`
	GradientHandlePositions []Vector    `json:"gradientHandlePositions,omitempty"`
	GradientStops           []ColorStop `json:"gradientStops,omitempty"`
	ScaleMode               string      `json:"scaleMode,omitempty"`
	ImageRef                string      `json:"imageRef,omitempty"`
}

// IsVisible reports whether the paint is rendered. An absent flag means visible.
func (p *Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// ColorStop is one stop of a gradient paint.
type ColorStop struct {
	Position float64 `json:"position"`
	Color    Color   `json:"color"`
}

// Effect represents a visual effect applied to a Figma node such as drop shadows, inner shadows, or blur effects.
// It includes positioning (offset), blur radius, spread, color, and blend mode settings.
type Effect struct {
	Type      string  `json:"type"`
	Visible   *bool   `json:"visible,omitempty"`
	Radius    float64 `json:"radius,omitempty"`
	Color     *Color  `json:"color,omitempty"`
	Offset    *Vector `json:"offset,omitempty"`
	Spread    float64 `json:"spread,omitempty"`
	BlendMode string  `json:"blendMode,omitempty"`
}

// IsVisible reports whether the effect is applied. An absent flag means visible.
func (e *Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// StrokeWeights holds per-side stroke weights.
type StrokeWeights struct {
	Top    float64 `json:"top"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
}

// Vector represents a 2D coordinate or offset with X and Y values.
// Used for positioning effects like shadows and other spatial properties.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle represents comprehensive text styling properties from Figma.
// It includes font family, weight, size, line height, letter spacing, and text alignment settings.
type TypeStyle struct {
	FontFamily                string  `json:"fontFamily"`
	FontPostScriptName        string  `json:"fontPostScriptName,omitempty"`
	FontWeight                float64 `json:"fontWeight"`
	FontSize                  float64 `json:"fontSize"`
	Italic                    bool    `json:"italic,omitempty"`
	LineHeightPx              float64 `json:"lineHeightPx"`
	LineHeightPercentFontSize float64 `json:"lineHeightPercentFontSize,omitempty"`
	LineHeightUnit            string  `json:"lineHeightUnit,omitempty"`
	LetterSpacing             float64 `json:"letterSpacing"`
	TextCase                  string  `json:"textCase,omitempty"`
	TextAlignHorizontal       string  `json:"textAlignHorizontal"`
	TextAlignVertical         string  `json:"textAlignVertical"`
}

// Rectangle represents a bounding box with position (X, Y) and dimensions (Width, Height).
// Used to define the absolute position and size of nodes in the Figma canvas.
type Rectangle struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ExportSetting is an export preset a designer attached to a node.
type ExportSetting struct {
	Suffix     string           `json:"suffix"`
	Format     string           `json:"format"`
	Constraint ExportConstraint `json:"constraint"`
}

// ExportConstraint sizes an export: SCALE, WIDTH or HEIGHT with its value.
type ExportConstraint struct {
	Type  string  `json:"type"`
	Value float64 `json:"value"`
}
