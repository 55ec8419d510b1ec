package watchface

// Kind tags the shape carried by a Primitive.
type Kind string

const (
	KindCircle Kind = "circle"
	KindLine   Kind = "line"
	KindText   Kind = "text"
	KindPath   Kind = "path"
)

// Layer names the part of the face a primitive belongs to.
type Layer string

const (
	LayerFace       Layer = "face"
	LayerBezel      Layer = "bezel"
	LayerTick       Layer = "tick"
	LayerNumeral    Layer = "numeral"
	LayerHourHand   Layer = "hour_hand"
	LayerMinuteHand Layer = "minute_hand"
	LayerPin        Layer = "pin"
	LayerSecondHand Layer = "second_hand"
	LayerStrapMount Layer = "strap_mount"
)

// HairlineWidth asks the surface for the thinnest line it can draw.
const HairlineWidth = 0.0

// Primitive is one draw instruction. Exactly one of Circle, Line, Text or
// Path is set, matching Kind.
type Primitive struct {
	Kind   Kind    `json:"kind"`
	Layer  Layer   `json:"layer"`
	Color  Color   `json:"color"`
	Circle *Circle `json:"circle,omitempty"`
	Line   *Line   `json:"line,omitempty"`
	Text   *Text   `json:"text,omitempty"`
	Path   *Path   `json:"path,omitempty"`
}

// Circle is filled when Fill is set, otherwise stroked with StrokeWidth
// centred on Radius.
type Circle struct {
	Center      Point   `json:"center"`
	Radius      float64 `json:"radius"`
	Fill        bool    `json:"fill"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Glow        *Glow   `json:"glow,omitempty"`
}

// Glow is a soft shadow spread around a shape.
type Glow struct {
	Radius float64 `json:"radius"`
	Color  Color   `json:"color"`
}

// Line is a straight stroke with butt caps.
type Line struct {
	Start Point   `json:"start"`
	End   Point   `json:"end"`
	Width float64 `json:"width"`
}

// Text is a label centred on Anchor. TopLeft and Size come from the
// host's text measurement.
type Text struct {
	Text     string  `json:"text"`
	Anchor   Point   `json:"anchor"`
	TopLeft  Point   `json:"top_left"`
	Size     Size    `json:"size"`
	FontSize float64 `json:"font_size"`
}

// PathVerb is one path construction step.
type PathVerb string

const (
	VerbMove  PathVerb = "move"
	VerbLine  PathVerb = "line"
	VerbQuad  PathVerb = "quad"
	VerbClose PathVerb = "close"
)

// PathOp is a verb with its points: one for move/line, control + end for
// quad, none for close.
type PathOp struct {
	Verb   PathVerb `json:"verb"`
	Points []Point  `json:"points,omitempty"`
}

// Path is a closed outline, filled when Fill is set.
type Path struct {
	Ops  []PathOp `json:"ops"`
	Fill bool     `json:"fill"`
}

func circlePrimitive(layer Layer, color Color, c Circle) Primitive {
	return Primitive{Kind: KindCircle, Layer: layer, Color: color, Circle: &c}
}

func linePrimitive(layer Layer, color Color, l Line) Primitive {
	return Primitive{Kind: KindLine, Layer: layer, Color: color, Line: &l}
}

func textPrimitive(layer Layer, color Color, t Text) Primitive {
	return Primitive{Kind: KindText, Layer: layer, Color: color, Text: &t}
}

func pathPrimitive(layer Layer, color Color, p Path) Primitive {
	return Primitive{Kind: KindPath, Layer: layer, Color: color, Path: &p}
}
