package graph

// NodeKind is the closed instruction set of the language.
// Values are grouped by hundreds per menu category and are stable on disk.
type NodeKind int

const (
	KindUnknown NodeKind = 0

	KindCreateNumber NodeKind = 100
	KindCreateString NodeKind = 101
	KindCreateBool   NodeKind = 102
	KindCreateColor  NodeKind = 103
	KindCastToNumber NodeKind = 110
	KindCastToString NodeKind = 111
	KindCastToBool   NodeKind = 112
	KindCastToColor  NodeKind = 113

	KindEventStart        NodeKind = 200
	KindEventTick         NodeKind = 201
	KindEventOnButton     NodeKind = 202
	KindCreateCustomEvent NodeKind = 203
	KindCallCustomEvent   NodeKind = 204

	KindGetVariable       NodeKind = 300
	KindGetScreenWidth    NodeKind = 301
	KindGetScreenHeight   NodeKind = 302
	KindGetMousePosition  NodeKind = 303
	KindGetRandomNumber   NodeKind = 304
	KindGetSpritePosition NodeKind = 305

	KindSetVariable   NodeKind = 400
	KindSetBackground NodeKind = 401
	KindSetFPS        NodeKind = 402

	KindBranch   NodeKind = 500
	KindLoop     NodeKind = 501
	KindDelay    NodeKind = 502
	KindFlipFlop NodeKind = 503
	KindBreak    NodeKind = 504
	KindReturn   NodeKind = 505
	KindSequence NodeKind = 506

	KindCreateSprite      NodeKind = 600
	KindSpawnSprite       NodeKind = 601
	KindDestroySprite     NodeKind = 602
	KindSetSpritePosition NodeKind = 603
	KindSetSpriteRotation NodeKind = 604
	KindSetSpriteTexture  NodeKind = 605
	KindSetSpriteSize     NodeKind = 606
	KindMoveToSprite      NodeKind = 607
	KindForceSprite       NodeKind = 608
	KindStopMovement      NodeKind = 609

	KindPropTexture   NodeKind = 700
	KindPropRectangle NodeKind = 701
	KindPropCircle    NodeKind = 702

	KindComparison NodeKind = 800
	KindGate       NodeKind = 801
	KindArithmetic NodeKind = 802
	KindClamp      NodeKind = 803
	KindLerp       NodeKind = 804
	KindSin        NodeKind = 805
	KindCos        NodeKind = 806

	KindPrint     NodeKind = 900
	KindDebugLine NodeKind = 901
	KindComment   NodeKind = 902

	KindLiteralNumber NodeKind = 1000
	KindLiteralString NodeKind = 1001
	KindLiteralBool   NodeKind = 1002
	KindLiteralColor  NodeKind = 1003

	KindMoveCamera      NodeKind = 1100
	KindZoomCamera      NodeKind = 1101
	KindGetCameraCenter NodeKind = 1102
	KindShakeCamera     NodeKind = 1103

	KindPlaySound NodeKind = 1200
)

// PinKind tags what a pin carries
type PinKind int

const (
	PinNone PinKind = iota
	PinFlow
	PinNumber
	PinString
	PinBool
	PinColor
	PinSprite
	PinFieldNumber
	PinFieldString
	PinFieldBool
	PinFieldColor
	PinFieldKey
	PinComparison
	PinGate
	PinArithmetic
	PinKeyAction
	PinVariable
	PinSpriteVariable
	PinAny
	PinUnknown
	PinEditHitbox
	PinLayer
)

// IsValue reports whether the pin carries a runtime value along links
func (k PinKind) IsValue() bool {
	switch k {
	case PinNumber, PinString, PinBool, PinColor, PinSprite, PinAny, PinUnknown:
		return true
	}
	return false
}

// IsField reports whether the pin holds literal text typed in the editor
func (k PinKind) IsField() bool {
	switch k {
	case PinFieldNumber, PinFieldString, PinFieldBool, PinFieldColor:
		return true
	}
	return false
}

// IsDropdown reports whether the pin holds a selected option index
func (k PinKind) IsDropdown() bool {
	switch k {
	case PinComparison, PinGate, PinArithmetic, PinKeyAction, PinVariable, PinSpriteVariable, PinLayer:
		return true
	}
	return false
}

// Dropdown opcodes
const (
	CompareEqual = iota
	CompareGreater
	CompareLess
)

const (
	GateAnd = iota
	GateOr
	GateNot
	GateXor
	GateNand
	GateNor
)

const (
	ArithAdd = iota
	ArithSubtract
	ArithMultiply
	ArithDivide
	ArithModulo
)

const (
	KeyActionPressed = iota
	KeyActionReleased
	KeyActionDown
	KeyActionNotDown
)

// Static dropdown option labels, indexed by option
var (
	ComparisonOptions = []string{"Equal To", "Greater Than", "Less Than"}
	GateOptions       = []string{"AND", "OR", "NOT", "XOR", "NAND", "NOR"}
	ArithmeticOptions = []string{"ADD", "SUBTRACT", "MULTIPLY", "DIVIDE", "MODULO"}
	KeyActionOptions  = []string{"Pressed", "Released", "Down", "Not down"}
	LayerOptions      = []string{"No Collision", "Events only", "Block only", "Events & Block"}
)

// Info describes the fixed pin layout of a node kind
type Info struct {
	Name        string
	Inputs      []PinKind
	Outputs     []PinKind
	InputNames  []string
	OutputNames []string
}

var kindInfo = map[NodeKind]Info{
	KindCreateNumber: {"Create number", pins(PinFlow, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Set value"), names("Next", "Get value")},
	KindCreateString: {"Create string", pins(PinFlow, PinString), pins(PinFlow, PinString), names("Prev", "Set value"), names("Next", "Get value")},
	KindCreateBool:   {"Create bool", pins(PinFlow, PinBool), pins(PinFlow, PinBool), names("Prev", "Set value"), names("Next", "Get value")},
	KindCreateColor:  {"Create color", pins(PinFlow, PinColor), pins(PinFlow, PinColor), names("Prev", "Set value"), names("Next", "Get value")},
	KindCastToNumber: {"Cast to number", pins(PinFlow, PinAny), pins(PinFlow, PinNumber), names("Prev", "Value"), names("Next", "Number")},
	KindCastToString: {"Cast to string", pins(PinFlow, PinAny), pins(PinFlow, PinString), names("Prev", "Value"), names("Next", "String")},
	KindCastToBool:   {"Cast to bool", pins(PinFlow, PinAny), pins(PinFlow, PinBool), names("Prev", "Value"), names("Next", "Bool")},
	KindCastToColor:  {"Cast to color", pins(PinFlow, PinAny), pins(PinFlow, PinColor), names("Prev", "Value"), names("Next", "Color")},

	KindEventStart:        {"Event Start", nil, pins(PinFlow), nil, names("Next")},
	KindEventTick:         {"Event Tick", nil, pins(PinFlow), nil, names("Next")},
	KindEventOnButton:     {"Event On Button", pins(PinFieldKey, PinKeyAction), pins(PinFlow), names("Key", "Action"), names("Next")},
	KindCreateCustomEvent: {"Create Custom Event", pins(PinFieldString), pins(PinFlow), names("Event name"), names("Next")},
	KindCallCustomEvent:   {"Call Custom Event", pins(PinFlow, PinFieldString), pins(PinFlow), names("Prev", "Event name"), names("Next")},

	KindGetVariable:       {"Get variable", pins(PinVariable), pins(PinUnknown), names("Variable"), names("Get value")},
	KindGetScreenWidth:    {"Get Screen Width", nil, pins(PinNumber), nil, names("Screen Width")},
	KindGetScreenHeight:   {"Get Screen Height", nil, pins(PinNumber), nil, names("Screen Height")},
	KindGetMousePosition:  {"Get Mouse Position", nil, pins(PinNumber, PinNumber), nil, names("Mouse X", "Mouse Y")},
	KindGetRandomNumber:   {"Get Random Number", pins(PinFlow, PinNumber, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Min", "Max"), names("Next", "Number")},
	KindGetSpritePosition: {"Get Sprite Position", pins(PinFlow, PinSpriteVariable), pins(PinFlow, PinNumber, PinNumber), names("Prev", "Sprite"), names("Next", "Pos X", "Pos Y")},

	KindSetVariable:   {"Set variable", pins(PinFlow, PinVariable, PinUnknown), pins(PinFlow, PinUnknown), names("Prev", "Variable", "Set value"), names("Next", "Value")},
	KindSetBackground: {"Set Background", pins(PinFlow, PinColor), pins(PinFlow), names("Prev", "Color"), names("Next")},
	KindSetFPS:        {"Set FPS", pins(PinFlow, PinNumber), pins(PinFlow), names("Prev", "FPS"), names("Next")},

	KindBranch:   {"Branch", pins(PinFlow, PinBool), pins(PinFlow, PinFlow), names("Prev", "Condition"), names("True", "False")},
	KindLoop:     {"Loop", pins(PinFlow, PinBool), pins(PinFlow, PinFlow), names("Prev", "Condition"), names("Next", "Loop body")},
	KindDelay:    {"Delay", pins(PinFlow, PinNumber), pins(PinFlow), names("Prev", "Seconds"), names("Next")},
	KindFlipFlop: {"Flip Flop", pins(PinFlow), pins(PinFlow, PinFlow), names("Prev"), names("Flip", "Flop")},
	KindBreak:    {"Break", pins(PinFlow), nil, names("Prev"), nil},
	KindReturn:   {"Return", pins(PinFlow, PinUnknown), nil, names("Prev", "Return value"), nil},
	KindSequence: {"Sequence", pins(PinFlow), pins(PinFlow, PinFlow, PinFlow), names("Prev"), names("Then 0", "Then 1", "Then 2")},

	KindCreateSprite:      {"Create sprite", pins(PinFlow, PinString, PinNumber, PinNumber, PinLayer, PinEditHitbox), pins(PinFlow, PinSprite), names("Prev", "Texture file name", "Width", "Height", "Layer", "Hitbox"), names("Next", "Sprite")},
	KindSpawnSprite:       {"Spawn sprite", pins(PinFlow, PinSpriteVariable, PinNumber, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Sprite", "Pos X", "Pos Y", "Rotation"), names("Next")},
	KindDestroySprite:     {"Destroy sprite", pins(PinFlow, PinSpriteVariable), pins(PinFlow), names("Prev", "Sprite"), names("Next")},
	KindSetSpritePosition: {"Set Sprite Position", pins(PinFlow, PinSpriteVariable, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Sprite", "X", "Y"), names("Next")},
	KindSetSpriteRotation: {"Set Sprite Rotation", pins(PinFlow, PinSpriteVariable, PinNumber), pins(PinFlow), names("Prev", "Sprite", "Rotation"), names("Next")},
	KindSetSpriteTexture:  {"Set Sprite Texture", pins(PinFlow, PinSpriteVariable, PinString), pins(PinFlow), names("Prev", "Sprite", "Texture name"), names("Next")},
	KindSetSpriteSize:     {"Set Sprite Size", pins(PinFlow, PinSpriteVariable, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Sprite", "Width", "Height"), names("Next")},
	KindMoveToSprite:      {"Move To", pins(PinFlow, PinSpriteVariable, PinNumber, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Sprite", "X", "Y", "Pixels / second"), names("Next")},
	KindForceSprite:       {"Force", pins(PinFlow, PinSpriteVariable, PinNumber, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Sprite", "Pixels / second", "Angle", "Time"), names("Next")},
	KindStopMovement:      {"Stop Movement", pins(PinFlow, PinSpriteVariable), pins(PinFlow), names("Prev", "Sprite"), names("Next")},

	KindPropTexture:   {"Draw Prop Texture", pins(PinFlow, PinString, PinNumber, PinNumber, PinNumber, PinNumber, PinLayer), pins(PinFlow, PinNone), names("Prev", "Texture file name", "Pos X", "Pos Y", "Width", "Height", "Layer"), names("Next", "")},
	KindPropRectangle: {"Draw Prop Rectangle", pins(PinFlow, PinNumber, PinNumber, PinNumber, PinNumber, PinColor, PinLayer), pins(PinFlow, PinNone), names("Prev", "Pos X", "Pos Y", "Width", "Height", "Color", "Layer"), names("Next", "")},
	KindPropCircle:    {"Draw Prop Circle", pins(PinFlow, PinNumber, PinNumber, PinNumber, PinColor, PinLayer), pins(PinFlow, PinNone), names("Prev", "Pos X", "Pos Y", "Radius", "Color", "Layer"), names("Next", "")},

	KindComparison: {"Comparison", pins(PinFlow, PinComparison, PinNumber, PinNumber), pins(PinFlow, PinBool), names("Prev", "Operator", "Value A", "Value B"), names("Next", "Result")},
	KindGate:       {"Gate", pins(PinFlow, PinGate, PinBool, PinBool), pins(PinFlow, PinBool), names("Prev", "Gate", "Condition A", "Condition B"), names("Next", "Result")},
	KindArithmetic: {"Arithmetic", pins(PinFlow, PinArithmetic, PinNumber, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Arithmetic", "Number A", "Number B"), names("Next", "Result")},
	KindClamp:      {"Clamp", pins(PinFlow, PinNumber, PinNumber, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Number", "Min", "Max"), names("Next", "Result")},
	KindLerp:       {"Lerp", pins(PinFlow, PinNumber, PinNumber, PinNumber), pins(PinFlow, PinNumber), names("Prev", "A", "B", "Alpha"), names("Next", "Result")},
	KindSin:        {"Sin", pins(PinFlow, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Radians"), names("Next", "Result")},
	KindCos:        {"Cos", pins(PinFlow, PinNumber), pins(PinFlow, PinNumber), names("Prev", "Radians"), names("Next", "Result")},

	KindPrint:     {"Print To Log", pins(PinFlow, PinAny), pins(PinFlow), names("Prev", "Print value"), names("Next")},
	KindDebugLine: {"Draw Debug Line", pins(PinFlow, PinNumber, PinNumber, PinNumber, PinNumber, PinColor), pins(PinFlow), names("Prev", "Start X", "Start Y", "End X", "End Y", "Color"), names("Next")},
	KindComment:   {"Comment", pins(PinFlow, PinFieldString), pins(PinFlow), names("Prev", "Text"), names("Next")},

	KindLiteralNumber: {"Literal number", pins(PinFieldNumber), pins(PinNumber), names(""), names("number")},
	KindLiteralString: {"Literal string", pins(PinFieldString), pins(PinString), names(""), names("string")},
	KindLiteralBool:   {"Literal bool", pins(PinFieldBool), pins(PinBool), names(""), names("bool")},
	KindLiteralColor:  {"Literal color", pins(PinFieldColor), pins(PinColor), names(""), names("color")},

	KindMoveCamera:      {"Move Camera", pins(PinFlow, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Camera Delta X", "Camera Delta Y"), names("Next")},
	KindZoomCamera:      {"Zoom Camera", pins(PinFlow, PinNumber), pins(PinFlow), names("Prev", "Zoom Delta"), names("Next")},
	KindGetCameraCenter: {"Get Camera Center", nil, pins(PinNumber, PinNumber), nil, names("Center X", "Center Y")},
	KindShakeCamera:     {"Shake Camera", pins(PinFlow, PinNumber, PinNumber), pins(PinFlow), names("Prev", "Intensity", "Time"), names("Next")},

	KindPlaySound: {"Play Sound", pins(PinFlow, PinString), pins(PinFlow), names("Prev", "Sound file name"), names("Next")},
}

func pins(k ...PinKind) []PinKind { return k }
func names(n ...string) []string  { return n }

// InfoOf returns the layout of kind; ok is false for unknown kinds
func InfoOf(kind NodeKind) (Info, bool) {
	info, ok := kindInfo[kind]
	return info, ok
}

// String returns the menu name of the kind
func (k NodeKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.Name
	}
	return "unknown"
}

// KindByName resolves a menu name back to its kind
func KindByName(name string) NodeKind {
	for k, info := range kindInfo {
		if info.Name == name {
			return k
		}
	}
	return KindUnknown
}

// IsVariable reports whether nodes of this kind declare a named variable
func (k NodeKind) IsVariable() bool {
	switch k {
	case KindCreateNumber, KindCreateString, KindCreateBool, KindCreateColor, KindCreateSprite:
		return true
	}
	return false
}

// IsLiteral reports whether the kind is a literal constructor
func (k NodeKind) IsLiteral() bool {
	return k >= KindLiteralNumber && k <= KindLiteralColor
}

// VariableValueKind returns the value pin kind a variable constructor exposes
func (k NodeKind) VariableValueKind() PinKind {
	switch k {
	case KindCreateNumber:
		return PinNumber
	case KindCreateString:
		return PinString
	case KindCreateBool:
		return PinBool
	case KindCreateColor:
		return PinColor
	case KindCreateSprite:
		return PinSprite
	}
	return PinUnknown
}

// defaultName is the base used for auto-named variable constructors
func (k NodeKind) defaultName() string {
	switch k {
	case KindCreateNumber:
		return "Number"
	case KindCreateString:
		return "String"
	case KindCreateBool:
		return "Boolean"
	case KindCreateColor:
		return "Color"
	case KindCreateSprite:
		return "Sprite"
	}
	return ""
}
