package model

// NativeKind classifies a declared type string for emission purposes.
type NativeKind int

const (
	NativeUnknown NativeKind = iota
	NativeBool
	NativeChar
	NativeInt
	NativeFloat
	NativeDouble
	NativeString
	NativeVoid
	NativeEnum
	NativeUserType
	NativeTemplate
)

func (k NativeKind) String() string {
	switch k {
	case NativeBool:
		return "bool"
	case NativeChar:
		return "char"
	case NativeInt:
		return "int"
	case NativeFloat:
		return "float"
	case NativeDouble:
		return "double"
	case NativeString:
		return "string"
	case NativeVoid:
		return "void"
	case NativeEnum:
		return "enum"
	case NativeUserType:
		return "type"
	case NativeTemplate:
		return "template"
	default:
		return "unknown"
	}
}

// DecoratorKind classifies the trailing decorator of a declared type.
type DecoratorKind int

const (
	DecoratorRaw DecoratorKind = iota
	DecoratorPointer
	DecoratorReference
)

func (k DecoratorKind) String() string {
	switch k {
	case DecoratorPointer:
		return "pointer"
	case DecoratorReference:
		return "reference"
	default:
		return "raw"
	}
}

// InternalError reports an invariant violation inside the pipeline.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return "internal error: " + e.Message
}
