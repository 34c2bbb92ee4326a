package encoder

import (
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// Container heads recognised for serialisation emission. Any other
// parameterised type still gets a recursive descriptor but no
// serialisation code.
const (
	headVector       = "vector"
	headList         = "list"
	headMap          = "map"
	headUnorderedMap = "unordered_map"
	headSharedPtr    = "shared_ptr"
	headUniquePtr    = "unique_ptr"
)

// ClassifyDecorator inspects the trailing non-whitespace character of a
// declared type string.
func ClassifyDecorator(declared string) model.DecoratorKind {
	trimmed := strings.TrimRight(declared, " \t")
	switch {
	case strings.HasSuffix(trimmed, "*"):
		return model.DecoratorPointer
	case strings.HasSuffix(trimmed, "&"):
		return model.DecoratorReference
	default:
		return model.DecoratorRaw
	}
}

// ClassifyNative resolves a declared type string against the primitive
// names, the template shape and the symbol table.
func ClassifyNative(symbols model.SymbolTable, declared string) model.NativeKind {
	bare := bareType(declared)
	if bare == "" {
		return model.NativeUnknown
	}

	switch bare {
	case "bool":
		return model.NativeBool
	case "char":
		return model.NativeChar
	case "int":
		return model.NativeInt
	case "float":
		return model.NativeFloat
	case "double":
		return model.NativeDouble
	case "string":
		return model.NativeString
	case "void":
		return model.NativeVoid
	}
	if strings.Contains(bare, "<") {
		return model.NativeTemplate
	}

	if kind, ok := symbols.Lookup(bare); ok {
		switch kind {
		case model.SymbolClass:
			return model.NativeUserType
		case model.SymbolEnum:
			return model.NativeEnum
		}
	}
	return model.NativeUnknown
}

// bareType strips the standard namespace prefix and any trailing
// decorator or whitespace, leaving the name used for classification.
func bareType(declared string) string {
	bare := strings.ReplaceAll(declared, "std::", "")
	for len(bare) > 0 {
		last := bare[len(bare)-1]
		if last == '*' || last == '&' || last == ' ' || last == '\t' {
			bare = bare[:len(bare)-1]
			continue
		}
		break
	}
	return bare
}

// templateHead returns the identifier before the first angle bracket,
// standard namespace stripped, or "" for non-template strings.
func templateHead(declared string) string {
	bare := bareType(declared)
	index := strings.Index(bare, "<")
	if index < 0 {
		return ""
	}
	return bare[:index]
}

// ExtractTypenames returns the trimmed top-level type arguments of a
// template-shaped declared type. Commas nested in deeper angle brackets
// do not split.
func ExtractTypenames(declared string) []string {
	trimmed := strings.TrimRight(declared, " \t*&")
	start := strings.Index(trimmed, "<")
	if start < 0 || !strings.HasSuffix(trimmed, ">") {
		return nil
	}
	content := trimmed[start+1 : len(trimmed)-1]

	var typenames []string
	depth := 0
	argStart := 0
	for i := 0; i < len(content); i++ {
		switch content[i] {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				typenames = append(typenames, strings.TrimSpace(content[argStart:i]))
				argStart = i + 1
			}
		}
	}
	if last := strings.TrimSpace(content[argStart:]); last != "" {
		typenames = append(typenames, last)
	}
	return typenames
}

// isSmartPointer reports whether the declared type is a shared or
// unique pointer template.
func isSmartPointer(declared string) bool {
	head := templateHead(declared)
	return head == headSharedPtr || head == headUniquePtr
}

// isSequence reports whether the declared type is a vector or list.
func isSequence(declared string) bool {
	head := templateHead(declared)
	return head == headVector || head == headList
}

// isMapping reports whether the declared type is a map or unordered map.
func isMapping(declared string) bool {
	head := templateHead(declared)
	return head == headMap || head == headUnorderedMap
}

// isValidListType reports whether a sequence element of the given kind
// is serialisable in place. Template elements are handled separately by
// the smart-pointer path.
func isValidListType(kind model.NativeKind) bool {
	return kind != model.NativeTemplate &&
		kind != model.NativeVoid &&
		kind != model.NativeUnknown
}

// isValidMapKeyType reports whether a map key of the given kind is
// serialisable. Keys never accept template types.
func isValidMapKeyType(kind model.NativeKind) bool {
	return kind != model.NativeTemplate &&
		kind != model.NativeVoid &&
		kind != model.NativeUnknown
}

// isValidMapValueType reports whether a map value of the given kind is
// serialisable in place.
func isValidMapValueType(kind model.NativeKind) bool {
	return kind != model.NativeTemplate &&
		kind != model.NativeVoid &&
		kind != model.NativeUnknown
}

// isSerialisablePointee reports whether a smart pointer with the given
// argument list can be serialised: a single user-type argument.
func isSerialisablePointee(symbols model.SymbolTable, typenames []string) bool {
	return len(typenames) == 1 &&
		ClassifyNative(symbols, typenames[0]) == model.NativeUserType &&
		ClassifyDecorator(typenames[0]) == model.DecoratorRaw
}
