package encoder

import (
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// encodeToString emits the body converting a value to its byte-string
// form: the type name tag first, then every serialisable property in
// parent-chain order.
func (f *fileEncoder) encodeToString(class *model.TypeClass, chain []*model.TypeClass) {
	f.source.PushLine("std::string reflect::Type<", class.Name, ">::to_string(const ", class.Name, "& type)")
	f.source.PushLine("{")
	f.source.PushLine("    reflect::encoding::ByteBuffer buffer;")
	f.source.PushLine("    reflect::encoding::OutputByteStream stream(buffer);")
	f.source.PushLine("    stream << name();")
	f.source.PushLine("    ")
	f.encodeSerializationBody(class, chain, true)
	f.source.PushLine("    ")
	f.source.PushLine("    return std::string(reinterpret_cast<const char*>(&stream.getBuffer()[0]), stream.getBuffer().size());")
	f.source.PushLine("}")
	f.source.PushLine("")
}

// encodeFromString emits the structural mirror reading a byte-string
// back: the type name tag is verified before any field is touched.
func (f *fileEncoder) encodeFromString(class *model.TypeClass, chain []*model.TypeClass) {
	f.source.PushLine("void reflect::Type<", class.Name, ">::from_string(const std::string& str, ", class.Name, "& type)")
	f.source.PushLine("{")
	f.source.PushLine("    reflect::encoding::ByteBuffer buffer;")
	f.source.PushLine("    std::transform(")
	f.source.PushLine("        std::begin(str),")
	f.source.PushLine("        std::end(str),")
	f.source.PushLine("        std::back_inserter(buffer),")
	f.source.PushLine("        [](const char c)")
	f.source.PushLine("        {")
	f.source.PushLine("            return std::byte(c);")
	f.source.PushLine("        }")
	f.source.PushLine("    );")
	f.source.PushLine("    ")
	f.source.PushLine("    reflect::encoding::InputByteStream stream(buffer);")
	f.source.PushLine("    std::string _name;")
	f.source.PushLine("    stream >> _name;")
	f.source.PushLine("    if (_name != name()) return;")
	f.source.PushLine("    ")
	f.encodeSerializationBody(class, chain, false)
	f.source.PushLine("}")
	f.source.PushLine("")
}

func (f *fileEncoder) encodeSerializationBody(class *model.TypeClass, chain []*model.TypeClass, serialize bool) {
	for _, ancestor := range chain {
		f.source.PushLine("    // Parent class ", ancestor.Name, " properties")
		for _, property := range ancestor.Properties {
			if code := f.valueSerialization("    ", serialize, "type."+property.Name, property.Type); code != "" {
				f.source.PushLine(code)
			}
		}
	}
	if len(chain) > 0 {
		f.source.PushLine("    // Properties")
	}
	for _, property := range class.Properties {
		if code := f.valueSerialization("    ", serialize, "type."+property.Name, property.Type); code != "" {
			f.source.PushLine(code)
		}
	}
}

// isSerialisable reports whether any binary code is emitted for a value
// of the declared type. Pointer and reference decorated values and
// unknown or void types are skipped silently; container types require
// serialisable arguments.
func (f *fileEncoder) isSerialisable(declared string) bool {
	if ClassifyDecorator(declared) != model.DecoratorRaw {
		return false
	}
	switch ClassifyNative(f.symbols, declared) {
	case model.NativeBool, model.NativeChar, model.NativeInt, model.NativeFloat,
		model.NativeDouble, model.NativeString, model.NativeEnum, model.NativeUserType:
		return true
	case model.NativeTemplate:
		typenames := ExtractTypenames(declared)
		if len(typenames) == 0 {
			return false
		}
		switch {
		case isSequence(declared):
			return f.isSerialisableElement(typenames[0])
		case isMapping(declared):
			if len(typenames) < 2 {
				return false
			}
			return isValidMapKeyType(ClassifyNative(f.symbols, typenames[0])) &&
				ClassifyDecorator(typenames[0]) == model.DecoratorRaw &&
				f.isSerialisableElement(typenames[1])
		case isSmartPointer(declared):
			return isSerialisablePointee(f.symbols, typenames)
		default:
			return false
		}
	default:
		return false
	}
}

// isSerialisableElement applies the element rule of sequences and map
// values: any serialisable non-template type, or a smart pointer to a
// user type.
func (f *fileEncoder) isSerialisableElement(declared string) bool {
	if ClassifyDecorator(declared) != model.DecoratorRaw {
		return false
	}
	kind := ClassifyNative(f.symbols, declared)
	if kind == model.NativeTemplate {
		return isSmartPointer(declared) && isSerialisablePointee(f.symbols, ExtractTypenames(declared))
	}
	return isValidListType(kind)
}

// valueSerialization renders the statements that serialise (serialize
// true) or read back (serialize false) one value of the declared type,
// or "" when the value is skipped.
func (f *fileEncoder) valueSerialization(offset string, serialize bool, name, declared string) string {
	if !f.isSerialisable(declared) {
		return ""
	}

	switch ClassifyNative(f.symbols, declared) {
	case model.NativeBool, model.NativeChar, model.NativeInt, model.NativeFloat,
		model.NativeDouble, model.NativeString:
		if serialize {
			return offset + "stream << " + name + ";"
		}
		return offset + "stream >> " + name + ";"
	case model.NativeEnum:
		return f.enumSerialization(offset, serialize, name, declared)
	case model.NativeUserType:
		return f.userTypeSerialization(offset, serialize, name, declared)
	case model.NativeTemplate:
		typenames := ExtractTypenames(declared)
		switch {
		case isSequence(declared):
			return f.sequenceSerialization(offset, serialize, name, typenames[0])
		case isMapping(declared):
			return f.mappingSerialization(offset, serialize, name, typenames[0], typenames[1])
		case isSmartPointer(declared):
			return f.pointerSerialization(offset, serialize, name, declared, typenames[0])
		}
	}
	return ""
}

func (f *fileEncoder) enumSerialization(offset string, serialize bool, name, declared string) string {
	if serialize {
		return offset + "stream << static_cast<int>(" + name + ");"
	}
	return strings.Join([]string{
		offset + "{",
		offset + "    int pack;",
		offset + "    stream >> pack;",
		offset + "    " + name + " = static_cast<" + declared + ">(pack);",
		offset + "}",
	}, "\n")
}

func (f *fileEncoder) userTypeSerialization(offset string, serialize bool, name, declared string) string {
	if f.isStructType(declared) {
		if serialize {
			return offset + "stream << reflect::Type<" + declared + ">::to_string(" + name + ");"
		}
		return strings.Join([]string{
			offset + "{",
			offset + "    std::string pack;",
			offset + "    stream >> pack;",
			offset + "    reflect::Type<" + declared + ">::from_string(pack, " + name + ");",
			offset + "}",
		}, "\n")
	}
	if serialize {
		return offset + "stream << static_cast<std::string>(" + name + ");"
	}
	return strings.Join([]string{
		offset + "{",
		offset + "    std::string pack;",
		offset + "    stream >> pack;",
		offset + "    " + name + ".from_string(pack);",
		offset + "}",
	}, "\n")
}

func (f *fileEncoder) sequenceSerialization(offset string, serialize bool, name, element string) string {
	inner := offset + "        "
	if serialize {
		return strings.Join([]string{
			offset + "{",
			offset + "    stream << " + name + ".size();",
			offset + "    for (const auto& element : " + name + ")",
			offset + "    {",
			f.valueSerialization(inner, true, "element", element),
			offset + "    }",
			offset + "}",
		}, "\n")
	}
	return strings.Join([]string{
		offset + "{",
		offset + "    " + name + ".clear();",
		offset + "    std::size_t size;",
		offset + "    stream >> size;",
		offset + "    for (int i = 0; i < size; ++i)",
		offset + "    {",
		inner + strings.TrimRight(element, " \t") + " element;",
		f.valueSerialization(inner, false, "element", element),
		inner + name + ".push_back(std::move(element));",
		offset + "    }",
		offset + "}",
	}, "\n")
}

func (f *fileEncoder) mappingSerialization(offset string, serialize bool, name, key, value string) string {
	inner := offset + "        "
	if serialize {
		return strings.Join([]string{
			offset + "{",
			offset + "    stream << " + name + ".size();",
			offset + "    for (const auto& pair : " + name + ")",
			offset + "    {",
			f.valueSerialization(inner, true, "pair.first", key),
			f.valueSerialization(inner, true, "pair.second", value),
			offset + "    }",
			offset + "}",
		}, "\n")
	}
	return strings.Join([]string{
		offset + "{",
		offset + "    std::size_t size;",
		offset + "    stream >> size;",
		offset + "    for (int i = 0; i < size; ++i)",
		offset + "    {",
		inner + strings.TrimRight(key, " \t") + " key;",
		f.valueSerialization(inner, false, "key", key),
		inner + strings.TrimRight(value, " \t") + " value;",
		f.valueSerialization(inner, false, "value", value),
		inner + name + ".insert(std::make_pair(key, value));",
		offset + "    }",
		offset + "}",
	}, "\n")
}

// pointerSerialization handles shared and unique pointers to user
// types: a validity flag then the pointee byte-string. Reading peeks
// the embedded type tag of the sub-stream and dispatches through the
// type factory when the serialised type is not the static one.
func (f *fileEncoder) pointerSerialization(offset string, serialize bool, name, declared, pointee string) string {
	if serialize {
		return strings.Join([]string{
			offset + "stream << (" + name + " ? true : false); ",
			offset + "if(" + name + ") stream << static_cast<std::string>(*" + name + ");",
		}, "\n")
	}

	wrapper := strings.TrimRight(declared, " \t")
	construct := "std::make_unique<" + pointee + ">()"
	if templateHead(declared) == headSharedPtr {
		construct = "std::make_shared<" + pointee + ">()"
	}
	return strings.Join([]string{
		offset + "{",
		offset + "    bool valid = false;",
		offset + "    stream >> valid;",
		offset + "    if (valid)",
		offset + "    {",
		offset + "        reflect::encoding::InputByteStream temp_stream(buffer, stream.getIndex());",
		offset + "        std::size_t temp_element_size;",
		offset + "        temp_stream >> temp_element_size;",
		offset + "        std::string type_id;",
		offset + "        temp_stream >> type_id;",
		offset + "        if (type_id == Type<" + pointee + ">::name())",
		offset + "        {",
		offset + "            " + name + " = " + construct + ";",
		offset + "        }",
		offset + "        else",
		offset + "        {",
		offset + "            " + name + " = " + wrapper + "(TypeFactory::instantiate<" + pointee + ">(type_id));",
		offset + "        }",
		offset + "        {",
		offset + "            std::string pack;",
		offset + "            stream >> pack;",
		offset + "            " + name + "->from_string(pack);",
		offset + "        }",
		offset + "    }",
		offset + "}",
	}, "\n")
}
