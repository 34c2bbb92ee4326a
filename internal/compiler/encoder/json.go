package encoder

import (
	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// JSON emission delegates container expansion to the runtime json
// helpers; generated code only dispatches per property. A property is
// present in the JSON form exactly when it is binary-serialisable.

// encodeToJSON emits the body rendering a value as indented JSON-like
// text, opening with the type_id tag.
func (f *fileEncoder) encodeToJSON(class *model.TypeClass, chain []*model.TypeClass) {
	f.source.PushLine("std::string reflect::Type<", class.Name, ">::to_json(const ", class.Name, "& type, const std::string& offset)")
	f.source.PushLine("{")
	f.source.PushLine("    std::stringstream stream;")
	f.source.PushLine("    stream << \"{\" << std::endl;")
	f.source.PushLine("    stream << offset << \"    \" << \"\\\"type_id\\\": \" << \"\\\"", class.Name, "\\\"\" << \",\" << std::endl;")
	for _, ancestor := range chain {
		f.source.PushLine("    // Parent class ", ancestor.Name, " properties")
		for _, property := range ancestor.Properties {
			if line := f.propertyToJSON(property); line != "" {
				f.source.PushLine(line)
			}
		}
	}
	if len(chain) > 0 {
		f.source.PushLine("    // Properties")
	}
	for _, property := range class.Properties {
		if line := f.propertyToJSON(property); line != "" {
			f.source.PushLine(line)
		}
	}
	f.source.PushLine("    stream << offset << \"}\";")
	f.source.PushLine("    return stream.str();")
	f.source.PushLine("}")
	f.source.PushLine("")
}

// encodeFromJSON emits the body splitting a JSON object into key/value
// pairs through the runtime helper and parsing each known key into the
// matching field.
func (f *fileEncoder) encodeFromJSON(class *model.TypeClass, chain []*model.TypeClass) {
	f.source.PushLine("void reflect::Type<", class.Name, ">::from_json(const std::string& json, ", class.Name, "& type)")
	f.source.PushLine("{")
	f.source.PushLine("    std::string src{ reflect::encoding::json::Deserializer::trim(json, reflect::encoding::json::Deserializer::space) };")
	f.source.PushLine("    ")
	f.source.PushLine("    size_t index = 0;")
	f.source.PushLine("    std::string key;")
	f.source.PushLine("    while ((index = reflect::encoding::json::Deserializer::next_key(src, key)) != std::string::npos)")
	f.source.PushLine("    {")
	f.source.PushLine("        src = src.substr(index + 2);")
	f.source.PushLine("        src = reflect::encoding::json::Deserializer::ltrim(src, reflect::encoding::json::Deserializer::space);")
	f.source.PushLine("        std::string value;")
	f.source.PushLine("        index = reflect::encoding::json::Deserializer::next_value(src, value);")
	f.source.PushLine("        if (index != std::string::npos)")
	f.source.PushLine("        {")
	for _, ancestor := range chain {
		f.source.PushLine("            // Parent class ", ancestor.Name, " properties")
		for _, property := range ancestor.Properties {
			if line := f.propertyFromJSON(property); line != "" {
				f.source.PushLine(line)
			}
		}
	}
	if len(chain) > 0 {
		f.source.PushLine("            // Properties")
	}
	for _, property := range class.Properties {
		if line := f.propertyFromJSON(property); line != "" {
			f.source.PushLine(line)
		}
	}
	f.source.PushLine("            src = src.substr(index + 1);")
	f.source.PushLine("        }")
	f.source.PushLine("        else break;")
	f.source.PushLine("    };")
	f.source.PushLine("}")
	f.source.PushLine("")
}

func (f *fileEncoder) propertyToJSON(property model.Property) string {
	if !f.isSerialisable(property.Type) {
		return ""
	}
	prefix := "    stream << offset << \"    \" << \"\\\"" + property.Name + "\\\": \" << "
	suffix := " << \",\" << std::endl;"

	switch ClassifyNative(f.symbols, property.Type) {
	case model.NativeEnum:
		return prefix + "reflect::encoding::json::Serializer::to_string(static_cast<int>(type." + property.Name + "))" + suffix
	case model.NativeUserType:
		if f.isStructType(property.Type) {
			return prefix + "reflect::Type<" + property.Type + ">::to_json(type." + property.Name + ", offset + \"    \")" + suffix
		}
		return prefix + "type." + property.Name + ".to_json(offset + \"    \")" + suffix
	default:
		return prefix + "reflect::encoding::json::Serializer::to_string(type." + property.Name + ")" + suffix
	}
}

func (f *fileEncoder) propertyFromJSON(property model.Property) string {
	if !f.isSerialisable(property.Type) {
		return ""
	}
	prefix := "            if (key == \"" + property.Name + "\") "

	switch ClassifyNative(f.symbols, property.Type) {
	case model.NativeEnum:
		return prefix + "{ int pack; reflect::encoding::json::Deserializer::parse(value, pack); type." + property.Name + " = static_cast<" + property.Type + ">(pack); }"
	case model.NativeUserType:
		if f.isStructType(property.Type) {
			return prefix + "reflect::Type<" + property.Type + ">::from_json(value, type." + property.Name + ");"
		}
		return prefix + "type." + property.Name + ".from_json(value);"
	default:
		return prefix + "reflect::encoding::json::Deserializer::parse(value, type." + property.Name + ");"
	}
}
