package encoder

import (
	"strings"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

// encodeClass emits the Type<T> specialisation of one class or struct:
// metadata, the ordered properties table, the binary from_string/to_string
// pair and the JSON from_json/to_json pair. Inherited properties are expanded ancestor by ancestor,
// root-most ancestor first, before the declaration's own.
func (f *fileEncoder) encodeClass(class *model.TypeClass) error {
	chain, err := f.ancestors(class)
	if err != nil {
		return err
	}

	f.encodeClassHeader(class)
	f.encodeClassMeta(class)
	f.encodeClassProperties(class, chain)
	f.encodeClassSize(class)
	f.encodeFromString(class, chain)
	f.encodeToString(class, chain)
	f.encodeFromJSON(class, chain)
	f.encodeToJSON(class, chain)
	if !class.IsStruct {
		f.encodeMemberForwarding(class)
	}
	return nil
}

func (f *fileEncoder) encodeClassHeader(class *model.TypeClass) {
	keyword := "class"
	if class.IsStruct {
		keyword = "struct"
	}
	f.header.PushLine("template <>")
	f.header.PushLine("struct reflect::Type<", keyword, " ", class.Name, "> : reflect::RegisteredInTypeFactory<", keyword, " ", class.Name, ">")
	f.header.PushLine("{")
	f.header.PushLine("    static const reflect::meta_t& meta();")
	f.header.PushLine("    static const char* const name();")
	f.header.PushLine("    static const reflect::properties_t& properties();")
	f.header.PushLine("    static std::size_t size();")
	f.header.PushLine("    ")
	f.header.PushLine("    static void from_string(const std::string& str, ", class.Name, "& type);")
	f.header.PushLine("    static std::string to_string(const ", class.Name, "& type);")
	f.header.PushLine("    static void from_json(const std::string& json, ", class.Name, "& type);")
	f.header.PushLine("    static std::string to_json(const ", class.Name, "& type, const std::string& offset = \"\");")
	f.header.PushLine("    ")
	f.header.PushLine("    static bool registered() { return value; };")
	f.header.PushLine("};")
	f.header.PushLine("")
}

func (f *fileEncoder) encodeClassMeta(class *model.TypeClass) {
	f.source.PushLine("const reflect::meta_t& reflect::Type<", class.Name, ">::meta()")
	f.source.PushLine("{")
	f.source.PushLine("    static reflect::meta_t s_meta {")
	for _, entry := range class.Meta.Entries() {
		f.source.PushLine("        { \"", entry.Key, "\", \"", escapeMetaValue(entry.Value), "\" },")
	}
	f.source.PushLine("    };")
	f.source.PushLine("    return s_meta;")
	f.source.PushLine("}")
	f.source.PushLine("const char* const reflect::Type<", class.Name, ">::name() { return \"", class.Name, "\"; }")
	f.source.PushLine("")
}

func (f *fileEncoder) encodeClassProperties(class *model.TypeClass, chain []*model.TypeClass) {
	f.source.PushLine("const reflect::properties_t& Type<", class.Name, ">::properties()")
	f.source.PushLine("{")
	f.source.PushLine("    static reflect::properties_t s_properties {")
	for _, ancestor := range chain {
		f.source.PushLine("        // Parent class ", ancestor.Name, " properties")
		for _, property := range ancestor.Properties {
			f.source.PushLine(f.propertyReflection("        ", property, class.Name), ",")
		}
	}
	if len(chain) > 0 {
		f.source.PushLine("        // Properties")
	}
	for _, property := range class.Properties {
		f.source.PushLine(f.propertyReflection("        ", property, class.Name), ",")
	}
	f.source.PushLine("    };")
	f.source.PushLine("    return s_properties;")
	f.source.PushLine("}")
	f.source.PushLine("")
}

func (f *fileEncoder) encodeClassSize(class *model.TypeClass) {
	f.source.PushLine("std::size_t reflect::Type<", class.Name, ">::size()")
	f.source.PushLine("{")
	f.source.PushLine("    return sizeof(", class.Name, ");")
	f.source.PushLine("}")
	f.source.PushLine("")
}

// propertyReflection renders one line of the properties table: the
// field offset within the emitting type, the property meta, its name
// and the recursive property-type descriptor.
func (f *fileEncoder) propertyReflection(offset string, property model.Property, owner string) string {
	var builder strings.Builder
	builder.WriteString(offset)
	builder.WriteString("{ \"")
	builder.WriteString(property.Name)
	builder.WriteString("\", reflect::Property{ offsetof(")
	builder.WriteString(owner)
	builder.WriteString(", ")
	builder.WriteString(property.Name)
	builder.WriteString("), reflect::meta_t {")
	for i, entry := range property.Meta.Entries() {
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString("{\"")
		builder.WriteString(entry.Key)
		builder.WriteString("\", \"")
		builder.WriteString(escapeMetaValue(entry.Value))
		builder.WriteString("\"}")
	}
	builder.WriteString(" }, \"")
	builder.WriteString(property.Name)
	builder.WriteString("\", ")
	builder.WriteString(f.typeDescriptor(offset, property.Type))
	builder.WriteString(" } }")
	return builder.String()
}

// typeDescriptor renders the recursive descriptor of a declared type.
// Template arguments expand one per line, indented one level deeper
// than the owning descriptor.
func (f *fileEncoder) typeDescriptor(offset, declared string) string {
	decorator := ClassifyDecorator(declared)
	native := ClassifyNative(f.symbols, declared)

	arguments := " "
	if native == model.NativeTemplate {
		var builder strings.Builder
		for _, typename := range ExtractTypenames(declared) {
			builder.WriteString("\n")
			builder.WriteString(offset + "    ")
			builder.WriteString(f.typeDescriptor(offset+"    ", typename))
			builder.WriteString(",")
		}
		builder.WriteString("\n")
		builder.WriteString(offset)
		arguments = builder.String()
	}

	return "reflect::PropertyType{ \"" + declared + "\", { " + arguments + "}, " +
		decoratorName(decorator) + ", sizeof(" + declared + "), " + nativeName(native) + " }"
}

func decoratorName(kind model.DecoratorKind) string {
	switch kind {
	case model.DecoratorPointer:
		return "reflect::PropertyType::DecoratorType::D_pointer"
	case model.DecoratorReference:
		return "reflect::PropertyType::DecoratorType::D_reference"
	default:
		return "reflect::PropertyType::DecoratorType::D_raw"
	}
}

func nativeName(kind model.NativeKind) string {
	switch kind {
	case model.NativeBool:
		return "reflect::PropertyType::Type::T_bool"
	case model.NativeChar:
		return "reflect::PropertyType::Type::T_char"
	case model.NativeInt:
		return "reflect::PropertyType::Type::T_int"
	case model.NativeFloat:
		return "reflect::PropertyType::Type::T_float"
	case model.NativeDouble:
		return "reflect::PropertyType::Type::T_double"
	case model.NativeString:
		return "reflect::PropertyType::Type::T_string"
	case model.NativeVoid:
		return "reflect::PropertyType::Type::T_void"
	case model.NativeEnum:
		return "reflect::PropertyType::Type::T_enum"
	case model.NativeUserType:
		return "reflect::PropertyType::Type::T_type"
	case model.NativeTemplate:
		return "reflect::PropertyType::Type::T_template"
	default:
		return "reflect::PropertyType::Type::T_unknown"
	}
}

// encodeMemberForwarding emits the IType member definitions that
// forward to the Type<T> statics. Structs have no members to forward.
func (f *fileEncoder) encodeMemberForwarding(class *model.TypeClass) {
	name := class.Name
	f.source.PushLine("const reflect::meta_t& ", name, "::type_meta() const { return reflect::Type<", name, ">::meta(); }")
	f.source.PushLine("const char* const ", name, "::type_name() const { return reflect::Type<", name, ">::name(); }")
	f.source.PushLine("const reflect::properties_t& ", name, "::type_properties() const { return reflect::Type<", name, ">::properties(); }")
	f.source.PushLine(name, "::operator std::string() const { return reflect::Type<", name, ">::to_string(*this); }")
	f.source.PushLine("void ", name, "::from_string(const std::string& str)")
	f.source.PushLine("{")
	f.source.PushLine("    reflect::Type<", name, ">::from_string(str, *this);")
	f.source.PushLine("    type_initialize();")
	f.source.PushLine("}")
	f.source.PushLine("void ", name, "::from_json(const std::string& json)")
	f.source.PushLine("{")
	f.source.PushLine("    reflect::Type<", name, ">::from_json(json, *this);")
	f.source.PushLine("    type_initialize();")
	f.source.PushLine("}")
	f.source.PushLine("std::string ", name, "::to_json(const std::string& offset) const { return reflect::Type<", name, ">::to_json(*this, offset); }")
	f.source.PushLine("")
}
