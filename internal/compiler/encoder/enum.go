package encoder

import "github.com/vitodtagliente/vdtreflex/internal/compiler/model"

// encodeEnum emits the Enum<E> specialisation: its factory registration
// in the declarations buffer and the name()/values() bodies in the
// definitions buffer. Option values are the options coerced to int in
// declaration order.
func (f *fileEncoder) encodeEnum(enum *model.TypeEnum) {
	f.header.PushLine("template <>")
	f.header.PushLine("struct reflect::Enum<enum class ", enum.Name, "> : reflect::RegisteredInEnumFactory<enum class ", enum.Name, ">")
	f.header.PushLine("{")
	f.header.PushLine("    static const char* const name();")
	f.header.PushLine("    static const reflect::enum_values_t& values();")
	f.header.PushLine("    ")
	f.header.PushLine("    static bool registered() { return value; };")
	f.header.PushLine("};")
	f.header.PushLine("")

	f.source.PushLine("const char* const reflect::Enum<", enum.Name, ">::name() { return \"", enum.Name, "\"; }")
	f.source.PushLine("const reflect::enum_values_t& reflect::Enum<", enum.Name, ">::values()")
	f.source.PushLine("{")
	f.source.PushLine("    static reflect::enum_values_t s_values{")
	for _, option := range enum.Options {
		f.source.PushLine("        { \"", option, "\", static_cast<int>(", enum.Name, "::", option, ") }, ")
	}
	f.source.PushLine("    };")
	f.source.PushLine("    return s_values;")
	f.source.PushLine("}")
	f.source.PushLine("")
}
