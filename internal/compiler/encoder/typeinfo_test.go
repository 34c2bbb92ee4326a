package encoder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vitodtagliente/vdtreflex/internal/compiler/model"
)

func testSymbols() model.SymbolTable {
	return model.SymbolTable{
		"Foo":   model.SymbolClass,
		"Color": model.SymbolEnum,
	}
}

func TestClassifyDecorator(t *testing.T) {
	tests := []struct {
		declared string
		want     model.DecoratorKind
	}{
		{"int", model.DecoratorRaw},
		{"Foo*", model.DecoratorPointer},
		{"Foo* ", model.DecoratorPointer},
		{"int&", model.DecoratorReference},
		{"std::vector<int>", model.DecoratorRaw},
		{"std::vector<int>*", model.DecoratorPointer},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyDecorator(tt.declared), tt.declared)
	}
}

func TestClassifyNative(t *testing.T) {
	symbols := testSymbols()
	tests := []struct {
		declared string
		want     model.NativeKind
	}{
		{"bool", model.NativeBool},
		{"char", model.NativeChar},
		{"int", model.NativeInt},
		{"float", model.NativeFloat},
		{"double", model.NativeDouble},
		{"void", model.NativeVoid},
		{"string", model.NativeString},
		{"std::string", model.NativeString},
		{"std::string&", model.NativeString},
		{"int*", model.NativeInt},
		{"Foo", model.NativeUserType},
		{"Foo*", model.NativeUserType},
		{"Color", model.NativeEnum},
		{"std::vector<int>", model.NativeTemplate},
		{"std::map<std::string, int>", model.NativeTemplate},
		{"Bar", model.NativeUnknown},
		{"", model.NativeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyNative(symbols, tt.declared), tt.declared)
	}
}

func TestExtractTypenames(t *testing.T) {
	tests := []struct {
		declared string
		want     []string
	}{
		{"std::vector<int>", []string{"int"}},
		{"std::map<std::string, int>", []string{"std::string", "int"}},
		{"std::map<std::string, std::vector<int>>", []string{"std::string", "std::vector<int>"}},
		{"std::tuple<int, float, bool, double>", []string{"int", "float", "bool", "double"}},
		{"std::vector<std::map<int, std::string>>", []string{"std::map<int, std::string>"}},
		{"std::vector<std::unique_ptr<Foo>>", []string{"std::unique_ptr<Foo>"}},
		{"int", nil},
		{"std::vector<int", nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ExtractTypenames(tt.declared), tt.declared)
	}
}

func TestExtractTypenamesArityMatchesTopLevelCommas(t *testing.T) {
	// The argument count ignores commas nested in deeper brackets.
	args := ExtractTypenames("std::map<std::pair<int, int>, std::map<std::string, float>>")
	assert.Equal(t, []string{"std::pair<int, int>", "std::map<std::string, float>"}, args)
}

func TestTemplateHead(t *testing.T) {
	assert.Equal(t, "vector", templateHead("std::vector<int>"))
	assert.Equal(t, "unordered_map", templateHead("unordered_map<int, int>"))
	assert.Equal(t, "", templateHead("int"))
	assert.True(t, isSmartPointer("std::shared_ptr<Foo>"))
	assert.True(t, isSmartPointer("std::unique_ptr<Foo>"))
	assert.False(t, isSmartPointer("std::vector<Foo>"))
}

func TestSerialisability(t *testing.T) {
	f := &fileEncoder{symbols: testSymbols(), collection: model.NewTypeCollection()}
	tests := []struct {
		declared string
		want     bool
	}{
		{"int", true},
		{"Foo", true},
		{"Color", true},
		{"Foo*", false},
		{"int&", false},
		{"void", false},
		{"Bar", false},
		{"std::vector<int>", true},
		{"std::vector<std::vector<int>>", false},
		{"std::vector<std::unique_ptr<Foo>>", true},
		{"std::vector<std::unique_ptr<Bar>>", false},
		{"std::map<std::string, int>", true},
		{"std::map<std::vector<int>, int>", false},
		{"std::map<std::string, std::shared_ptr<Foo>>", true},
		{"std::map<std::string, std::vector<int>>", false},
		{"std::shared_ptr<Foo>", true},
		{"std::unique_ptr<Foo>", true},
		{"std::shared_ptr<int>", false},
		{"std::tuple<int, float>", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, f.isSerialisable(tt.declared), tt.declared)
	}
}
