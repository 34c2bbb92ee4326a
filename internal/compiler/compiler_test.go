package compiler

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestRunResolvesSymbolsAcrossFiles(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	// colors.h sorts before user.h, so the enum is known when the
	// second file encodes.
	writeFile(t, filepath.Join(input, "colors.h"), `
ENUM()
enum class Color { Red, Green, Blue };
`)
	writeFile(t, filepath.Join(input, "user.h"), `
CLASS()
class Paint
{
	PROPERTY()
	Color tint;
};
`)

	require.NoError(t, New(output, testLogger(), false).Run([]string{input}))

	for _, name := range []string{"colors_generated.h", "colors_generated.cpp", "user_generated.h", "user_generated.cpp"} {
		_, err := os.Stat(filepath.Join(output, name))
		assert.NoError(t, err, name)
	}

	source, err := os.ReadFile(filepath.Join(output, "user_generated.cpp"))
	require.NoError(t, err)
	assert.Contains(t, string(source), "stream << static_cast<int>(type.tint);")
	assert.Contains(t, string(source), "reflect::PropertyType::Type::T_enum")
}

func TestRunContinuesAfterFailure(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()

	writeFile(t, filepath.Join(input, "bad.h"), "CLASS()\nclass Broken {")
	writeFile(t, filepath.Join(input, "good.h"), "CLASS()\nclass Fine { PROPERTY() int a; };")

	err := New(output, testLogger(), false).Run([]string{input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")

	_, err = os.Stat(filepath.Join(output, "good_generated.cpp"))
	assert.NoError(t, err, "successful files still produce outputs")
	_, err = os.Stat(filepath.Join(output, "bad_generated.cpp"))
	assert.True(t, os.IsNotExist(err), "failed files produce no outputs")
}

func TestRunIsIdempotent(t *testing.T) {
	input := t.TempDir()
	output := t.TempDir()
	writeFile(t, filepath.Join(input, "foo.h"), "CLASS()\nclass Foo { PROPERTY() int a; };")

	require.NoError(t, New(output, testLogger(), false).Run([]string{input}))

	headerPath := filepath.Join(output, "foo_generated.h")
	sourcePath := filepath.Join(output, "foo_generated.cpp")
	past := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(headerPath, past, past))
	require.NoError(t, os.Chtimes(sourcePath, past, past))

	require.NoError(t, New(output, testLogger(), false).Run([]string{input}))

	for _, path := range []string{headerPath, sourcePath} {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.True(t, info.ModTime().Equal(past), "%s was rewritten on a no-op run", path)
	}
}

func TestRunDryRun(t *testing.T) {
	input := t.TempDir()
	output := filepath.Join(t.TempDir(), "out")
	writeFile(t, filepath.Join(input, "foo.h"), "CLASS()\nclass Foo { };")

	require.NoError(t, New(output, testLogger(), true).Run([]string{input}))

	_, err := os.Stat(output)
	assert.True(t, os.IsNotExist(err), "dry runs create no outputs")
}

func TestRunSkipsGeneratedFiles(t *testing.T) {
	input := t.TempDir()
	writeFile(t, filepath.Join(input, "foo.h"), "CLASS()\nclass Foo { };")
	writeFile(t, filepath.Join(input, "foo_generated.h"), "// previous output")

	require.NoError(t, New(input, testLogger(), false).Run([]string{input}))

	_, err := os.Stat(filepath.Join(input, "foo_generated_generated.h"))
	assert.True(t, os.IsNotExist(err), "generated outputs are never re-compiled")
}

func TestRunWithoutInputs(t *testing.T) {
	err := New(t.TempDir(), testLogger(), false).Run([]string{t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no declaration files")
}

func TestRunReportsRedeclarationsAcrossFiles(t *testing.T) {
	input := t.TempDir()
	writeFile(t, filepath.Join(input, "a.h"), "CLASS()\nclass Twice { };")
	writeFile(t, filepath.Join(input, "b.h"), "CLASS()\nclass Twice { };")

	err := New(t.TempDir(), testLogger(), false).Run([]string{input})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files failed")
}
