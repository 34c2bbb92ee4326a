package encoder

import "strings"

// Buffer accumulates generated output line by line. Content is only
// materialised once, when the whole buffer is compared against the file
// on disk.
type Buffer struct {
	lines []string
}

// Push appends the parts to the current line.
func (b *Buffer) Push(parts ...string) {
	text := strings.Join(parts, "")
	if len(b.lines) == 0 {
		b.lines = append(b.lines, text)
		return
	}
	b.lines[len(b.lines)-1] += text
}

// PushLine starts a new line made of the joined parts.
func (b *Buffer) PushLine(parts ...string) {
	b.lines = append(b.lines, strings.Join(parts, ""))
}

// String renders the buffer, one newline per pushed line.
func (b *Buffer) String() string {
	var builder strings.Builder
	for _, line := range b.lines {
		builder.WriteString(line)
		builder.WriteString("\n")
	}
	return builder.String()
}
