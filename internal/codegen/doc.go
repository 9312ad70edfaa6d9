package codegen

import (
	"strings"

	"displaystr/internal/ast"
)

// writeDoc renders `///` lines preserved from the input.
func writeDoc(b *strings.Builder, pad string, lines []string) {
	for _, line := range lines {
		b.WriteString(pad)
		if line == "" {
			b.WriteString("///\n")
			continue
		}
		b.WriteString("/// ")
		b.WriteString(line)
		b.WriteByte('\n')
	}
}

// writeAttrs renders `#[...]` attributes carried verbatim from the input.
func writeAttrs(b *strings.Builder, pad string, attrs []string) {
	for _, attr := range attrs {
		b.WriteString(pad)
		b.WriteString(attr)
		b.WriteByte('\n')
	}
}

// writeDocTemplate renders the variant's template as a doc comment. The
// template text goes out exactly as written, escapes and placeholders
// included, only the surrounding quotes dropped.
func writeDocTemplate(b *strings.Builder, pad string, dir *ast.Directive) {
	content := dir.TemplateContent()
	b.WriteString(pad)
	if content == "" {
		b.WriteString("///\n")
		return
	}
	b.WriteString("/// ")
	b.WriteString(content)
	b.WriteByte('\n')
}
