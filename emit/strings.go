package emit

import (
	"fmt"
	"strings"
)

// nasmStringLiteral renders a string literal as a comma-separated byte
// list followed by a null terminator, NASM's `db` form.
func nasmStringLiteral(index int, text string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "str_%d db ", index)
	for _, b := range []byte(text) {
		fmt.Fprintf(&sb, "0x%02x,", b)
	}
	sb.WriteString("0\n")
	return sb.String()
}

// gasStringLiteral renders a string literal using GAS's `.string`
// directive, escaping the characters `.string` itself treats specially.
func gasStringLiteral(index int, text string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(text)
	return fmt.Sprintf("str_%d: .string \"%s\"\n", index, escaped)
}
