// Package format rewrites iconlookup configuration files in canonical HCL
// style.
package format

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"github.com/hashicorp/hcl/v2/hclwrite"
)

var (
	extraBlankLines  = regexp.MustCompile(`\n{3,}`)
	blankAfterOpen   = regexp.MustCompile(`\{\n\s*\n`)
	blankBeforeClose = regexp.MustCompile(`\n\s*\n(\s*\})`)
	trailingSpace    = regexp.MustCompile(`[ \t]+\n`)
)

// Format returns src in canonical style: hclwrite indentation and
// alignment, at most one blank line in a row, no blank lines hugging braces.
// Partial input is accepted so editors can format while typing.
func Format(src string) (string, error) {
	out := string(hclwrite.Format([]byte(src)))
	out = trailingSpace.ReplaceAllString(out, "\n")
	out = extraBlankLines.ReplaceAllString(out, "\n\n")
	out = blankAfterOpen.ReplaceAllString(out, "{\n")
	out = blankBeforeClose.ReplaceAllString(out, "\n${1}")
	return out, nil
}

// File formats the file at path. With write set, changed content is written
// back. It reports whether the formatted content differs from the original.
func File(path string, write bool) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	out, err := Format(string(src))
	if err != nil {
		return false, fmt.Errorf("formatting %s: %w", path, err)
	}
	if bytes.Equal(src, []byte(out)) {
		return false, nil
	}
	if write {
		info, err := os.Stat(path)
		if err != nil {
			return true, fmt.Errorf("stat %s: %w", path, err)
		}
		if err := os.WriteFile(path, []byte(out), info.Mode().Perm()); err != nil {
			return true, fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return true, nil
}
