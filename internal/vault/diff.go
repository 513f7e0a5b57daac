package vault

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// UnifiedDiff generates a unified diff between two vault documents.
// Returns empty string if the documents are identical.
func UnifiedDiff(label string, vaultDoc, otherDoc []byte) string {
	if bytes.Equal(vaultDoc, otherDoc) {
		return ""
	}

	dmp := diffmatchpatch.New()

	// Line-mode diff for better output
	vaultStr, otherStr := string(vaultDoc), string(otherDoc)
	a, b, lineArray := dmp.DiffLinesToChars(vaultStr, otherStr)
	diffs := dmp.DiffMain(a, b, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	patches := dmp.PatchMake(vaultStr, diffs)
	if len(patches) == 0 {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("--- a/%s\n", label))
	result.WriteString(fmt.Sprintf("+++ b/%s\n", label))
	result.WriteString(dmp.PatchToText(patches))
	return result.String()
}
