package markdown

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy
)

// SanitizeInline strips author-supplied markup down to the inline elements a
// table cell can safely carry. Text without any markup passes through
// untouched.
func SanitizeInline(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return raw
	}
	return inlineSanitizer().Sanitize(raw)
}

func inlineSanitizer() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("br", "code", "em", "strong", "sub", "sup")
		inlinePolicy = policy
	})
	return inlinePolicy
}
