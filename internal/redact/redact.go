// Package redact scrubs credential-looking material from plan text, diffs,
// and configuration before any of it leaves the process in a prompt.
package redact

import (
	"math"
	"regexp"
)

const Redacted = "[REDACTED_SECRET]"

// patterns are applied in order; the more specific shapes run before the
// generic assignment matchers.
var patterns = []*regexp.Regexp{
	regexp.MustCompile(`-----BEGIN (RSA|EC|DSA|OPENSSH) PRIVATE KEY-----[\s\S]+?-----END (RSA|EC|DSA|OPENSSH) PRIVATE KEY-----`),
	regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
	regexp.MustCompile(`(?i)aws(.{0,20})?(secret|access)["'\s:=]+[A-Za-z0-9/+=]{32,}`),
	regexp.MustCompile(`gh[pousr]_[A-Za-z0-9]{30,}`),
	regexp.MustCompile(`eyJ[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+\.[A-Za-z0-9_\-]+`),
	// Terraform variable assignments in .tfvars or plan attribute diffs.
	regexp.MustCompile(`(?i)(password|token|secret|api[_-]?key|access[_-]?key|private[_-]?key)["'\s:=]+[^\s"']{8,}`),
	regexp.MustCompile(`(?i)(token|secret|api[_-]?key|access[_-]?key)["'\s:=]+[A-Za-z0-9/+=]{16,}`),
}

var urlParams = regexp.MustCompile(`([?&](token|key|secret|sig|signature|access_token|auth)=)[^&\s]+`)

var (
	base64Like = regexp.MustCompile(`[A-Za-z0-9+/=]{32,}`)
	hexLike    = regexp.MustCompile(`[A-Fa-f0-9]{32,}`)
)

func Redact(input string) string {
	if input == "" {
		return input
	}
	output := input
	for _, re := range patterns {
		output = re.ReplaceAllString(output, Redacted)
	}
	output = urlParams.ReplaceAllString(output, "${1}"+Redacted)
	output = replaceIfHighEntropy(output, base64Like)
	output = replaceIfHighEntropy(output, hexLike)
	return output
}

func Optional(input string, enabled bool) string {
	if !enabled {
		return input
	}
	return Redact(input)
}

// replaceIfHighEntropy redacts long base64/hex runs only when their Shannon
// entropy suggests key material, leaving ordinary identifiers intact.
func replaceIfHighEntropy(input string, re *regexp.Regexp) string {
	return re.ReplaceAllStringFunc(input, func(match string) string {
		if entropy(match) >= 4.0 {
			return Redacted
		}
		return match
	})
}

func entropy(s string) float64 {
	if s == "" {
		return 0
	}
	counts := make(map[rune]int)
	for _, r := range s {
		counts[r]++
	}
	length := float64(len([]rune(s)))
	var ent float64
	for _, count := range counts {
		p := float64(count) / length
		ent -= p * math.Log2(p)
	}
	return ent
}
