// Package refcode extracts contract codes from free-text reference fields.
//
// Contract references arrive in many layouts ("JA588/AUG24/RIS/125",
// "R25/KSV/227 - 6", plain "KSV/227"); the contract code is always the
// rightmost CODE/NUMBER segment. The same extraction runs over both the
// contract roster and the transaction log, so the two tables always agree
// on the join key.
package refcode

import (
	"regexp"
	"strings"
)

// codePattern matches one CODE/NUMBER segment: a run of uppercase
// letters, digits, '&', '_' or '-', a single slash, then a digit run.
var codePattern = regexp.MustCompile(`[A-Z0-9&_-]+/[0-9]+`)

// Extract returns the contract code embedded in a raw reference string.
// References often carry several slash-delimited segments (site codes,
// month stamps); the rightmost match wins. Returns "" when the reference
// holds no code. Extraction never fails; an empty result is a normal,
// countable outcome.
func Extract(reference string) string {
	if strings.TrimSpace(reference) == "" {
		return ""
	}

	matches := codePattern.FindAllString(reference, -1)
	if len(matches) == 0 {
		return ""
	}

	return matches[len(matches)-1]
}
