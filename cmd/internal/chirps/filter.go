package chirps

import "strings"

// profanities are replaced in chirp bodies before storage. Matching is
// case-insensitive and whole-word only: the body is split on single
// spaces, so punctuation attached to a word defeats the filter.
var profanities = map[string]struct{}{
	"kerfuffle": {},
	"sharbert":  {},
	"fornax":    {},
}

const profanityMask = "****"

func cleanBody(body string) string {
	words := strings.Split(body, " ")
	for i, w := range words {
		if _, bad := profanities[strings.ToLower(w)]; bad {
			words[i] = profanityMask
		}
	}
	return strings.Join(words, " ")
}
