package names

import "strings"

// Normalise lowercases raw and folds punctuation used as word separators
// ("activation-rate", "inverse_sigmoid") into single spaces. Any other
// symbol is dropped.
func Normalise(raw string) string {
	folded := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		case strings.ContainsRune(" \t\n\r-_/.", r):
			return ' '
		default:
			return -1
		}
	}, raw)
	return strings.Join(strings.Fields(folded), " ")
}
