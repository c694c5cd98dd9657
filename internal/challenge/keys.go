package challenge

// CountKeystrokes counts discrete key presses in a vim key-notation string.
// Plain characters count as 1 each. A bracketed token such as <Esc> or <C-r>
// counts as 1 regardless of length; an unterminated < consumes the rest of
// the string as one token.
//
// Challenge authors must write a literal < as <lt> in perfect_moves so it is
// not parsed as the start of a named key. For example ciw<lt>Esc> types the
// text "<Esc>" rather than pressing Escape.
func CountKeystrokes(s string) int {
	count := 0
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '<' {
			for i+1 < len(runes) && runes[i+1] != '>' {
				i++
			}
			if i+1 < len(runes) {
				i++
			}
		}
		count++
	}
	return count
}
