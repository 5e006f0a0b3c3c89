// Package runeio provides printable forms for control runes.
package runeio

// CaretForm computes the ^-escaped printable form of a control rune: C0
// controls and DEL become e.g. ^@ ^[ ^?, C1 controls become e.g. ^[E for NEL.
// Returns "" for any other rune.
func CaretForm(r rune) string {
	if r < 0x20 || r == 0x7f {
		return "^" + string(r^0x40)
	} else if 0x80 <= r && r <= 0x9f {
		return "^[" + string(r^0xc0)
	}
	return ""
}

// Printable returns s with every control rune, other than those in keep,
// replaced by its caret form.
func Printable(s string, keep ...rune) string {
	var out []rune
	for i, r := range []rune(s) {
		form := CaretForm(r)
		if form == "" || contains(keep, r) {
			if out != nil {
				out = append(out, r)
			}
			continue
		}
		if out == nil {
			out = append(make([]rune, 0, len(s)+2), []rune(s)[:i]...)
		}
		out = append(out, []rune(form)...)
	}
	if out == nil {
		return s
	}
	return string(out)
}

func contains(rs []rune, r rune) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}
