package life

import (
	"fmt"
	"strings"
)

// Rule holds birth and survival neighbour counts as bitsets: bit n set means
// a count of n qualifies.
type Rule struct {
	Birth   uint16
	Survive uint16
}

// Conway is the classic B3/S23 rule.
var Conway = Rule{Birth: 1 << 3, Survive: 1<<2 | 1<<3}

// Born reports whether a dead cell with n live neighbours comes alive.
func (r Rule) Born(n int) bool { return n >= 0 && n <= 8 && r.Birth&(1<<n) != 0 }

// Survives reports whether a live cell with n live neighbours stays alive.
func (r Rule) Survives(n int) bool { return n >= 0 && n <= 8 && r.Survive&(1<<n) != 0 }

// String renders the rule in B/S notation.
func (r Rule) String() string {
	var b strings.Builder
	b.WriteByte('B')
	writeCounts(&b, r.Birth)
	b.WriteString("/S")
	writeCounts(&b, r.Survive)
	return b.String()
}

func writeCounts(b *strings.Builder, bits uint16) {
	for n := 0; n <= 8; n++ {
		if bits&(1<<n) != 0 {
			b.WriteByte(byte('0' + n))
		}
	}
}

// ParseRule reads B/S notation such as "B3/S23" (case-insensitive, either
// order). Both parts are required; either may list no counts.
func ParseRule(s string) (Rule, error) {
	parts := strings.Split(strings.ToUpper(strings.TrimSpace(s)), "/")
	if len(parts) != 2 {
		return Rule{}, fmt.Errorf("life: rule %q: want B<counts>/S<counts>", s)
	}
	var r Rule
	var seenB, seenS bool
	for _, part := range parts {
		if part == "" {
			return Rule{}, fmt.Errorf("life: rule %q: empty section", s)
		}
		bits, err := parseCounts(part[1:])
		if err != nil {
			return Rule{}, fmt.Errorf("life: rule %q: %w", s, err)
		}
		switch part[0] {
		case 'B':
			if seenB {
				return Rule{}, fmt.Errorf("life: rule %q: duplicate birth section", s)
			}
			seenB = true
			r.Birth = bits
		case 'S':
			if seenS {
				return Rule{}, fmt.Errorf("life: rule %q: duplicate survival section", s)
			}
			seenS = true
			r.Survive = bits
		default:
			return Rule{}, fmt.Errorf("life: rule %q: unknown section %q", s, part)
		}
	}
	return r, nil
}

func parseCounts(s string) (uint16, error) {
	var bits uint16
	for _, ch := range s {
		if ch < '0' || ch > '8' {
			return 0, fmt.Errorf("invalid neighbour count %q", ch)
		}
		bits |= 1 << (ch - '0')
	}
	return bits, nil
}
