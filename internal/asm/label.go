package asm

import "strconv"

// Label is an opaque, per-assembly jump target. Two labels are equal iff
// their name and disambiguator match; labels are minted by Assembly.Label
// with a bumping counter so generated labels never collide.
type Label struct {
	Name string
	Disambiguator int
}

func (l Label) String() string {
	if l.Name == "" {
		return "@" + strconv.Itoa(l.Disambiguator)
	}
	return l.Name + "@" + strconv.Itoa(l.Disambiguator)
}
