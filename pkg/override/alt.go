package override

import (
	"errors"
	"fmt"
)

var ErrAltCycle = errors.New("alternate key cycle")

// AltPair maps an alternate trigger key onto the primary location key.
type AltPair struct {
	Alt     Key `json:"alt" yaml:"alt"`
	Primary Key `json:"primary" yaml:"primary"`
}

// AltTable resolves alternate keys to their primary key.
// Chains are collapsed at construction so a single hop always lands on a
// key that is not itself an alternate.
type AltTable struct {
	primary map[Key]Key
}

func NewAltTable(pairs []AltPair) (*AltTable, error) {
	raw := make(map[Key]Key, len(pairs))
	for _, p := range pairs {
		if p.Alt.IsZero() || p.Primary.IsZero() || p.Alt == p.Primary {
			continue
		}
		if prev, ok := raw[p.Alt]; ok && prev != p.Primary {
			return nil, fmt.Errorf("alternate %s maps to both %s and %s", p.Alt, prev, p.Primary)
		}
		raw[p.Alt] = p.Primary
	}

	resolved := make(map[Key]Key, len(raw))
	for alt := range raw {
		seen := map[Key]bool{alt: true}
		k := raw[alt]
		for {
			next, ok := raw[k]
			if !ok {
				break
			}
			if seen[k] {
				return nil, fmt.Errorf("%w at %s", ErrAltCycle, alt)
			}
			seen[k] = true
			k = next
		}
		resolved[alt] = k
	}

	return &AltTable{primary: resolved}, nil
}

// Resolve returns the primary key for k, or k itself when k is not an alternate.
func (a *AltTable) Resolve(k Key) Key {
	if a == nil {
		return k
	}
	if p, ok := a.primary[k]; ok {
		return p
	}
	return k
}

func (a *AltTable) Len() int {
	if a == nil {
		return 0
	}
	return len(a.primary)
}
