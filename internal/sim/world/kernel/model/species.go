package model

import (
	"errors"
	"fmt"
)

var ErrUnknownType = errors.New("unknown agent type")

// Type is an agent's species. It fixes the home center, the preferred
// terrain and the agent's place in the rock-paper-scissors cycle.
type Type int

const (
	TypeR Type = iota
	TypeG
	TypeB
)

var AllTypes = [3]Type{TypeR, TypeG, TypeB}

func (t Type) Valid() bool { return t >= TypeR && t <= TypeB }

func (t Type) String() string {
	switch t {
	case TypeR:
		return "R"
	case TypeG:
		return "G"
	case TypeB:
		return "B"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

func ParseType(s string) (Type, error) {
	switch s {
	case "R", "r":
		return TypeR, nil
	case "G", "g":
		return TypeG, nil
	case "B", "b":
		return TypeB, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownType, s)
}

// Prey is the type this one beats: R beats G, G beats B, B beats R.
func (t Type) Prey() Type { return (t + 1) % 3 }

// Predator is the type that beats this one.
func (t Type) Predator() Type { return (t + 2) % 3 }

// Beats reports whether an attacker of type a has the advantage over d.
// The relation is asymmetric; same-type pairs never fight.
func Beats(a, d Type) bool {
	if !a.Valid() || !d.Valid() {
		return false
	}
	return a.Prey() == d
}

func (t Type) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w %d", ErrUnknownType, int(t))
	}
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

type Status string

const (
	StatusAlive   Status = "alive"
	StatusFainted Status = "fainted"
	// StatusDead and StatusEgg are carried through snapshots but no rule
	// currently enters them.
	StatusDead Status = "dead"
	StatusEgg  Status = "egg"
)

func (s Status) Valid() bool {
	switch s {
	case StatusAlive, StatusFainted, StatusDead, StatusEgg:
		return true
	}
	return false
}
