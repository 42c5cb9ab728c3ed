// internal/domain/editor/update.go
package editor

import (
	"errors"
	"fmt"
)

// ErrIndexOutOfRange is returned when an operation addresses a node that does
// not exist. The structure is returned unchanged alongside it.
var ErrIndexOutOfRange = errors.New("structure index out of range")

func inRange(i, n int) bool { return i >= 0 && i < n }

func outOfRange(p Path) error {
	return fmt.Errorf("%w: %s", ErrIndexOutOfRange, p)
}

// updateAt returns a copy of xs with xs[i] replaced by fn(xs[i]).
// xs itself is never written to.
func updateAt[T any](xs []T, i int, fn func(T) (T, error)) ([]T, error) {
	if !inRange(i, len(xs)) {
		return xs, ErrIndexOutOfRange
	}
	v, err := fn(xs[i])
	if err != nil {
		return xs, err
	}
	out := make([]T, len(xs))
	copy(out, xs)
	out[i] = v
	return out, nil
}

// removeAt returns a copy of xs without xs[i]; later elements shift down by one.
func removeAt[T any](xs []T, i int) ([]T, error) {
	if !inRange(i, len(xs)) {
		return xs, ErrIndexOutOfRange
	}
	out := make([]T, 0, len(xs)-1)
	out = append(out, xs[:i]...)
	out = append(out, xs[i+1:]...)
	return out, nil
}

// appendTo returns a copy of xs with v appended. It always allocates so the
// result never aliases spare capacity of xs.
func appendTo[T any](xs []T, v T) []T {
	out := make([]T, len(xs), len(xs)+1)
	copy(out, xs)
	return append(out, v)
}

// updateGroup is the update-at-path step for groups[i]: it replaces one group
// and the Groups slice, sharing everything else.
func (s Structure) updateGroup(i int, fn func(Group) (Group, error)) (Structure, error) {
	if !inRange(i, len(s.Groups)) {
		return s, outOfRange(GroupPath(i))
	}
	groups, err := updateAt(s.Groups, i, fn)
	if err != nil {
		return s, err
	}
	s.Groups = groups
	return s, nil
}

func (s Structure) updatePosition(p int, fn func(Position) (Position, error)) (Structure, error) {
	if !inRange(p, len(s.Positions)) {
		return s, outOfRange(PositionPath(p))
	}
	positions, err := updateAt(s.Positions, p, fn)
	if err != nil {
		return s, err
	}
	s.Positions = positions
	return s, nil
}

func (s Structure) updateMember(i, j int, fn func(Person) Person) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		members, err := updateAt(g.Members, j, func(m Person) (Person, error) { return fn(m), nil })
		if err != nil {
			return g, outOfRange(MemberPath(i, j))
		}
		g.Members = members
		return g, nil
	})
}

// updateLeader replaces groups[i].Leader, creating an empty leader first when
// the group has none.
func (s Structure) updateLeader(i int, fn func(Person) Person) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		var cur Person
		if g.Leader != nil {
			cur = *g.Leader
		}
		next := fn(cur)
		g.Leader = &next
		return g, nil
	})
}

func (s Structure) updateOccupant(p int, fn func(Person) Person) (Structure, error) {
	return s.updatePosition(p, func(pos Position) (Position, error) {
		pos.Occupant = fn(pos.Occupant)
		return pos, nil
	})
}
