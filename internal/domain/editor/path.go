// internal/domain/editor/path.go
package editor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Section is the top-level list a Path starts in.
type Section uint8

const (
	SectionGroups Section = iota
	SectionPositions
)

// Role selects a child of a group or position.
type Role uint8

const (
	RoleNone Role = iota
	RoleLeader
	RoleMember
	RoleNote
	RoleOccupant
)

// Field selects a scalar field of the addressed node.
type Field uint8

const (
	FieldNone Field = iota
	FieldName
	FieldPhoto
	FieldTitle
)

// ErrInvalidPath is returned by ParsePath for strings that do not follow the
// path convention.
var ErrInvalidPath = errors.New("invalid structure path")

// Path is an index chain that identifies a node in a Structure. Its string
// form (e.g. "groups[2].members[1].photo") is used as the asset key in a
// Submission and as the key of field errors returned by the server.
//
// Sub is only meaningful for RoleMember and RoleNote.
type Path struct {
	Section Section
	Index   int
	Role    Role
	Sub     int
	Field   Field
}

func GroupPath(i int) Path           { return Path{Section: SectionGroups, Index: i} }
func LeaderPath(i int) Path          { return Path{Section: SectionGroups, Index: i, Role: RoleLeader} }
func MemberPath(i, j int) Path       { return Path{Section: SectionGroups, Index: i, Role: RoleMember, Sub: j} }
func NotePath(i, k int) Path         { return Path{Section: SectionGroups, Index: i, Role: RoleNote, Sub: k} }
func PositionPath(p int) Path        { return Path{Section: SectionPositions, Index: p} }
func OccupantPath(p int) Path        { return Path{Section: SectionPositions, Index: p, Role: RoleOccupant} }
func (p Path) WithField(f Field) Path { p.Field = f; return p }

// IsPerson reports whether p addresses a person node (leader, member or
// occupant), ignoring any field.
func (p Path) IsPerson() bool {
	return p.Role == RoleLeader || p.Role == RoleMember || p.Role == RoleOccupant
}

// IsPhoto reports whether p addresses the photo field of a person.
func (p Path) IsPhoto() bool {
	return p.IsPerson() && p.Field == FieldPhoto
}

// Person strips the field, leaving the path of the person node.
func (p Path) Person() Path {
	p.Field = FieldNone
	return p
}

func (p Path) String() string {
	var b strings.Builder
	switch p.Section {
	case SectionPositions:
		b.WriteString("positions[")
	default:
		b.WriteString("groups[")
	}
	b.WriteString(strconv.Itoa(p.Index))
	b.WriteByte(']')

	switch p.Role {
	case RoleLeader:
		b.WriteString(".leader")
	case RoleOccupant:
		b.WriteString(".occupant")
	case RoleMember:
		b.WriteString(".members[")
		b.WriteString(strconv.Itoa(p.Sub))
		b.WriteByte(']')
	case RoleNote:
		b.WriteString(".notes[")
		b.WriteString(strconv.Itoa(p.Sub))
		b.WriteByte(']')
	}

	switch p.Field {
	case FieldName:
		b.WriteString(".name")
	case FieldPhoto:
		b.WriteString(".photo")
	case FieldTitle:
		b.WriteString(".title")
	}
	return b.String()
}

// ParsePath parses the string form produced by Path.String.
func ParsePath(s string) (Path, error) {
	segs := strings.Split(s, ".")
	if len(segs) == 0 || len(segs) > 3 {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}

	var p Path
	name, idx, hasIdx, err := splitSegment(segs[0])
	if err != nil || !hasIdx {
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	switch name {
	case "groups":
		p.Section = SectionGroups
	case "positions":
		p.Section = SectionPositions
	default:
		return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
	}
	p.Index = idx
	rest := segs[1:]

	// optional child segment
	if len(rest) > 0 {
		name, idx, hasIdx, err := splitSegment(rest[0])
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		role := RoleNone
		switch {
		case p.Section == SectionGroups && name == "leader" && !hasIdx:
			role = RoleLeader
		case p.Section == SectionGroups && name == "members" && hasIdx:
			role = RoleMember
		case p.Section == SectionGroups && name == "notes" && hasIdx:
			role = RoleNote
		case p.Section == SectionPositions && name == "occupant" && !hasIdx:
			role = RoleOccupant
		}
		if role != RoleNone {
			p.Role = role
			p.Sub = idx
			rest = rest[1:]
		}
	}

	// optional field segment
	if len(rest) > 0 {
		if len(rest) > 1 {
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
		switch {
		case rest[0] == "name" && (p.IsPerson() || (p.Section == SectionGroups && p.Role == RoleNone)):
			p.Field = FieldName
		case rest[0] == "photo" && p.IsPerson():
			p.Field = FieldPhoto
		case rest[0] == "title" && p.Section == SectionPositions && p.Role == RoleNone:
			p.Field = FieldTitle
		default:
			return Path{}, fmt.Errorf("%w: %q", ErrInvalidPath, s)
		}
	}
	return p, nil
}

// splitSegment splits "members[3]" into ("members", 3, true).
func splitSegment(seg string) (name string, idx int, hasIdx bool, err error) {
	open := strings.IndexByte(seg, '[')
	if open < 0 {
		if seg == "" {
			return "", 0, false, ErrInvalidPath
		}
		return seg, 0, false, nil
	}
	if !strings.HasSuffix(seg, "]") || open == 0 {
		return "", 0, false, ErrInvalidPath
	}
	digits := seg[open+1 : len(seg)-1]
	if digits == "" || (len(digits) > 1 && digits[0] == '0') {
		return "", 0, false, ErrInvalidPath
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return "", 0, false, ErrInvalidPath
		}
	}
	n, convErr := strconv.Atoi(digits)
	if convErr != nil {
		return "", 0, false, ErrInvalidPath
	}
	return seg[:open], n, true, nil
}
