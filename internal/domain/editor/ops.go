// internal/domain/editor/ops.go
package editor

// Every operation below returns a new Structure. When the addressed node does
// not exist the receiver is returned unchanged together with an error
// wrapping ErrIndexOutOfRange.

// AddGroup appends an empty group.
func (s Structure) AddGroup() Structure {
	s.Groups = appendTo(s.Groups, Group{})
	return s
}

// RemoveGroup removes groups[i]; later groups move down by one.
func (s Structure) RemoveGroup(i int) (Structure, error) {
	groups, err := removeAt(s.Groups, i)
	if err != nil {
		return s, outOfRange(GroupPath(i))
	}
	s.Groups = groups
	return s, nil
}

// SetGroupName sets groups[i].Name.
func (s Structure) SetGroupName(i int, name string) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		g.Name = name
		return g, nil
	})
}

// SetLeaderName sets the name of groups[i]'s leader, creating the leader if absent.
func (s Structure) SetLeaderName(i int, name string) (Structure, error) {
	return s.updateLeader(i, func(p Person) Person {
		p.Name = name
		return p
	})
}

// SetLeaderPhoto sets the photo of groups[i]'s leader, creating the leader if absent.
func (s Structure) SetLeaderPhoto(i int, photo Photo) (Structure, error) {
	return s.updateLeader(i, func(p Person) Person {
		p.Photo = photo
		return p
	})
}

// RemoveLeader clears groups[i].Leader.
func (s Structure) RemoveLeader(i int) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		g.Leader = nil
		return g, nil
	})
}

// AddMember appends an empty member to groups[i].
func (s Structure) AddMember(i int) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		g.Members = appendTo(g.Members, Person{})
		return g, nil
	})
}

// RemoveMember removes groups[i].members[j]; later members move down by one.
func (s Structure) RemoveMember(i, j int) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		members, err := removeAt(g.Members, j)
		if err != nil {
			return g, outOfRange(MemberPath(i, j))
		}
		g.Members = members
		return g, nil
	})
}

// SetMemberName sets the name of groups[i].members[j].
func (s Structure) SetMemberName(i, j int, name string) (Structure, error) {
	return s.updateMember(i, j, func(p Person) Person {
		p.Name = name
		return p
	})
}

// SetMemberPhoto sets the photo of groups[i].members[j].
func (s Structure) SetMemberPhoto(i, j int, photo Photo) (Structure, error) {
	return s.updateMember(i, j, func(p Person) Person {
		p.Photo = photo
		return p
	})
}

// AddNote appends an empty note to groups[i].
func (s Structure) AddNote(i int) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		g.Notes = appendTo(g.Notes, "")
		return g, nil
	})
}

// RemoveNote removes groups[i].notes[k]; later notes move down by one.
func (s Structure) RemoveNote(i, k int) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		notes, err := removeAt(g.Notes, k)
		if err != nil {
			return g, outOfRange(NotePath(i, k))
		}
		g.Notes = notes
		return g, nil
	})
}

// SetNote sets groups[i].notes[k].
func (s Structure) SetNote(i, k int, value string) (Structure, error) {
	return s.updateGroup(i, func(g Group) (Group, error) {
		notes, err := updateAt(g.Notes, k, func(string) (string, error) { return value, nil })
		if err != nil {
			return g, outOfRange(NotePath(i, k))
		}
		g.Notes = notes
		return g, nil
	})
}

// AddPosition appends an empty standalone position.
func (s Structure) AddPosition() Structure {
	s.Positions = appendTo(s.Positions, Position{})
	return s
}

// RemovePosition removes positions[p]; later positions move down by one.
func (s Structure) RemovePosition(p int) (Structure, error) {
	positions, err := removeAt(s.Positions, p)
	if err != nil {
		return s, outOfRange(PositionPath(p))
	}
	s.Positions = positions
	return s, nil
}

// SetPositionTitle sets positions[p].Title.
func (s Structure) SetPositionTitle(p int, title string) (Structure, error) {
	return s.updatePosition(p, func(pos Position) (Position, error) {
		pos.Title = title
		return pos, nil
	})
}

// SetOccupantName sets the name of the person holding positions[p].
func (s Structure) SetOccupantName(p int, name string) (Structure, error) {
	return s.updateOccupant(p, func(o Person) Person {
		o.Name = name
		return o
	})
}

// SetOccupantPhoto sets the photo of the person holding positions[p].
func (s Structure) SetOccupantPhoto(p int, photo Photo) (Structure, error) {
	return s.updateOccupant(p, func(o Person) Person {
		o.Photo = photo
		return o
	})
}

// SetPhoto sets the photo of the person addressed by path. It is the
// path-driven counterpart of the Set*Photo operations and is what form
// handlers use when a file input only knows its asset key.
func (s Structure) SetPhoto(path Path, photo Photo) (Structure, error) {
	switch {
	case path.Section == SectionGroups && path.Role == RoleLeader:
		return s.SetLeaderPhoto(path.Index, photo)
	case path.Section == SectionGroups && path.Role == RoleMember:
		return s.SetMemberPhoto(path.Index, path.Sub, photo)
	case path.Section == SectionPositions && path.Role == RoleOccupant:
		return s.SetOccupantPhoto(path.Index, photo)
	}
	return s, outOfRange(path)
}
