package ast

import (
	"calvin/internal/source"
	"calvin/internal/types"
)

// NewList allocates an empty list typed as the child-less list.
func (b *Builder) NewList(sp source.Span) NodeID {
	p := b.Lists.Allocate(ListData{})
	return b.newNode(KindList, b.Types.Builtins().List, sp, p)
}

// NewListOf allocates a list holding first; its type is a list of first's type.
func (b *Builder) NewListOf(first NodeID, sp source.Span) NodeID {
	id := b.NewList(sp)
	b.Append(id, first)
	return id
}

// Append adds member and returns its index, or -1 if id is not a list.
// The first member fixes the list's type.
func (b *Builder) Append(id, member NodeID) int {
	l := b.List(id)
	if l == nil || !member.IsValid() {
		return -1
	}
	l.Members = append(l.Members, member)
	if len(l.Members) == 1 {
		b.Retype(id, types.Promote(b.TypeOf(member)))
	}
	return len(l.Members) - 1
}

// Extend moves every member of src to the end of dst and empties src.
func (b *Builder) Extend(dst, src NodeID) {
	s := b.List(src)
	if s == nil || b.List(dst) == nil {
		return
	}
	moved := s.Members
	s.Members = nil
	for _, m := range moved {
		b.Append(dst, m)
	}
}

func (b *Builder) Members(id NodeID) []NodeID {
	if l := b.List(id); l != nil {
		return l.Members
	}
	return nil
}

func (b *Builder) Len(id NodeID) int {
	return len(b.Members(id))
}

// At returns the i-th member or NoNodeID.
func (b *Builder) At(id NodeID, i int) NodeID {
	m := b.Members(id)
	if i < 0 || i >= len(m) {
		return NoNodeID
	}
	return m[i]
}

// Replace swaps the i-th member.
func (b *Builder) Replace(id NodeID, i int, member NodeID) bool {
	l := b.List(id)
	if l == nil || i < 0 || i >= len(l.Members) {
		return false
	}
	l.Members[i] = member
	return true
}
