package ast

type (
	// NodeID addresses a node in Builder.Nodes.
	NodeID uint32
	// PayloadID addresses kind-specific data in one of the payload arenas.
	PayloadID uint32
)

const (
	NoNodeID    NodeID    = 0
	NoPayloadID PayloadID = 0
)

func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
