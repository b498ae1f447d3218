// Package graph models the sgsh negotiation graph: the tools (nodes) and
// the pipe connections between them (edges), plus the registry that grows
// the graph as message blocks circulate during negotiation.
package graph

// Unlimited is the sentinel capacity meaning "any number of connections is
// acceptable on this side", used in place of a non-negative channel count.
const Unlimited = -1

// NameLen bounds Node.Name, matching the fixed-size char[100] of the
// original C sgsh_node so the struct stays memcpy-compatible on the wire.
const NameLen = 100

// Node represents one tool instance taking part in the sgsh graph.
type Node struct {
	Pid   int32 // process identifier
	Index int32 // position in the shared node list; -1 until inserted

	Name string // human-readable tool name, truncated to NameLen on the wire

	// Requires is the declared input capacity (non-negative, or Unlimited).
	Requires int32

	// Provides is the declared output capacity (non-negative, or Unlimited).
	Provides int32

	SgshIn  bool // true iff this tool's standard input is sgsh-active
	SgshOut bool // true iff this tool's standard output is sgsh-active
}

// NewNode builds a Node for tool name with the given capacities. Index is
// -1 until the node is inserted into a Registry.
func NewNode(pid int32, name string, requires, provides int32, sgshIn, sgshOut bool) Node {
	if len(name) > NameLen-1 {
		name = name[:NameLen-1]
	}
	return Node{
		Pid:      pid,
		Index:    -1,
		Name:     name,
		Requires: requires,
		Provides: provides,
		SgshIn:   sgshIn,
		SgshOut:  sgshOut,
	}
}
