package block

import (
	"fmt"

	"github.com/sgsh/negotiate/binary"
	"github.com/sgsh/negotiate/graph"
	"github.com/sgsh/negotiate/side"
)

// wire sizes, fixed so a decoder can validate a declared count before
// trusting it to size an allocation (spec §4.2).
const (
	headerSize = 8 * 4 // Version, NNodes, NEdges, InitiatorPid, Flag, SerialNo, Origin.Index, Origin.Side
	nodeSize   = 4 + 4 + graph.NameLen + 4 + 4 + 1 + 1
	edgeSize   = 4 + 4 + 4

	// maxNodes/maxEdges bound a declared count against a buffer this
	// implementation would ever plausibly allocate for a pipeline's worth
	// of tools, catching a corrupt or adversarial header before it is used
	// to size a slice.
	maxNodes = 4096
	maxEdges = 4096
)

var msb = binary.Msb

// Marshal appends the wire encoding of b to dst and returns the result.
func (b *Block) Marshal(dst []byte) []byte {
	dst = msb.AppendUint32(dst, uint32(b.Version))
	dst = msb.AppendUint32(dst, uint32(len(b.Nodes)))
	dst = msb.AppendUint32(dst, uint32(len(b.Edges)))
	dst = msb.AppendInt32(dst, b.InitiatorPid)
	dst = msb.AppendUint32(dst, uint32(b.Flag))
	dst = msb.AppendInt32(dst, b.SerialNo)
	dst = msb.AppendInt32(dst, b.Origin.Index)
	dst = msb.AppendUint32(dst, uint32(b.Origin.Side))

	for _, n := range b.Nodes {
		dst = marshalNode(dst, n)
	}
	for _, e := range b.Edges {
		dst = marshalEdge(dst, e)
	}
	return dst
}

// Unmarshal decodes a Block from the front of buf, returning the number of
// bytes consumed. buf may carry trailing bytes belonging to the next block
// on the same stream; Unmarshal never reads past what its own header says
// it should.
func (b *Block) Unmarshal(buf []byte) (n int, err error) {
	if len(buf) < headerSize {
		return 0, ErrShort
	}

	version := int32(msb.Uint32(buf[0:4]))
	nNodes := int32(msb.Uint32(buf[4:8]))
	nEdges := int32(msb.Uint32(buf[8:12]))
	if version != WireVersion {
		return 0, fmt.Errorf("%w: version %d, want %d", ErrOversize, version, WireVersion)
	}
	if nNodes < 0 || nNodes > maxNodes || nEdges < 0 || nEdges > maxEdges {
		return 0, fmt.Errorf("%w: %d nodes, %d edges", ErrOversize, nNodes, nEdges)
	}

	want := headerSize + int(nNodes)*nodeSize + int(nEdges)*edgeSize
	if len(buf) < want {
		return 0, ErrShort
	}

	flag := Flag(msb.Uint32(buf[16:20]))
	if !flag.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrFlag, flag)
	}

	b.Version = version
	b.InitiatorPid = msb.Int32(buf[12:16])
	b.Flag = flag
	b.SerialNo = msb.Int32(buf[20:24])
	b.Origin = DispatcherTag{
		Index: msb.Int32(buf[24:28]),
		Side:  side.Side(msb.Uint32(buf[28:32])),
	}

	off := headerSize
	b.Nodes = make([]graph.Node, nNodes)
	for i := range b.Nodes {
		unmarshalNode(buf[off:off+nodeSize], &b.Nodes[i])
		off += nodeSize
	}

	b.Edges = make([]graph.Edge, nEdges)
	for i := range b.Edges {
		unmarshalEdge(buf[off:off+edgeSize], &b.Edges[i])
		off += edgeSize
	}

	return want, nil
}

func marshalNode(dst []byte, n graph.Node) []byte {
	dst = msb.AppendInt32(dst, n.Pid)
	dst = msb.AppendInt32(dst, n.Index)

	var name [graph.NameLen]byte
	copy(name[:], n.Name)
	dst = append(dst, name[:]...)

	dst = msb.AppendInt32(dst, n.Requires)
	dst = msb.AppendInt32(dst, n.Provides)
	dst = append(dst, boolByte(n.SgshIn), boolByte(n.SgshOut))
	return dst
}

func unmarshalNode(buf []byte, n *graph.Node) {
	n.Pid = msb.Int32(buf[0:4])
	n.Index = msb.Int32(buf[4:8])

	nameEnd := 8 + graph.NameLen
	name := buf[8:nameEnd]
	if z := indexZero(name); z >= 0 {
		name = name[:z]
	}
	n.Name = string(name)

	n.Requires = msb.Int32(buf[nameEnd : nameEnd+4])
	n.Provides = msb.Int32(buf[nameEnd+4 : nameEnd+8])
	n.SgshIn = buf[nameEnd+8] != 0
	n.SgshOut = buf[nameEnd+9] != 0
}

func marshalEdge(dst []byte, e graph.Edge) []byte {
	dst = msb.AppendInt32(dst, e.From)
	dst = msb.AppendInt32(dst, e.To)
	dst = msb.AppendInt32(dst, e.Instances)
	return dst
}

func unmarshalEdge(buf []byte, e *graph.Edge) {
	e.From = msb.Int32(buf[0:4])
	e.To = msb.Int32(buf[4:8])
	e.Instances = msb.Int32(buf[8:12])
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}

func indexZero(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return -1
}
