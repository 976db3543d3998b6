// Package scopedump captures the state of a scope tree after a replay so it
// can be stored (msgpack) or inspected (aligned text).
package scopedump

import (
	"errors"
	"fmt"
	"io"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"opalscope/internal/scope"
)

// SchemaVersion is bumped whenever Snapshot changes shape.
const SchemaVersion uint16 = 1

var ErrSchema = errors.New("scopedump: unsupported schema version")

// Snapshot is a frozen copy of a whole tree.
type Snapshot struct {
	Schema     uint16  `msgpack:"schema"`
	Source     string  `msgpack:"source,omitempty"`
	Identities uint64  `msgpack:"identities"`
	Scopes     []Scope `msgpack:"scopes"`
}

// Scope is a frozen copy of one scope.
type Scope struct {
	ID             uint32   `msgpack:"id"`
	Parent         uint32   `msgpack:"parent,omitempty"`
	Depth          uint16   `msgpack:"depth"`
	Kind           string   `msgpack:"kind"`
	Name           string   `msgpack:"name,omitempty"`
	MethodID       string   `msgpack:"mid,omitempty"`
	BlockName      string   `msgpack:"block_name,omitempty"`
	Identity       string   `msgpack:"identity,omitempty"`
	Locals         []string `msgpack:"locals,omitempty"`
	Args           []string `msgpack:"args,omitempty"`
	Ivars          []string `msgpack:"ivars,omitempty"`
	Temps          []string `msgpack:"temps,omitempty"`
	FreeTemps      []string `msgpack:"free_temps,omitempty"`
	Methods        []string `msgpack:"methods,omitempty"`
	UsesBlock      bool     `msgpack:"uses_block,omitempty"`
	CatchesBreak   bool     `msgpack:"catches_break,omitempty"`
	DefinesDefn    bool     `msgpack:"defines_defn,omitempty"`
	DefinesDefs    bool     `msgpack:"defines_defs,omitempty"`
	DonatesMethods bool     `msgpack:"donates_methods,omitempty"`
	LoopDepth      uint16   `msgpack:"loop_depth,omitempty"`
	Rendered       bool     `msgpack:"rendered,omitempty"`
}

// FromTree copies every scope of tree in arena order.
func FromTree(tree *scope.Tree, source string) (Snapshot, error) {
	snap := Snapshot{
		Schema:     SchemaVersion,
		Source:     source,
		Identities: tree.Identities(),
	}
	depths := make(map[scope.ID]uint16, tree.Len())
	for i := range tree.Data() {
		sc := &tree.Data()[i]
		var depth uint16
		if sc.Parent.IsValid() {
			depth = depths[sc.Parent] + 1
		}
		depths[sc.ID()] = depth

		loops, err := safecast.Conv[uint16](sc.LoopDepth())
		if err != nil {
			return Snapshot{}, fmt.Errorf("scope %d: loop depth: %w", sc.ID(), err)
		}
		identity, _ := sc.Identity()
		snap.Scopes = append(snap.Scopes, Scope{
			ID:             uint32(sc.ID()),
			Parent:         uint32(sc.Parent),
			Depth:          depth,
			Kind:           sc.Kind.String(),
			Name:           sc.Name,
			MethodID:       sc.MethodID(),
			BlockName:      sc.BlockName,
			Identity:       identity,
			Locals:         sc.Locals(),
			Args:           sc.Args(),
			Ivars:          sc.Ivars(),
			Temps:          sc.Temps(),
			FreeTemps:      sc.FreeTemps(),
			Methods:        sc.Methods(),
			UsesBlock:      sc.UsesBlock(),
			CatchesBreak:   sc.CatchesBreak(),
			DefinesDefn:    sc.DefinesDefn,
			DefinesDefs:    sc.DefinesDefs,
			DonatesMethods: sc.DonatesMethods,
			LoopDepth:      loops,
			Rendered:       sc.Rendered(),
		})
	}
	return snap, nil
}

// Encode writes snap as msgpack.
func Encode(w io.Writer, snap Snapshot) error {
	return msgpack.NewEncoder(w).Encode(&snap)
}

// Decode reads a msgpack snapshot and checks its schema.
func Decode(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Schema != SchemaVersion {
		return Snapshot{}, fmt.Errorf("%w: %d", ErrSchema, snap.Schema)
	}
	return snap, nil
}
