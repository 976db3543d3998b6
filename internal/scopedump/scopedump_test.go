package scopedump

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"

	"opalscope/internal/scope"
)

func buildTree() *scope.Tree {
	tree := scope.NewTree(scope.Options{})
	top := tree.New(scope.KindTop, scope.NoID)
	class := tree.New(scope.KindClass, top)
	tree.Get(class).Name = "Größe"
	tree.Get(class).AddMethod("area")
	def := tree.New(scope.KindDef, class)
	d := tree.Get(def)
	d.SetMethodID("area")
	d.AddArg("scale")
	d.AddLocal("w")
	tmp := d.NewTemp()
	d.QueueTemp(tmp)
	d.PushWhile()
	iter := tree.New(scope.KindIter, def)
	tree.UsesBlock(iter)
	tree.RenderPreamble(iter, "")
	return tree
}

func TestSnapshotRoundTrip(t *testing.T) {
	snap, err := FromTree(buildTree(), "shapes.scope")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Scopes) != 4 || snap.Identities != 1 {
		t.Fatalf("unexpected snapshot header: %d scopes, %d identities", len(snap.Scopes), snap.Identities)
	}
	def := snap.Scopes[2]
	if def.Depth != 2 || def.MethodID != "area" || !def.UsesBlock || def.Identity != "TMP_1" || def.LoopDepth != 1 {
		t.Fatalf("unexpected def snapshot %+v", def)
	}
	if !reflect.DeepEqual(def.FreeTemps, []string{"__a"}) {
		t.Fatalf("free temps lost: %v", def.FreeTemps)
	}
	if !snap.Scopes[3].Rendered {
		t.Fatalf("iter was rendered")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(got, snap) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, snap)
	}
}

func TestDecodeRejectsSchema(t *testing.T) {
	var buf bytes.Buffer
	if err := msgpack.NewEncoder(&buf).Encode(&Snapshot{Schema: 99}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
}

func TestWriteTextAligns(t *testing.T) {
	snap, err := FromTree(buildTree(), "")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteText(&buf, snap, false); err != nil {
		t.Fatalf("write: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %q", buf.String())
	}
	if !strings.HasPrefix(lines[0], "#1 top") || !strings.HasPrefix(lines[3], "      #4 iter") {
		t.Fatalf("unexpected indentation:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "Größe") || !strings.Contains(lines[1], "methods=area") {
		t.Fatalf("class row incomplete: %q", lines[1])
	}
	if !strings.Contains(lines[2], "uses_block,loops=1") || !strings.Contains(lines[2], "args=scale") {
		t.Fatalf("def row incomplete: %q", lines[2])
	}

	// Label column starts at the same offset on the class and def rows.
	if a, b := strings.Index(lines[1], "Größe"), strings.Index(lines[2], "area"); a != b {
		t.Fatalf("label column misaligned (%d vs %d):\n%s", a, b, buf.String())
	}
	// Identity column follows a label padded by display width, not bytes.
	if a, b := strings.Index(lines[1], "Größe  -"), strings.Index(lines[2], "area   TMP_1"); a < 0 || b < 0 {
		t.Fatalf("identity column misaligned:\n%s", buf.String())
	}
}
