package dialect

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default dialect invalid: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Dialect)
		want   error
	}{
		{"empty nil", func(d *Dialect) { d.Emit.Nil = " " }, ErrEmptyField},
		{"empty temp prefix", func(d *Dialect) { d.Names.Temp = "" }, ErrEmptyField},
		{"overlapping prefixes", func(d *Dialect) { d.Names.Identity = "__id" }, ErrPrefixCollision},
		{"bad prefix", func(d *Dialect) { d.Names.Temp = "9x" }, ErrBadPrefix},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Default()
			tc.mutate(&d)
			if err := d.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestIvarAccess(t *testing.T) {
	d := Default()
	cases := map[string]string{
		"@count": "._count",
		"@a_b":   "._a_b",
		"@":      "['@']",
		"@ü":     "['@ü']",
	}
	for in, want := range cases {
		if got := d.IvarAccess(in); got != want {
			t.Fatalf("IvarAccess(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDecodeKeepsDefaults(t *testing.T) {
	d, err := Decode(strings.NewReader("[emit]\nnil = \"Opal.nil\"\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d.Emit.Nil != "Opal.nil" {
		t.Fatalf("override lost: %q", d.Emit.Nil)
	}
	if d.Emit.Donate != "__donate" || d.Names.Temp != "__" {
		t.Fatalf("defaults lost: %+v", d)
	}
}

func TestDecodeRejectsUnknownKeys(t *testing.T) {
	_, err := Decode(strings.NewReader("[emit]\nbogus = 1\n"))
	if err == nil || !strings.Contains(err.Error(), "emit.bogus") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDecodeValidates(t *testing.T) {
	_, err := Decode(strings.NewReader("[names]\ntemp_prefix = \"TMP\"\n"))
	if !errors.Is(err, ErrPrefixCollision) {
		t.Fatalf("expected prefix collision, got %v", err)
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Default()
	want.Emit.Nil = "Opal.nil"
	if err := want.Encode(&buf); err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got != want {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestResolveFindsNearestFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := filepath.Join(root, FileName)
	if err := os.WriteFile(cfg, []byte("[emit]\nself = \"self\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	d, path, err := Resolve("", nested)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != cfg || d.Emit.Self != "self" {
		t.Fatalf("unexpected resolve result %q %+v", path, d.Emit)
	}
}

func TestResolveFallsBackToDefault(t *testing.T) {
	d, path, err := Resolve("", t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if path != "" && !strings.HasSuffix(path, FileName) {
		t.Fatalf("unexpected path %q", path)
	}
	if path == "" && d != Default() {
		t.Fatalf("expected default dialect")
	}
}
