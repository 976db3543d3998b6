// Package dialect holds the target-runtime vocabulary the scope emitter writes:
// context aliases, the nil sentinel, the method donation helper and the
// prefixes used for minted names.
package dialect

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// FileName is the configuration file looked up by Find.
const FileName = "opalscope.toml"

// Dialect is the full emitter vocabulary.
type Dialect struct {
	Emit  Emit  `toml:"emit"`
	Names Names `toml:"names"`
}

// Emit holds the literal snippets spliced into preambles and epilogues.
type Emit struct {
	Self       string `toml:"self"`        // receiver expression
	Nil        string `toml:"nil"`         // sentinel for unset locals and ivars
	ClassAlias string `toml:"class_alias"` // class/module: own object
	ScopeAlias string `toml:"scope_alias"` // class/module/sclass: lexical-scope table
	ProtoAlias string `toml:"proto_alias"` // class/module: definition target
	DefnAlias  string `toml:"defn_alias"`  // other scopes, only when defines_defn is set
	Donate     string `toml:"donate"`      // method donation helper
	IvarPrefix string `toml:"ivar_prefix"` // replaces the leading '@' of an ivar
}

// Names holds prefixes for names the tracker mints.
type Names struct {
	Temp     string `toml:"temp_prefix"`
	Identity string `toml:"identity_prefix"`
}

// Default returns the vocabulary of the stock runtime.
func Default() Dialect {
	return Dialect{
		Emit: Emit{
			Self:       "this",
			Nil:        "nil",
			ClassAlias: "__class = this",
			ScopeAlias: "__scope = this._scope",
			ProtoAlias: "def = this._proto",
			DefnAlias:  "def = (this._isObject ? this._klass._proto : this._proto)",
			Donate:     "__donate",
			IvarPrefix: "_",
		},
		Names: Names{
			Temp:     "__",
			Identity: "TMP_",
		},
	}
}

var jsIdent = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var (
	ErrEmptyField      = errors.New("dialect: empty field")
	ErrPrefixCollision = errors.New("dialect: temp and identity prefixes overlap")
	ErrBadPrefix       = errors.New("dialect: prefix is not a valid identifier start")
)

// Validate checks that the dialect can mint collision-free names.
func (d Dialect) Validate() error {
	required := []struct{ key, value string }{
		{"emit.self", d.Emit.Self},
		{"emit.nil", d.Emit.Nil},
		{"emit.donate", d.Emit.Donate},
		{"names.temp_prefix", d.Names.Temp},
		{"names.identity_prefix", d.Names.Identity},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s", ErrEmptyField, f.key)
		}
	}
	for _, p := range []string{d.Names.Temp, d.Names.Identity} {
		if !jsIdent.MatchString(p) {
			return fmt.Errorf("%w: %q", ErrBadPrefix, p)
		}
	}
	if strings.HasPrefix(d.Names.Temp, d.Names.Identity) || strings.HasPrefix(d.Names.Identity, d.Names.Temp) {
		return fmt.Errorf("%w: %q vs %q", ErrPrefixCollision, d.Names.Temp, d.Names.Identity)
	}
	return nil
}

// IvarAccess renders the member access for an instance variable, e.g.
// "@count" becomes "._count". Names that do not form an identifier fall
// back to bracket access.
func (d Dialect) IvarAccess(ivar string) string {
	bare := strings.TrimPrefix(ivar, "@")
	member := d.Emit.IvarPrefix + bare
	if bare != "" && jsIdent.MatchString(member) {
		return "." + member
	}
	return "['" + strings.ReplaceAll(ivar, "'", `\'`) + "']"
}
