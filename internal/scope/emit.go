package scope

import (
	"fmt"
	"strconv"
	"strings"

	"opalscope/internal/dialect"
)

// RenderPreamble renders the declarations that open the construct at id:
// context aliases, one var statement for locals and temps, and a guarded
// initialiser per instance variable, each guard preceded by indent.
func (t *Tree) RenderPreamble(id ID, indent string) string {
	sc := t.Get(id)
	if sc == nil {
		return ""
	}
	d := t.dialect

	vars := aliases(sc, d)
	for _, l := range sc.locals.items {
		vars = append(vars, l+" = "+d.Emit.Nil)
	}
	vars = append(vars, sc.temps...)

	var res string
	if len(vars) > 0 {
		res = "var " + strings.Join(vars, ", ") + "; "
	}

	if !sc.rendered {
		sc.rendered = true
		sc.span.WithExtra("locals", strconv.Itoa(sc.locals.len())).
			WithExtra("temps", strconv.Itoa(len(sc.temps))).
			WithExtra("ivars", strconv.Itoa(sc.ivars.len())).
			End("rendered")
	}

	if sc.ivars.len() == 0 {
		return res
	}
	guards := make([]string, 0, sc.ivars.len())
	for _, iv := range sc.ivars.items {
		slot := d.Emit.Self + d.IvarAccess(iv)
		guards = append(guards, fmt.Sprintf("if (%s == null) %s = %s;\n", slot, slot, d.Emit.Nil))
	}
	return res + "\n" + indent + strings.Join(guards, indent)
}

func aliases(sc *Scope, d dialect.Dialect) []string {
	switch sc.Kind {
	case KindClass, KindModule:
		return []string{d.Emit.ClassAlias, d.Emit.ScopeAlias, d.Emit.ProtoAlias}
	case KindSClass:
		return []string{d.Emit.ScopeAlias}
	case KindTop, KindDef, KindIter:
		if sc.DefinesDefn {
			return []string{d.Emit.DefnAlias}
		}
		return nil
	case KindInvalid:
		return nil
	default:
		panic(fmt.Sprintf("scope: unhandled kind %d", sc.Kind))
	}
}

// RenderDonation renders the statement registering the methods defined in
// the body at id for later mixing into includers. It is empty when the body
// defines no methods.
func (t *Tree) RenderDonation(id ID, indent string) string {
	sc := t.Get(id)
	if sc == nil || sc.methods.len() == 0 {
		return ""
	}
	quoted := make([]string, 0, sc.methods.len())
	for _, m := range sc.methods.items {
		quoted = append(quoted, strconv.Quote(m))
	}
	d := t.dialect
	return fmt.Sprintf("%s;%s(%s, [%s]);", indent, d.Emit.Donate, d.Emit.Self, strings.Join(quoted, ", "))
}
