package scope

import "fmt"

// Kind enumerates the lexical constructs that own a scope.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindTop          // file top level
	KindDef          // method body
	KindClass        // class body
	KindModule       // module body
	KindSClass       // singleton-class body (class << obj)
	KindIter         // block/iterator body
)

func (k Kind) String() string {
	switch k {
	case KindTop:
		return "top"
	case KindDef:
		return "def"
	case KindClass:
		return "class"
	case KindModule:
		return "module"
	case KindSClass:
		return "sclass"
	case KindIter:
		return "iter"
	default:
		return "invalid"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "top":
		return KindTop, nil
	case "def":
		return KindDef, nil
	case "class":
		return KindClass, nil
	case "module":
		return KindModule, nil
	case "sclass":
		return KindSClass, nil
	case "iter":
		return KindIter, nil
	default:
		return KindInvalid, fmt.Errorf("unknown scope kind %q (expected: top|def|class|module|sclass|iter)", s)
	}
}

// IsClassBody reports whether the kind is a class or module body.
func (k Kind) IsClassBody() bool { return k == KindClass || k == KindModule }
