// Package replay drives a scope.Tree from a line-oriented script of
// generator calls. It stands in for the code generator when testing or
// inspecting the tracker without a parser.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"opalscope/internal/diag"
	"opalscope/internal/scope"
)

// Op is one generator call.
type Op uint8

const (
	OpInvalid Op = iota
	OpEnter
	OpLeave
	OpLocal
	OpArg
	OpIvar
	OpTemp
	OpQueue
	OpFixed
	OpUsesBlock
	OpCatchesBreak
	OpIdentify
	OpIdentifyDef
	OpSuper
	OpMethod
	OpDefn
	OpDefs
	OpDonates
	OpBlockName
	OpWhile
	OpEndWhile
	OpHas
)

type opInfo struct {
	name    string
	minArgs int
	maxArgs int
}

var ops = [...]opInfo{
	OpInvalid:      {"invalid", 0, 0},
	OpEnter:        {"enter", 1, 2},
	OpLeave:        {"leave", 0, 0},
	OpLocal:        {"local", 1, 1},
	OpArg:          {"arg", 1, 1},
	OpIvar:         {"ivar", 1, 1},
	OpTemp:         {"temp", 1, 1},
	OpQueue:        {"queue", 1, 1},
	OpFixed:        {"fixed", 1, 1},
	OpUsesBlock:    {"uses_block", 0, 0},
	OpCatchesBreak: {"catches_break", 0, 0},
	OpIdentify:     {"identify", 0, 0},
	OpIdentifyDef:  {"identify_def", 0, 0},
	OpSuper:        {"super", 0, 0},
	OpMethod:       {"method", 1, 1},
	OpDefn:         {"defn", 0, 0},
	OpDefs:         {"defs", 0, 0},
	OpDonates:      {"donates", 0, 0},
	OpBlockName:    {"block_name", 1, 1},
	OpWhile:        {"while", 0, 1},
	OpEndWhile:     {"endwhile", 0, 0},
	OpHas:          {"has", 1, 1},
}

var opByName = func() map[string]Op {
	m := make(map[string]Op, len(ops))
	for op, info := range ops {
		if Op(op) != OpInvalid {
			m[info.name] = Op(op)
		}
	}
	return m
}()

func (o Op) String() string {
	if int(o) < len(ops) {
		return ops[o].name
	}
	return "invalid"
}

// Directive is one parsed script line.
type Directive struct {
	Line int
	Op   Op
	Args []string
	Kind scope.Kind // OpEnter only
}

// Arg returns the i-th argument or "".
func (d Directive) Arg(i int) string {
	if i < len(d.Args) {
		return d.Args[i]
	}
	return ""
}

// Parse reads a script. Problems are reported into bag; lines that fail to
// parse are dropped.
func Parse(r io.Reader, bag *diag.Bag) ([]Directive, error) {
	var out []Directive
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		if d, ok := parseLine(line, fields, bag); ok {
			out = append(out, d)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return out, nil
}

func parseLine(line int, fields []string, bag *diag.Bag) (Directive, bool) {
	op, ok := opByName[fields[0]]
	if !ok {
		bag.Add(diag.NewError(diag.ScrUnknownDirective, line, fmt.Sprintf("unknown directive %q", fields[0])))
		return Directive{}, false
	}
	info := ops[op]
	args := fields[1:]
	switch {
	case len(args) < info.minArgs:
		bag.Add(diag.NewError(diag.ScrMissingArgument, line, fmt.Sprintf("%s expects at least %d argument(s)", info.name, info.minArgs)))
		return Directive{}, false
	case len(args) > info.maxArgs:
		bag.Add(diag.NewError(diag.ScrExtraArgument, line, fmt.Sprintf("%s expects at most %d argument(s)", info.name, info.maxArgs)))
		return Directive{}, false
	}

	d := Directive{Line: line, Op: op, Args: args}
	switch op {
	case OpEnter:
		kind, err := scope.ParseKind(args[0])
		if err == nil && kind == scope.KindTop {
			err = fmt.Errorf("the top-level scope is implicit")
		}
		if err != nil {
			bag.Add(diag.NewError(diag.ScrBadKind, line, err.Error()))
			return Directive{}, false
		}
		d.Kind = kind
	case OpTemp, OpQueue:
		if !strings.HasPrefix(args[0], "$") || len(args[0]) < 2 {
			bag.Add(diag.NewError(diag.ScrMissingArgument, line, fmt.Sprintf("%s expects a $label, got %q", info.name, args[0])))
			return Directive{}, false
		}
	}
	return d, true
}
