package replay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"opalscope/internal/diag"
	"opalscope/internal/dialect"
	"opalscope/internal/scope"
	"opalscope/internal/trace"
)

// Options configures a replay.
type Options struct {
	Dialect        *dialect.Dialect
	Indent         string // indent unit, repeated per nesting level for ivar guards
	MaxDiagnostics int
}

// Record is the rendered output of one scope, in the order scopes were left.
type Record struct {
	Scope    scope.ID
	Kind     scope.Kind
	Name     string
	Line     int // line of the enter directive, 0 for the root
	Preamble string
	Donation string
}

// Query is the answer to a directive that asks the tracker something.
type Query struct {
	Line   int
	Scope  scope.ID
	Op     Op
	Result string
}

// Result collects everything a replay produced.
type Result struct {
	Tree        *scope.Tree
	Records     []Record
	Queries     []Query
	Diagnostics *diag.Bag
}

type frame struct {
	id     scope.ID
	line   int
	labels map[string]string
}

type runner struct {
	tree   *scope.Tree
	opts   Options
	stack  []frame
	result *Result
}

// RunScript parses and replays a script. Parse errors stop the run before
// any scope is created.
func RunScript(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", 0)
	bag := diag.NewBag(opts.MaxDiagnostics)
	directives, err := Parse(r, bag)
	parseSpan.WithExtra("directives", strconv.Itoa(len(directives))).End("")
	if err != nil {
		return nil, err
	}
	if bag.HasErrors() {
		bag.Sort()
		return &Result{Diagnostics: bag}, nil
	}
	return Run(ctx, directives, opts)
}

// Run replays parsed directives against a fresh tree.
func Run(ctx context.Context, directives []Directive, opts Options) (*Result, error) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "replay", 0)
	defer span.End("")

	tree := scope.NewTree(scope.Options{Dialect: opts.Dialect, Tracer: tracer, Parent: span.ID()})
	defer tree.Close()

	r := &runner{
		tree:   tree,
		opts:   opts,
		result: &Result{Tree: tree, Diagnostics: diag.NewBag(opts.MaxDiagnostics)},
	}
	r.push(tree.New(scope.KindTop, scope.NoID), 0)

	for _, d := range directives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r.exec(d)
	}

	for len(r.stack) > 1 {
		top := r.current()
		r.report(diag.NewError(diag.ScrUnclosedScope, top.line,
			fmt.Sprintf("%s scope opened here was never left", tree.Get(top.id).Kind)))
		r.leave(0)
	}
	r.leave(0)
	r.result.Diagnostics.Sort()
	return r.result, nil
}

func (r *runner) push(id scope.ID, line int) {
	r.stack = append(r.stack, frame{id: id, line: line, labels: make(map[string]string)})
}

func (r *runner) current() *frame { return &r.stack[len(r.stack)-1] }

func (r *runner) report(d diag.Diagnostic) {
	r.result.Diagnostics.Add(d)
}

// exec runs one directive, turning tracker contract panics into
// diagnostics.
func (r *runner) exec(d Directive) {
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		var cerr *scope.ContractError
		err, ok := rec.(error)
		if !ok || !errors.As(err, &cerr) {
			panic(rec)
		}
		r.report(diag.NewError(contractCode(cerr), d.Line, cerr.Error()))
	}()

	fr := r.current()
	id := fr.id
	sc := r.tree.Get(id)

	switch d.Op {
	case OpEnter:
		child := r.tree.New(d.Kind, id)
		if name := d.Arg(1); name != "" {
			cs := r.tree.Get(child)
			if d.Kind == scope.KindDef {
				cs.SetMethodID(name)
			}
			cs.Name = name
		}
		r.push(child, d.Line)
	case OpLeave:
		if len(r.stack) == 1 {
			r.report(diag.NewError(diag.ScrLeaveAtRoot, d.Line, "leave without a matching enter"))
			return
		}
		r.leave(d.Line)
	case OpLocal:
		r.tree.DeclareLocal(id, d.Arg(0))
	case OpArg:
		sc.AddArg(d.Arg(0))
	case OpIvar:
		sc.AddIvar(d.Arg(0))
	case OpTemp:
		label := d.Arg(0)
		if name, live := fr.labels[label]; live {
			r.report(diag.NewError(diag.ScrLabelReused, d.Line,
				fmt.Sprintf("%s still holds %s; queue it first", label, name)))
			return
		}
		fr.labels[label] = sc.NewTemp()
	case OpQueue:
		label := d.Arg(0)
		name, ok := fr.labels[label]
		if !ok {
			r.report(diag.NewError(diag.ScrUnknownLabel, d.Line, fmt.Sprintf("unknown temp label %s", label)))
			return
		}
		delete(fr.labels, label)
		sc.QueueTemp(name)
	case OpFixed:
		sc.AddTemp(d.Arg(0))
	case OpUsesBlock:
		r.tree.UsesBlock(id)
	case OpCatchesBreak:
		r.tree.CatchesBreak(id)
	case OpIdentify:
		r.query(d, r.tree.Identify(id))
	case OpIdentifyDef:
		r.tree.IdentifyDef(id)
	case OpSuper:
		r.query(d, r.tree.SuperChain(id).String())
	case OpMethod:
		sc.AddMethod(d.Arg(0))
	case OpDefn:
		sc.DefinesDefn = true
	case OpDefs:
		sc.DefinesDefs = true
	case OpDonates:
		sc.DonatesMethods = true
	case OpBlockName:
		sc.BlockName = d.Arg(0)
	case OpWhile:
		sc.PushWhile().Label = d.Arg(0)
	case OpEndWhile:
		sc.PopWhile()
	case OpHas:
		r.query(d, strconv.FormatBool(r.tree.HasLocal(id, d.Arg(0))))
	default:
		r.report(diag.NewError(diag.ScrUnknownDirective, d.Line, fmt.Sprintf("directive %s cannot be replayed", d.Op)))
	}
}

func (r *runner) query(d Directive, result string) {
	r.result.Queries = append(r.result.Queries, Query{
		Line:   d.Line,
		Scope:  r.current().id,
		Op:     d.Op,
		Result: result,
	})
}

// leave renders the current scope and pops it.
func (r *runner) leave(line int) {
	fr := r.current()
	sc := r.tree.Get(fr.id)
	if sc.InWhile() {
		r.report(diag.New(diag.SevWarning, diag.ObsOpenLoop, line,
			fmt.Sprintf("%s scope rendered with %d open loop(s)", sc.Kind, sc.LoopDepth())))
	}
	indent := strings.Repeat(r.opts.Indent, len(r.stack))
	rec := Record{
		Scope:    fr.id,
		Kind:     sc.Kind,
		Name:     sc.Name,
		Line:     fr.line,
		Preamble: r.tree.RenderPreamble(fr.id, indent),
	}
	if sc.IsClassScope() {
		rec.Donation = r.tree.RenderDonation(fr.id, indent)
	}
	r.result.Records = append(r.result.Records, rec)
	r.stack = r.stack[:len(r.stack)-1]
}

func contractCode(err *scope.ContractError) diag.Code {
	switch {
	case errors.Is(err, scope.ErrLoopUnderflow):
		return diag.ScpLoopUnderflow
	case errors.Is(err, scope.ErrForeignTemp):
		return diag.ScpForeignTemp
	case errors.Is(err, scope.ErrTempQueued):
		return diag.ScpTempQueued
	default:
		return diag.ScpContract
	}
}

// WriteTo renders the records, then the queries, as plain text.
func (res *Result) WriteTo(w io.Writer) (int64, error) {
	var sb strings.Builder
	for _, rec := range res.Records {
		header := fmt.Sprintf("%s#%d", rec.Kind, rec.Scope)
		if rec.Name != "" {
			header += " " + rec.Name
		}
		sb.WriteString("== " + header + "\n")
		if rec.Preamble != "" {
			sb.WriteString(rec.Preamble)
			if !strings.HasSuffix(rec.Preamble, "\n") {
				sb.WriteString("\n")
			}
		}
		if rec.Donation != "" {
			sb.WriteString(rec.Donation + "\n")
		}
	}
	for _, q := range res.Queries {
		fmt.Fprintf(&sb, "-- %s@%d: %s\n", q.Op, q.Line, q.Result)
	}
	n, err := io.WriteString(w, sb.String())
	return int64(n), err
}
