// Package trace records what the scope tracker does while code is generated.
//
// Events are grouped by granularity:
//
//   - ScopeSession: one compilation (one scope tree)
//   - ScopePass: harness passes such as parsing a replay script or rendering
//   - ScopeConstruct: one lexical construct, from scope creation to render
//   - ScopeOp: single tracker operations (identify, uses_block, super_chain)
//
// Verbosity is controlled by Level. A tracer travels through the pipeline in a
// context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "replay", 0)
//	defer span.End("")
package trace
