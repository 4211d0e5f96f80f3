package dump

import (
	"fmt"
	"io"

	"github.com/viant/jsoracle/semantic"
)

// ScopeDumper renders the binding graph of an analyzed source: counts,
// one block per binding with its references, then the unresolved names.
// Everything is ordered by declaration or first occurrence, so two runs over
// the same source produce identical bytes.
type ScopeDumper struct {
	out  io.Writer
	diag io.Writer
}

// NewScopeDumper returns a dumper writing the graph to out and semantic
// warnings to diag.
func NewScopeDumper(out, diag io.Writer) *ScopeDumper {
	return &ScopeDumper{out: out, diag: diag}
}

// Dump writes the scope analysis section.
func (d *ScopeDumper) Dump(analysis *semantic.Analysis) {
	for _, warning := range analysis.Warnings {
		fmt.Fprintf(d.diag, "warning: %s\n", warning)
	}

	fmt.Fprintln(d.out, "=== SCOPE ANALYSIS ===")
	fmt.Fprintf(d.out, "scopes: %d\n", analysis.ScopeCount)
	fmt.Fprintf(d.out, "bindings: %d\n", len(analysis.Bindings))
	fmt.Fprintln(d.out)
	for _, binding := range analysis.Bindings {
		fmt.Fprintf(d.out, "  binding %d \"%s\" scope=%d flags=%s refs=%d\n",
			binding.ID, EscapeLine(binding.Name), binding.Scope, binding.Kind, len(binding.Refs))
		for _, ref := range binding.Refs {
			fmt.Fprintf(d.out, "    ref %d:%d %s\n", ref.Start, ref.End, ref.Flags())
		}
	}
	fmt.Fprintln(d.out)
	fmt.Fprintln(d.out, "unresolved:")
	for _, group := range analysis.Unresolved {
		fmt.Fprintf(d.out, "  \"%s\" refs=%d\n", EscapeLine(group.Name), len(group.Refs))
		for _, ref := range group.Refs {
			fmt.Fprintf(d.out, "    ref %d:%d %s\n", ref.Start, ref.End, ref.Flags())
		}
	}
}
