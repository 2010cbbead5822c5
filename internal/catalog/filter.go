package catalog

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Filter is a compiled boolean expression over a single Record, e.g.
// `Source == "/"` or `Trigger != "S"`.
type Filter struct {
	src     string
	program *vm.Program
}

// CompileFilter compiles src against the Record fields. An empty expression
// means no filtering and yields a nil Filter.
func CompileFilter(src string) (*Filter, error) {
	if src == "" {
		return nil, nil
	}
	program, err := expr.Compile(src, expr.Env(Record{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", src, err)
	}
	return &Filter{src: src, program: program}, nil
}

// Apply keeps the records matching the filter. A nil filter keeps everything.
// The filter runs before dedup, so the first matching record wins a
// timestamp.
func (f *Filter) Apply(records []Record) ([]Record, error) {
	if f == nil {
		return records, nil
	}
	var kept []Record
	for _, r := range records {
		out, err := expr.Run(f.program, r)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", f.src, err)
		}
		if out.(bool) {
			kept = append(kept, r)
		}
	}
	return kept, nil
}
