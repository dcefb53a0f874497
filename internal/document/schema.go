package document

import (
	_ "embed"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

//go:embed schema.cue
var schemaSource string

var (
	schemaOnce sync.Once
	schemaVal  cue.Value
)

// schema compiles the embedded document schema once and returns its
// #Document definition. The source is embedded and tested, so a compile
// failure is a programming error.
func schema() cue.Value {
	schemaOnce.Do(func() {
		ctx := cuecontext.New()
		v := ctx.CompileString(schemaSource, cue.Filename("schema.cue"))
		if err := v.Err(); err != nil {
			panic(fmt.Sprintf("document: embedded schema does not compile: %v", err))
		}
		schemaVal = v.LookupPath(cue.ParsePath("#Document"))
	})
	return schemaVal
}

// validateSchema unifies a decoded document tree with the schema and
// reports the first violation with its path.
func validateSchema(tree any) error {
	def := schema()
	val := def.Context().Encode(tree)
	if err := val.Err(); err != nil {
		return &Error{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}

	unified := def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &Error{
			Code:    ErrCodeSchema,
			Message: formatCUEError(err),
			Err:     err,
		}
	}
	return nil
}

// formatCUEError flattens a CUE error list into one actionable line,
// keeping the path of the first violation.
func formatCUEError(err error) string {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return err.Error()
	}
	first := errs[0]
	if path := first.Path(); len(path) > 0 {
		return fmt.Sprintf("%s: %s", pathString(path), first.Error())
	}
	return first.Error()
}

func pathString(path []string) string {
	out := ""
	for i, p := range path {
		if i > 0 {
			out += "."
		}
		out += p
	}
	return out
}
