package coaching

import (
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cuejson "cuelang.org/go/encoding/json"

	"github.com/alexanderramin/bluum/internal/llm"
)

// Schema validates model JSON against CUE definitions. cue values are not
// safe for concurrent use, so validation is serialized.
type Schema struct {
	mu   sync.Mutex
	ctx  *cue.Context
	root cue.Value
}

// LoadSchema compiles a CUE source holding one or more definitions.
func LoadSchema(src []byte) (*Schema, error) {
	ctx := cuecontext.New()
	root := ctx.CompileBytes(src, cue.Filename("schemas.cue"))
	if err := root.Err(); err != nil {
		return nil, fmt.Errorf("compiling coaching schemas: %w", err)
	}
	return &Schema{ctx: ctx, root: root}, nil
}

// Validate checks doc against the definition at path (for example "#Coach").
// Failures wrap llm.ErrInvalidOutput.
func (s *Schema) Validate(path, doc string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	def := s.root.LookupPath(cue.ParsePath(path))
	if !def.Exists() {
		return fmt.Errorf("schema definition %s not found", path)
	}

	expr, err := cuejson.Extract("response.json", []byte(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}
	value := s.ctx.BuildExpr(expr)
	if err := value.Err(); err != nil {
		return fmt.Errorf("%w: %v", llm.ErrInvalidOutput, err)
	}

	if err := def.Unify(value).Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("%w: schema %s: %v", llm.ErrInvalidOutput, path, err)
	}
	return nil
}

// Validator binds Validate to one definition for llm.ExtractJSON.
func (s *Schema) Validator(path string) llm.SchemaValidator {
	return func(doc string) error {
		return s.Validate(path, doc)
	}
}
