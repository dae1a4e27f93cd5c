package graphql

import (
	"fmt"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"

	"github.com/saturnines/graphql-client/pkg/errors"
)

// Validate parses the document and reports syntax errors.
// It checks syntax only; no schema is involved.
func (b *Builder) Validate() error {
	doc, err := parser.ParseQuery(&ast.Source{Name: "document", Input: b.Document()})
	if err != nil {
		return errors.WrapError(err, errors.ErrValidation, "parse document")
	}

	if len(doc.Operations) == 0 {
		return errors.WrapError(fmt.Errorf("document has no operations"), errors.ErrValidation, "parse document")
	}

	return nil
}
