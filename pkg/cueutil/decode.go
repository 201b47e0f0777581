// SPDX-License-Identifier: MPL-2.0

package cueutil

import (
	"fmt"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// MaxDocumentSize bounds the size of documents accepted by DecodeMap.
const MaxDocumentSize int64 = 1 << 20

// DecodeMap validates data against the definition of schema and returns its
// fields as a map. filename is used in error messages only.
func DecodeMap(schema, definition string, data []byte, filename string) (map[string]any, error) {
	if err := CheckSize(data, MaxDocumentSize, filename); err != nil {
		return nil, err
	}

	ctx := cuecontext.New()

	schemaValue := ctx.CompileString(schema)
	if schemaValue.Err() != nil {
		return nil, fmt.Errorf("internal error: failed to compile schema: %w", schemaValue.Err())
	}
	root := schemaValue.LookupPath(cue.ParsePath(definition))
	if root.Err() != nil {
		return nil, fmt.Errorf("internal error: schema definition %s not found: %w", definition, root.Err())
	}

	userValue := ctx.CompileBytes(data, cue.Filename(filename))
	if userValue.Err() != nil {
		return nil, FormatError(userValue.Err(), filename)
	}

	unified := root.Unify(userValue)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, FormatError(err, filename)
	}

	var values map[string]any
	if err := unified.Decode(&values); err != nil {
		return nil, FormatError(err, filename)
	}
	return values, nil
}
