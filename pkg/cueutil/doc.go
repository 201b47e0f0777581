// SPDX-License-Identifier: MPL-2.0

// Package cueutil validates CUE documents against an embedded schema.
//
// A document is compiled, unified with one definition of the schema and
// decoded into a generic map, which callers merge into their own
// configuration layer:
//
//	//go:embed config_schema.cue
//	var schema string
//
//	values, err := cueutil.DecodeMap(schema, "#Config", data, "config.cue")
//	if err != nil {
//	    return err // *cueutil.SchemaError with one issue per offending field
//	}
//
// Schemas are expected to declare their fields optional: a document may omit
// any of them and the caller's defaults apply, but every field it does set
// must be concrete.
package cueutil
