// Package hclcell loads neuronal cell descriptions from HCL files into the
// morph model. The wire-format structs live in schema.go; translation into
// the format-agnostic arena, parent-id resolution and validation happen in
// the loader.
package hclcell
