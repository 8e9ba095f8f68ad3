// File: yaml.go
// Title: C-minus Syntax Tree YAML Export
// Description: Converts a syntax tree into a YAML document for tools that
//              consume the tree outside of Go.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial YAML export

package ast

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Export is the serializable form of a node
type Export struct {
	Kind     string   `yaml:"kind"`
	Line     int      `yaml:"line"`
	Column   int      `yaml:"column"`
	Op       string   `yaml:"op,omitempty"`
	Value    *int     `yaml:"value,omitempty"`
	Name     string   `yaml:"name,omitempty"`
	Array    bool     `yaml:"array,omitempty"`
	Children []Export `yaml:"children,omitempty"`
}

// ToExport converts the tree rooted at n into its serializable form
func ToExport(n Node) Export {
	pos := n.Pos()
	e := Export{
		Kind:   n.SubKind().String(),
		Line:   pos.Line,
		Column: pos.Column,
	}

	switch n := n.(type) {
	case *BinaryOp:
		e.Op = n.Op.Symbol()
	case *Const:
		v := n.Value
		e.Value = &v
	case *Identifier:
		e.Name = n.Name
	case *Param:
		e.Array = n.IsArray
	}

	for _, c := range Children(n) {
		e.Children = append(e.Children, ToExport(c))
	}
	return e
}

// MarshalYAML renders the tree rooted at n as a YAML document
func MarshalYAML(n Node) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(ToExport(n)); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
