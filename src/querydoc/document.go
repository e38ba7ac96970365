// Package querydoc reads queries written as YAML documents and compiles
// them into cypher builder calls.
//
// A document is a list of steps, each naming one clause:
//
//	name: friend-of-you
//	query:
//	  - match:
//	      - node: {id: you, labels: [Person], props: {name: You}}
//	  - create:
//	      - node: {id: you}
//	      - rel: {types: [friend], dir: to}
//	      - node: {id: them, labels: [Person], props: {name: Them}}
//	  - return: [you, them]
//
// Steps are applied in order, so identifier binding follows the same rules
// as the builder.
package querydoc

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidDocument is returned for documents that do not describe a query.
var ErrInvalidDocument = errors.New("querydoc: invalid document")

// Document is a named query.
type Document struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"query"`
}

// Step holds exactly one clause.
type Step struct {
	Match         []Element    `yaml:"match"`
	OptionalMatch []Element    `yaml:"optional_match"`
	Where         yaml.Node    `yaml:"where"`
	Create        []Element    `yaml:"create"`
	Merge         []Element    `yaml:"merge"`
	Delete        []string     `yaml:"delete"`
	DetachDelete  []string     `yaml:"detach_delete"`
	Return        []ReturnItem `yaml:"return"`
	Set           []SetSpec    `yaml:"set"`
	Remove        []RemoveSpec `yaml:"remove"`
}

// Element is one pattern member; exactly one field is set.
type Element struct {
	Node *NodeSpec `yaml:"node"`
	Rel  *RelSpec  `yaml:"rel"`
	Path *PathSpec `yaml:"path"`
}

// NodeSpec describes a node pattern.
type NodeSpec struct {
	ID     string    `yaml:"id"`
	Labels []string  `yaml:"labels"`
	Props  yaml.Node `yaml:"props"`
}

// RelSpec describes a relationship pattern. Dir is "to", "from" or empty;
// Length uses the pattern syntax without the star: "3", "1..5", "..5",
// "2..", or "*" for any length.
type RelSpec struct {
	ID     string    `yaml:"id"`
	Types  []string  `yaml:"types"`
	Props  yaml.Node `yaml:"props"`
	Dir    string    `yaml:"dir"`
	Length string    `yaml:"length"`
}

// PathSpec describes an explicit, optionally named path.
type PathSpec struct {
	ID       string    `yaml:"id"`
	Shortest bool      `yaml:"shortest"`
	Elements []Element `yaml:"elements"`
}

// ReturnItem is either a plain expression or an aliased one.
type ReturnItem struct {
	Expr string `yaml:"expr"`
	As   string `yaml:"as"`
}

// UnmarshalYAML accepts both "n.name" and {expr: n.name, as: name}.
func (r *ReturnItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Expr = value.Value
		return nil
	}
	type plain ReturnItem
	return value.Decode((*plain)(r))
}

// SetSpec is one SET item: a single property, a label list, or a
// property map assigned with = (or += when Merge is true).
type SetSpec struct {
	Var    string    `yaml:"var"`
	Prop   string    `yaml:"prop"`
	Value  yaml.Node `yaml:"value"`
	Labels []string  `yaml:"labels"`
	Props  yaml.Node `yaml:"props"`
	Merge  bool      `yaml:"merge"`
}

// RemoveSpec is one REMOVE item: a property or a label list.
type RemoveSpec struct {
	Var    string   `yaml:"var"`
	Prop   string   `yaml:"prop"`
	Labels []string `yaml:"labels"`
}

// Decode reads a single document.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty input", ErrInvalidDocument)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if len(doc.Steps) == 0 {
		return nil, fmt.Errorf("%w: no query steps", ErrInvalidDocument)
	}
	return &doc, nil
}

// LoadFile reads the document stored at path.
func LoadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
