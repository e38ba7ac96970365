package cypher

import "strings"

// Compiler turns an accumulated statement list into query text. It groups
// statements by clause, emits groups in ClauseOrder and decides for each
// CREATE or MERGE element whether it is declared in full or referenced.
type Compiler struct {
	scope    *Scope
	segments []string
}

// NewCompiler creates a compiler whose scope already holds the given
// MATCH bindings.
func NewCompiler(matched ...string) *Compiler {
	s := NewScope()
	for _, id := range matched {
		s.matched[id] = struct{}{}
	}
	return &Compiler{scope: s}
}

// Output returns the compiled query text.
func (c *Compiler) Output() string {
	return strings.Join(c.segments, " ") + ";"
}

func (c *Compiler) compile(stmts []*statement) (string, error) {
	groups := make(map[ClauseType][]*statement, len(renderOrder))
	for _, s := range stmts {
		groups[s.clause] = append(groups[s.clause], s)
	}
	for _, clause := range renderOrder {
		group := groups[clause]
		if clause == MatchClause {
			c.visitMatch(group, groups[WhereClause])
			continue
		}
		if len(group) == 0 || clause == WhereClause {
			continue
		}
		var err error
		switch clause {
		case CreateClause:
			c.visitCreate(group)
		case DeleteClause:
			err = c.visitDelete(group)
		case ReturnClause:
			err = c.visitReturn(group)
		case SetClause:
			c.visitSet(group)
		case RemoveClause:
			c.visitRemove(group)
		case MergeClause:
			c.visitMerge(group)
		}
		if err != nil {
			return "", err
		}
	}
	return c.Output(), nil
}

func (c *Compiler) emit(keyword string, parts []string) {
	if len(parts) == 0 {
		return
	}
	c.segments = append(c.segments, keyword+" "+strings.Join(parts, ", "))
}

// visitMatch renders the MATCH and WHERE groups together. Each WHERE
// follows the MATCH it filters:
// MATCH ... WHERE ... OPTIONAL MATCH ... WHERE ...
func (c *Compiler) visitMatch(matches, wheres []*statement) {
	var required, optional []string
	for _, s := range matches {
		for _, p := range s.patterns {
			if s.optional {
				optional = append(optional, p.Render(BindFull))
			} else {
				required = append(required, p.Render(BindFull))
			}
		}
	}
	var requiredConds, optionalConds []string
	for _, s := range wheres {
		for _, cond := range s.conditions {
			if s.optional {
				optionalConds = append(optionalConds, cond.Cypher())
			} else {
				requiredConds = append(requiredConds, cond.Cypher())
			}
		}
	}
	c.emit("MATCH", required)
	c.emitWhere(requiredConds)
	c.emit("OPTIONAL MATCH", optional)
	c.emitWhere(optionalConds)
}

func (c *Compiler) emitWhere(conds []string) {
	if len(conds) > 0 {
		c.segments = append(c.segments, "WHERE "+strings.Join(conds, " AND "))
	}
}

// declare renders a CREATE or MERGE pattern. The first time an identifier
// is seen across matched and created bindings its element is written in
// full; afterwards only the reference is written.
func (c *Compiler) declare(p *Path) string {
	if id := p.Identifier(); id != "" {
		c.scope.BindCreate(id)
	}
	return p.renderWith(func(el Element) string {
		id := el.Identifier()
		if id == "" {
			return el.Render(BindFull)
		}
		if c.scope.IsBound(id) {
			return el.Render(BindReference)
		}
		c.scope.BindCreate(id)
		return el.Render(BindFull)
	})
}

func (c *Compiler) visitCreate(group []*statement) {
	var patterns []string
	for _, s := range group {
		for _, p := range s.patterns {
			patterns = append(patterns, c.declare(p))
		}
	}
	c.emit("CREATE", patterns)
}

func (c *Compiler) visitMerge(group []*statement) {
	for _, s := range group {
		for _, p := range s.patterns {
			c.segments = append(c.segments, "MERGE "+c.declare(p))
		}
	}
}

func (c *Compiler) visitDelete(group []*statement) error {
	var plain, detach []string
	for _, s := range group {
		for _, item := range s.items {
			text, err := renderItem(DeleteClause, item)
			if err != nil {
				return err
			}
			if s.detach {
				detach = append(detach, text)
			} else {
				plain = append(plain, text)
			}
		}
	}
	c.emit("DELETE", plain)
	c.emit("DETACH DELETE", detach)
	return nil
}

func (c *Compiler) visitReturn(group []*statement) error {
	var items []string
	for _, s := range group {
		for _, item := range s.items {
			text, err := renderItem(ReturnClause, item)
			if err != nil {
				return err
			}
			items = append(items, text)
		}
	}
	c.emit("RETURN", items)
	return nil
}

func (c *Compiler) visitSet(group []*statement) {
	var items []string
	for _, s := range group {
		for _, item := range s.sets {
			items = append(items, item.Cypher())
		}
	}
	c.emit("SET", items)
}

func (c *Compiler) visitRemove(group []*statement) {
	var items []string
	for _, s := range group {
		for _, item := range s.removes {
			items = append(items, item.Cypher())
		}
	}
	c.emit("REMOVE", items)
}

// renderItem resolves a RETURN or DELETE argument: elements by their
// identifier, strings verbatim and expressions by their own text.
func renderItem(clause ClauseType, item interface{}) (string, error) {
	switch v := item.(type) {
	case Element:
		if v.Identifier() == "" {
			return "", &RenderError{Clause: clause, Value: item, Reason: "element has no identifier"}
		}
		return v.Identifier(), nil
	case string:
		if v == "" {
			return "", &RenderError{Clause: clause, Value: item, Reason: "empty name"}
		}
		return v, nil
	case Expression:
		return v.Cypher(), nil
	default:
		return "", &RenderError{Clause: clause, Value: item, Reason: "unsupported argument kind"}
	}
}
