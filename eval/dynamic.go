package eval

import (
	"github.com/dbschema-go/dbschema/internal/diagnostics"
	"github.com/dbschema-go/dbschema/lang/ast"
)

// ExpandDynamicBlocks rewrites every `dynamic "<kind>" { for_each = ...;
// labels = [...]; content { ... } }` construct into one synthetic block
// of kind <kind> per element of for_each, recursing into nested bodies
// first so dynamic blocks work at any nesting depth. This is a pure
// source-to-source rewrite on the syntax tree, performed before
// resource extraction, per spec.md §4.B.
func ExpandDynamicBlocks(body *ast.Body, env *Env) (*ast.Body, error) {
	out := &ast.Body{}
	for _, s := range body.Structures {
		blk, ok := s.(*ast.Block)
		if !ok {
			out.Structures = append(out.Structures, s)
			continue
		}
		if blk.Kind != "dynamic" {
			expandedChild, err := expandBlockBody(blk, env)
			if err != nil {
				return nil, err
			}
			out.Structures = append(out.Structures, expandedChild)
			continue
		}
		expanded, err := expandDynamicBlock(blk, env)
		if err != nil {
			return nil, err
		}
		out.Structures = append(out.Structures, expanded...)
	}
	return out, nil
}

func expandBlockBody(blk *ast.Block, env *Env) (*ast.Block, error) {
	if blk.Body == nil {
		return blk, nil
	}
	newBody, err := ExpandDynamicBlocks(blk.Body, env)
	if err != nil {
		return nil, err
	}
	copyBlk := *blk
	copyBlk.Body = newBody
	return &copyBlk, nil
}

func expandDynamicBlock(blk *ast.Block, env *Env) ([]ast.Structure, error) {
	if len(blk.Labels) == 0 {
		return nil, diagnostics.Structural(blk.Sp, "dynamic", "missing target block kind label")
	}
	kind := blk.Labels[0]
	if blk.Body == nil {
		return nil, diagnostics.Structural(blk.Sp, "dynamic", "missing body")
	}
	if blk.ForEach == nil {
		return nil, diagnostics.Structural(blk.Sp, "dynamic", "missing required for_each attribute")
	}
	collection, err := Eval(blk.ForEach, env)
	if err != nil {
		return nil, err
	}
	var labelsExpr ast.Expression
	if labelsAttr := blk.Body.Attribute("labels"); labelsAttr != nil {
		labelsExpr = labelsAttr.Value
	}
	contentBlocks := blk.Body.BlocksOfType("content")
	if len(contentBlocks) != 1 {
		return nil, diagnostics.Structural(blk.Sp, "dynamic", "expected exactly one nested content block")
	}
	content := contentBlocks[0]

	type item struct {
		key Value
		val Value
	}
	var items []item
	switch collection.Kind {
	case KindArray:
		for i, v := range collection.Arr {
			items = append(items, item{key: Number(float64(i)), val: v})
		}
	case KindObject:
		for _, k := range SortedKeys(collection) {
			v, _ := collection.Get(k)
			items = append(items, item{key: String(k), val: v})
		}
	default:
		return nil, diagnostics.TypeMismatch(blk.ForEach.Span(), "dynamic for_each", "array or object", collection.Kind.String())
	}

	var out []ast.Structure
	for _, it := range items {
		childEnv := env.WithEach(nonNilKey(it.key), it.val)
		newBlk := &ast.Block{Kind: kind, Sp: content.Sp}
		if labelsExpr != nil {
			labelsVal, err := Eval(labelsExpr, childEnv)
			if err != nil {
				return nil, err
			}
			if labelsVal.Kind != KindArray {
				return nil, diagnostics.TypeMismatch(blk.Sp, "dynamic labels", "array", labelsVal.Kind.String())
			}
			for _, lv := range labelsVal.Arr {
				newBlk.Labels = append(newBlk.Labels, lv.String())
			}
		}
		expandedContent, err := ExpandDynamicBlocks(content.Body, childEnv)
		if err != nil {
			return nil, err
		}
		newBlk.Body = expandedContent
		out = append(out, newBlk)
	}
	return out, nil
}

func nonNilKey(v Value) *Value {
	return &v
}
