package hast

// ElementFunc rewrites a single element. It receives an element whose
// children have already been transformed and returns the replacement. It
// must not mutate its argument; use the With* helpers to derive a copy.
type ElementFunc func(*Element) *Element

// Transform applies fn to every element of the tree in post-order and returns
// the new tree. Nodes produced by fn are not visited again. The input tree is
// left untouched; subtrees that fn did not change are shared between the
// input and the output.
func Transform(n Node, fn ElementFunc) Node {
	switch v := n.(type) {
	case *Root:
		children, changed := transformChildren(v.Children, fn)
		if !changed {
			return v
		}
		return &Root{Children: children}
	case *Element:
		el := v
		if children, changed := transformChildren(v.Children, fn); changed {
			el = v.Clone()
			el.Children = children
		}
		if out := fn(el); out != nil {
			return out
		}
		return el
	default:
		return n
	}
}

func transformChildren(children []Node, fn ElementFunc) ([]Node, bool) {
	var out []Node
	for i, c := range children {
		nc := Transform(c, fn)
		if out == nil && nc != c {
			out = make([]Node, len(children))
			copy(out, children[:i])
		}
		if out != nil {
			out[i] = nc
		}
	}
	if out == nil {
		return children, false
	}
	return out, true
}
