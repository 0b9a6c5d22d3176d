package mdast

import "errors"

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk, or ErrSkipChildren to skip
// the current node's descendants.
type WalkFunc func(n *Node) error

// ErrSkipChildren tells Walk not to descend into the current node.
// It is never returned by Walk.
var ErrSkipChildren = errors.New("skip children")

// Walk performs a pre-order traversal of the AST starting at root.
// The callback walkFunc is called for each node. If walkFunc returns a non-nil error,
// the walk stops immediately and returns that error.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, ErrSkipChildren) {
			return nil
		}
		return err
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkContextFunc is the function signature for WalkWithContext callbacks.
type WalkContextFunc func(n *Node) error

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root *Node, enter, leave WalkContextFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for child := root.FirstChild; child != nil; child = child.Next {
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all nodes matching the predicate, in document order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil if none found.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

// Ancestor returns the nearest ancestor of n with the given kind, or nil.
func Ancestor(n *Node, kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == kind {
			return p
		}
	}
	return nil
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = errors.New("stop walk")
