package domain

import (
	"fmt"
	"strings"
)

// TraceNode is one node of the audit tree recording every check that ran and
// its status.
type TraceNode struct {
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Children   []*TraceNode      `json:"children,omitempty"`

	parent *TraceNode
	index  int
}

func NewTrace(name string) *TraceNode {
	return &TraceNode{Name: name, index: 1}
}

// AddChild appends a node. Only the goroutine owning n may call it.
func (n *TraceNode) AddChild(name string) *TraceNode {
	idx := 1
	for _, c := range n.Children {
		if c.Name == name {
			idx++
		}
	}
	child := &TraceNode{Name: name, parent: n, index: idx}
	n.Children = append(n.Children, child)
	return child
}

func (n *TraceNode) SetAttribute(key, value string) *TraceNode {
	if n.Attributes == nil {
		n.Attributes = map[string]string{}
	}
	n.Attributes[key] = value
	return n
}

func (n *TraceNode) Attribute(key string) string {
	return n.Attributes[key]
}

// Location is the path of n from the root, e.g. "/Validation[1]/Signature[2]".
func (n *TraceNode) Location() string {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, fmt.Sprintf("%s[%d]", cur.Name, cur.index))
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		b.WriteByte('/')
		b.WriteString(parts[i])
	}
	return b.String()
}

// Child returns the first direct child named name.
func (n *TraceNode) Child(name string) *TraceNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Walk visits n and its descendants depth first.
func (n *TraceNode) Walk(fn func(*TraceNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}
