package html

import "strings"

type Node struct {
	Type       NodeType
	TagName    string
	Attributes map[string]string
	Text       string
	Children   []*Node
	Parent     *Node
}

type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Document is a parsed HTML tree plus the scripts collected from it.
type Document struct {
	Root    *Node
	Scripts []string
}

func NewDocument() *Document {
	return &Document{
		Root: &Node{
			Type:     ElementNode,
			TagName:  "document",
			Children: make([]*Node, 0),
		},
		Scripts: make([]string, 0),
	}
}

func (n *Node) GetAttribute(name string) (string, bool) {
	if n.Attributes == nil {
		return "", false
	}
	val, ok := n.Attributes[name]
	return val, ok
}

// SetAttribute sets an attribute, allocating the map on first use.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// RemoveAttribute deletes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	if n.Attributes != nil {
		delete(n.Attributes, name)
	}
}

// AddChild adds a child node and sets up the parent relationship
func (n *Node) AddChild(child *Node) {
	child.Parent = n
	n.Children = append(n.Children, child)
}

// AppendText creates a text node and adds it as a child
func (n *Node) AppendText(text string) {
	if text == "" {
		return
	}
	textNode := &Node{
		Type:   TextNode,
		Text:   text,
		Parent: n,
	}
	n.Children = append(n.Children, textNode)
}

// RemoveChild removes the given child from this node's children list,
// clears its parent pointer, and returns the removed child.
// Returns nil if child is not found.
func (n *Node) RemoveChild(child *Node) *Node {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			return child
		}
	}
	return nil
}

// Walk performs a depth-first walk over the element nodes of the subtree
// rooted at n, including n itself. The callback returns true to stop the
// walk early.
func (n *Node) Walk(fn func(*Node) bool) bool {
	if n.Type == ElementNode {
		if fn(n) {
			return true
		}
	}
	for _, child := range n.Children {
		if child.Walk(fn) {
			return true
		}
	}
	return false
}

// classes returns the whitespace-separated tokens of the class attribute.
func (n *Node) classes() []string {
	attr, _ := n.GetAttribute("class")
	if attr == "" {
		return nil
	}
	return strings.Fields(attr)
}

// HasClass reports whether the class attribute contains the given token.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes() {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass appends a class token if it is not already present.
func (n *Node) AddClass(class string) {
	if class == "" || n.HasClass(class) {
		return
	}
	cls := append(n.classes(), class)
	n.SetAttribute("class", strings.Join(cls, " "))
}

// RemoveClass drops every occurrence of the given class token.
func (n *Node) RemoveClass(class string) {
	cls := n.classes()
	kept := cls[:0]
	for _, c := range cls {
		if c != class {
			kept = append(kept, c)
		}
	}
	n.SetAttribute("class", strings.Join(kept, " "))
}
