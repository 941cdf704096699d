package html

import "fmt"

type Parser struct {
	tokenizer *Tokenizer
	doc       *Document
	stack     []*Node
}

func NewParser(html string) *Parser {
	return &Parser{
		tokenizer: NewTokenizer(html),
		doc:       NewDocument(),
	}
}

func (p *Parser) Parse() (*Document, error) {
	p.stack = []*Node{p.doc.Root}

	for {
		token, err := p.tokenizer.NextToken()
		if err != nil {
			return nil, fmt.Errorf("tokenizer error: %w", err)
		}
		if token.Type == TokenEOF {
			break
		}

		switch token.Type {
		case TokenStartTag:
			// <script> bodies are raw text, collected on the document
			// rather than entering the tree.
			if token.TagName == "script" {
				p.doc.Scripts = append(p.doc.Scripts, p.tokenizer.ReadRawUntil("script"))
				continue
			}
			// <style> bodies are skipped the same way; styling is not
			// this library's concern.
			if token.TagName == "style" {
				p.tokenizer.ReadRawUntil("style")
				continue
			}

			// Auto-close <p> when a block-level element is encountered inside it
			if isBlockElement(token.TagName) {
				p.autoCloseP()
			}

			node := &Node{
				Type:       ElementNode,
				TagName:    token.TagName,
				Attributes: token.Attributes,
				Children:   make([]*Node, 0),
			}
			p.currentParent().AddChild(node)

			if !isVoidElement(token.TagName) && !token.SelfClosing {
				p.stack = append(p.stack, node)
			}

		case TokenText:
			if token.Text != "" {
				p.currentParent().AppendText(token.Text)
			}

		case TokenEndTag:
			p.closeTag(token.TagName)
		}
	}

	return p.doc, nil
}

// currentParent returns the current parent node (top of stack)
func (p *Parser) currentParent() *Node {
	if len(p.stack) == 0 {
		return p.doc.Root
	}
	return p.stack[len(p.stack)-1]
}

// closeTag pops the stack until the matching tag is found and closed
func (p *Parser) closeTag(tagName string) {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == tagName {
			p.stack = p.stack[:i]
			return
		}
	}
	// Tag not found on stack; ignore the end tag
}

// autoCloseP closes an open <p> element if one is on the stack
func (p *Parser) autoCloseP() {
	for i := len(p.stack) - 1; i >= 1; i-- {
		if p.stack[i].TagName == "p" {
			p.stack = p.stack[:i]
			return
		}
		// Don't close past block-level containers
		if isBlockElement(p.stack[i].TagName) {
			return
		}
	}
}

// isBlockElement returns true for elements that auto-close <p>
func isBlockElement(tagName string) bool {
	switch tagName {
	case "address", "article", "aside", "blockquote", "details", "dialog",
		"dd", "div", "dl", "dt", "fieldset", "figcaption", "figure",
		"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6",
		"header", "hgroup", "hr", "li", "main", "nav", "ol",
		"p", "pre", "section", "table", "ul":
		return true
	}
	return false
}

// isVoidElement returns true for elements that never take children.
func isVoidElement(tag string) bool {
	switch tag {
	case "br", "hr", "img", "input", "meta", "link", "area", "base",
		"col", "embed", "param", "source", "track", "wbr":
		return true
	}
	return false
}

func Parse(html string) (*Document, error) {
	parser := NewParser(html)
	return parser.Parse()
}
