package html

import "testing"

func TestParser_SingleElement(t *testing.T) {
	doc, err := Parse("<div></div>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(doc.Root.Children))
	}
	if doc.Root.Children[0].TagName != "div" {
		t.Errorf("expected tag 'div', got '%s'", doc.Root.Children[0].TagName)
	}
}

func TestParser_MultipleElements(t *testing.T) {
	doc, err := Parse("<div></div><p></p>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Errorf("expected 2 children, got %d", len(doc.Root.Children))
	}
}

func TestParser_WithAttributes(t *testing.T) {
	doc, err := Parse(`<img data-src="photo.jpg" data-width="640">`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img := doc.Root.Children[0]
	if src, ok := img.GetAttribute("data-src"); !ok || src != "photo.jpg" {
		t.Error("expected data-src attribute 'photo.jpg'")
	}
	if w, ok := img.GetAttribute("data-width"); !ok || w != "640" {
		t.Error("expected data-width attribute '640'")
	}
}

func TestParser_NestedElements(t *testing.T) {
	doc, err := Parse(`<div><p>Hello</p></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Root.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(doc.Root.Children))
	}
	div := doc.Root.Children[0]
	if div.TagName != "div" {
		t.Errorf("expected 'div', got '%s'", div.TagName)
	}
	if len(div.Children) != 1 {
		t.Fatalf("expected div to have 1 child, got %d", len(div.Children))
	}
	p := div.Children[0]
	if p.TagName != "p" || p.Parent != div {
		t.Error("expected <p> child with parent pointer set")
	}
}

func TestParser_VoidElementTakesNoChildren(t *testing.T) {
	doc, err := Parse(`<div><img data-src="a.png"><span>after</span></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	div := doc.Root.Children[0]
	if len(div.Children) != 2 {
		t.Fatalf("expected 2 children of div, got %d", len(div.Children))
	}
	if div.Children[0].TagName != "img" {
		t.Errorf("expected first child 'img', got '%s'", div.Children[0].TagName)
	}
	if len(div.Children[0].Children) != 0 {
		t.Error("void <img> must not adopt children")
	}
	if div.Children[1].TagName != "span" {
		t.Errorf("expected sibling 'span', got '%s'", div.Children[1].TagName)
	}
}

func TestParser_AutoCloseP(t *testing.T) {
	doc, err := Parse(`<p>one<div>two</div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected <p> and <div> as siblings, got %d children", len(doc.Root.Children))
	}
	if doc.Root.Children[1].TagName != "div" {
		t.Errorf("expected second child 'div', got '%s'", doc.Root.Children[1].TagName)
	}
}

func TestParser_ScriptCollected(t *testing.T) {
	doc, err := Parse(`<div></div><script>var x = 1 < 2;</script>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Scripts) != 1 {
		t.Fatalf("expected 1 script, got %d", len(doc.Scripts))
	}
	if doc.Scripts[0] != "var x = 1 < 2;" {
		t.Errorf("unexpected script content %q", doc.Scripts[0])
	}
	// Script must not appear in the tree
	if len(doc.Root.Children) != 1 {
		t.Errorf("expected 1 tree child, got %d", len(doc.Root.Children))
	}
}

func TestParser_StyleSkipped(t *testing.T) {
	doc, err := Parse(`<style>div { color: red }</style><div></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 1 || doc.Root.Children[0].TagName != "div" {
		t.Error("expected style content to be skipped entirely")
	}
}

func TestParser_CommentsAndDoctype(t *testing.T) {
	doc, err := Parse("<!DOCTYPE html><!-- note --><div></div>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(doc.Root.Children))
	}
}

func TestParser_UnmatchedEndTagIgnored(t *testing.T) {
	doc, err := Parse(`<div></span></div>`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Root.Children) != 1 {
		t.Errorf("expected 1 child, got %d", len(doc.Root.Children))
	}
}
