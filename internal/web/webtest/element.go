package webtest

import (
	"errors"
	"strings"

	"github.com/dshills/webterm/internal/web"
)

// Element is a fake DOM element.
type Element struct {
	Target

	Tag       string
	Attrs     map[string]string
	Text      string
	InnerHTML string
	Children  []web.Element
	Parent    *Element
	Removed   bool

	Width  int
	Height int
	Rect   web.Rect

	// AppendErr, when set, is returned by AppendChild.
	AppendErr error
}

// NewElement creates a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag, Attrs: make(map[string]string)}
}

// SetAttribute implements web.Element.
func (e *Element) SetAttribute(name, value string) error {
	e.Attrs[name] = value
	return nil
}

// GetAttribute implements web.Element.
func (e *Element) GetAttribute(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

// SetTextContent implements web.Element.
func (e *Element) SetTextContent(text string) {
	e.Text = text
	e.Children = nil
}

// SetInnerHTML implements web.Element.
func (e *Element) SetInnerHTML(html string) {
	e.InnerHTML = html
	e.Children = nil
}

// AppendChild implements web.Element.
func (e *Element) AppendChild(child web.Element) error {
	if e.AppendErr != nil {
		return e.AppendErr
	}
	if child == nil {
		return errors.New("webtest: nil child")
	}
	if c := asElement(child); c != nil {
		c.Parent = e
		c.Removed = false
	}
	e.Children = append(e.Children, child)
	return nil
}

// Remove implements web.Element.
func (e *Element) Remove() {
	e.Removed = true
	if e.Parent == nil {
		return
	}
	p := e.Parent
	for i, c := range p.Children {
		if asElement(c) == e {
			p.Children = append(p.Children[:i:i], p.Children[i+1:]...)
			break
		}
	}
	e.Parent = nil
}

// ClientWidth implements web.Element.
func (e *Element) ClientWidth() int { return e.Width }

// ClientHeight implements web.Element.
func (e *Element) ClientHeight() int { return e.Height }

// BoundingClientRect implements web.Element.
func (e *Element) BoundingClientRect() web.Rect { return e.Rect }

// Child returns the i-th child as a fake element.
func (e *Element) Child(i int) *Element {
	if i < 0 || i >= len(e.Children) {
		return nil
	}
	return asElement(e.Children[i])
}

// Style returns the style attribute.
func (e *Element) Style() string {
	return e.Attrs["style"]
}

// TextTree returns the concatenated text content of e and its descendants.
func (e *Element) TextTree() string {
	var sb strings.Builder
	sb.WriteString(e.Text)
	for _, c := range e.Children {
		if ce := asElement(c); ce != nil {
			sb.WriteString(ce.TextTree())
		}
	}
	return sb.String()
}

// Find returns the first descendant (or e itself) with the given id.
func (e *Element) Find(id string) *Element {
	if e.Attrs["id"] == id {
		return e
	}
	for _, c := range e.Children {
		if ce := asElement(c); ce != nil {
			if found := ce.Find(id); found != nil {
				return found
			}
		}
	}
	return nil
}

func asElement(el web.Element) *Element {
	switch v := el.(type) {
	case *Element:
		return v
	case *Canvas:
		return &v.Element
	}
	return nil
}
