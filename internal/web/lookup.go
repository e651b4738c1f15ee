package web

import (
	"errors"
	"fmt"
)

// Lookup errors.
var (
	ErrNoDocument      = errors.New("web: window has no document")
	ErrNoBody          = errors.New("web: document has no body")
	ErrElementNotFound = errors.New("web: element not found")
)

// ElementByIDOrBody returns the element with the given id, or the document
// body when id is empty.
func ElementByIDOrBody(win Window, id string) (Element, error) {
	doc, ok := win.Document()
	if !ok {
		return nil, ErrNoDocument
	}
	if id == "" {
		body, ok := doc.Body()
		if !ok {
			return nil, ErrNoBody
		}
		return body, nil
	}
	el, ok := doc.GetElementByID(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrElementNotFound, id)
	}
	return el, nil
}

// CreateCanvasIn creates a canvas with the given logical size and appends it
// to parent.
func CreateCanvasIn(doc Document, parent Element, width, height int) (CanvasElement, error) {
	canvas, err := doc.CreateCanvas()
	if err != nil {
		return nil, fmt.Errorf("create canvas: %w", err)
	}
	canvas.SetWidth(width)
	canvas.SetHeight(height)
	if err := parent.AppendChild(canvas); err != nil {
		return nil, fmt.Errorf("append canvas: %w", err)
	}
	return canvas, nil
}
