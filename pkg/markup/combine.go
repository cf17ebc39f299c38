package markup

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

// ErrUnrenderable matches every UnrenderableItemError through errors.Is.
var ErrUnrenderable = errors.New("markup: unrenderable item")

// UnrenderableItemError reports a leaf item that is neither markup nor a
// Renderer.
type UnrenderableItemError struct {
	Item any
}

func (e *UnrenderableItemError) Error() string {
	return fmt.Sprintf("markup: item of type %T is neither markup nor renderable", e.Item)
}

// Is reports whether target is ErrUnrenderable.
func (e *UnrenderableItemError) Is(target error) bool {
	return target == ErrUnrenderable
}

// Expander recognises a container shape and returns its elements in order.
type Expander func(item any) ([]any, bool)

// SequenceOf recognises slices of T.
func SequenceOf[T any]() Expander {
	return func(item any) ([]any, bool) {
		items, ok := item.([]T)
		if !ok {
			return nil, false
		}
		out := make([]any, len(items))
		for idx, value := range items {
			out[idx] = value
		}
		return out, true
	}
}

// Combiner merges items into one Fragment.
type Combiner struct {
	expanders []Expander
}

// NewCombiner returns a Combiner recognising []any, []Renderer, and []Fragment
// as sequences, plus any extra container shapes.
func NewCombiner(extra ...Expander) *Combiner {
	expanders := []Expander{
		SequenceOf[any](),
		SequenceOf[Renderer](),
		SequenceOf[Fragment](),
	}
	for _, expander := range extra {
		if expander != nil {
			expanders = append(expanders, expander)
		}
	}
	return &Combiner{expanders: expanders}
}

var defaultCombiner = NewCombiner()

// Combine merges items with the default Combiner.
func Combine(items ...any) (Fragment, error) {
	return defaultCombiner.Combine(items...)
}

// Combine flattens items depth first and renders each leaf in argument order.
// Fragments and nodes are taken as-is; Renderers are asked for their markup.
func (c *Combiner) Combine(items ...any) (Fragment, error) {
	var out Fragment
	if err := c.appendItems(&out, items); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Combiner) appendItems(out *Fragment, items []any) error {
	for _, item := range items {
		if err := c.appendItem(out, item); err != nil {
			return err
		}
	}
	return nil
}

func (c *Combiner) appendItem(out *Fragment, item any) error {
	switch value := item.(type) {
	case Fragment:
		*out = append(*out, value...)
		return nil
	case []*html.Node:
		*out = append(*out, value...)
		return nil
	case *html.Node:
		if value == nil {
			return &UnrenderableItemError{Item: item}
		}
		*out = append(*out, value)
		return nil
	}

	for _, expand := range c.expanders {
		if children, ok := expand(item); ok {
			return c.appendItems(out, children)
		}
	}

	renderer, ok := item.(Renderer)
	if !ok || renderer == nil {
		return &UnrenderableItemError{Item: item}
	}
	fragment, err := renderer.Markup()
	if err != nil {
		return err
	}
	*out = append(*out, fragment...)
	return nil
}
