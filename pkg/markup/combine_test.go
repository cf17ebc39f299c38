package markup_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-schemaform/pkg/markup"
)

type badge string

func (b badge) Markup() (markup.Fragment, error) {
	return markup.Fragment{markup.El("span", markup.Text(string(b)))}, nil
}

type failing struct{}

func (failing) Markup() (markup.Fragment, error) {
	return nil, errors.New("boom")
}

type badgeGroup struct {
	badges []badge
}

func mustHTML(t *testing.T, fragment markup.Fragment) string {
	t.Helper()
	out, err := fragment.HTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return out
}

func TestCombine_FlattensNestedSequencesInOrder(t *testing.T) {
	a := markup.El("i", markup.Text("a"))
	b := badge("b")
	c := markup.Fragment{markup.El("i", markup.Text("c"))}
	d := badge("d")
	e := markup.El("i", markup.Text("e"))

	fragment, err := markup.Combine(a, []any{b, []any{c, []markup.Renderer{d}}}, e)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}

	want := "<i>a</i><span>b</span><i>c</i><span>d</span><i>e</i>"
	if got := mustHTML(t, fragment); got != want {
		t.Fatalf("combined markup mismatch\nwant: %s\n got: %s", want, got)
	}
}

func TestCombine_RejectsUnrenderableItems(t *testing.T) {
	for _, item := range []any{"plain string", 42, nil, []string{"x"}} {
		_, err := markup.Combine(markup.El("p"), item)
		if !errors.Is(err, markup.ErrUnrenderable) {
			t.Fatalf("item %#v: expected ErrUnrenderable, got %v", item, err)
		}
		var unrenderable *markup.UnrenderableItemError
		if !errors.As(err, &unrenderable) {
			t.Fatalf("item %#v: expected UnrenderableItemError", item)
		}
	}
}

func TestCombine_PropagatesRendererErrors(t *testing.T) {
	if _, err := markup.Combine(failing{}); err == nil || err.Error() != "boom" {
		t.Fatalf("expected renderer error, got %v", err)
	}
}

func TestCombiner_ExtraContainerShapes(t *testing.T) {
	group := badgeGroup{badges: []badge{"x", "y"}}

	if _, err := markup.Combine(group); err == nil {
		t.Fatal("default combiner should not know badgeGroup")
	}

	combiner := markup.NewCombiner(
		func(item any) ([]any, bool) {
			g, ok := item.(badgeGroup)
			if !ok {
				return nil, false
			}
			return []any{g.badges}, true
		},
		markup.SequenceOf[badge](),
	)
	fragment, err := combiner.Combine(group)
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if got, want := mustHTML(t, fragment), "<span>x</span><span>y</span>"; got != want {
		t.Fatalf("want %s, got %s", want, got)
	}
}
