package markup_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-schemaform/pkg/markup"
)

func TestEl_RendersAttributesAndText(t *testing.T) {
	node := markup.El("label",
		markup.Attr("for", "fg-email"),
		markup.Class("fg-label", "", "strong"),
		markup.Text(`Tom & "Jerry"`),
	)

	got := mustHTML(t, markup.Fragment{node})
	want := `<label for="fg-email" class="fg-label strong">Tom &amp; &#34;Jerry&#34;</label>`
	if got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}
}

func TestEl_FlagsAndSortedAttrs(t *testing.T) {
	node := markup.El("input",
		markup.Attrs(map[string]string{"type": "checkbox", "name": "agree"}),
		markup.Flag("checked", true),
		markup.Flag("disabled", false),
	)

	got := mustHTML(t, markup.Fragment{node})
	want := `<input name="agree" type="checkbox" checked=""/>`
	if got != want {
		t.Fatalf("want %s\n got %s", want, got)
	}
}

func TestChildren_CopiesAttachedNodes(t *testing.T) {
	shared := markup.El("b", markup.Text("x"))
	first := markup.El("p", markup.Children(shared))
	second := markup.El("p", markup.Children(shared))

	got := mustHTML(t, markup.Fragment{first, second})
	if got != "<p><b>x</b></p><p><b>x</b></p>" {
		t.Fatalf("unexpected markup %s", got)
	}
}

func TestRaw_SanitizesActiveContent(t *testing.T) {
	fragment, err := markup.Raw(`<h2 class="title" onclick="steal()">Sign up</h2><script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("raw: %v", err)
	}
	got := mustHTML(t, fragment)
	if strings.Contains(got, "script") || strings.Contains(got, "onclick") {
		t.Fatalf("active content survived: %s", got)
	}
	if !strings.Contains(got, `<h2 class="title">Sign up</h2>`) {
		t.Fatalf("heading lost: %s", got)
	}
}
