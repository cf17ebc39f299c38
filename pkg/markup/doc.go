// Package markup builds HTML fragments as golang.org/x/net/html node trees and
// merges heterogeneous renderable items into one ordered fragment.
//
// A Fragment is already-rendered markup. Anything implementing Renderer can
// produce one. Combine accepts either, plus nested sequences of both; the
// sequence shapes it descends into are an explicit allow-list that callers
// extend with Expander values such as SequenceOf.
package markup
