package markup

import "golang.org/x/net/html"

// Find returns the first node in document order, across every root of the
// fragment, for which match reports true.
func (f Fragment) Find(match func(*html.Node) bool) *html.Node {
	for _, root := range f {
		if found := find(root, match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node, in document order, for which match reports true.
func (f Fragment) FindAll(match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	for _, root := range f {
		collect(root, match, &out)
	}
	return out
}

// FindByID returns the element whose id attribute equals id.
func (f Fragment) FindByID(id string) *html.Node {
	if id == "" {
		return nil
	}
	return f.Find(func(n *html.Node) bool {
		value, ok := AttrValue(n, "id")
		return ok && value == id
	})
}

// Closest walks from n up through its ancestors and returns the first element
// for which match reports true.
func Closest(n *html.Node, match func(*html.Node) bool) *html.Node {
	for current := n; current != nil; current = current.Parent {
		if current.Type == html.ElementNode && match(current) {
			return current
		}
	}
	return nil
}

// HasAttr reports whether n carries key.
func HasAttr(key string) func(*html.Node) bool {
	return func(n *html.Node) bool {
		_, ok := AttrValue(n, key)
		return ok
	}
}

func find(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		if found := find(child, match); found != nil {
			return found
		}
	}
	return nil
}

func collect(n *html.Node, match func(*html.Node) bool, out *[]*html.Node) {
	if n == nil {
		return
	}
	if n.Type == html.ElementNode && match(n) {
		*out = append(*out, n)
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		collect(child, match, out)
	}
}
