package page

import "github.com/vango-dev/hiccup/pkg/node"

// Meta returns a <meta name content> element.
func Meta(name, content string) node.Tag {
	return node.H("meta", node.A("name", name, "content", content))
}

// Property returns an OpenGraph style <meta property content> element.
func Property(property, content string) node.Tag {
	return node.H("meta", node.A("property", property, "content", content))
}

// Stylesheet returns a stylesheet <link>.
func Stylesheet(href string) node.Tag {
	return node.H("link[rel]stylesheet", node.A("href", href))
}

// Script returns an external <script>. Deferred scripts get the defer
// attribute.
func Script(src string, deferred bool) node.Tag {
	return node.H("script", node.A("src", src, "defer", deferred))
}

// InlineScript returns a <script> with trusted inline code.
func InlineScript(code string) node.Tag {
	return node.H("script", node.Raw(code))
}

// InlineStyle returns a <style> element with trusted CSS.
func InlineStyle(css string) node.Tag {
	return node.H("style", node.Raw(css))
}
