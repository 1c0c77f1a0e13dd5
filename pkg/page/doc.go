// Package page provides page templates built from hooks.
//
// A template is anything that answers CallHook. HTML5 renders a complete
// document and asks its hooks for every variable part:
//
//	html_lang      lang attribute of <html> (default "en")
//	head_start     nodes at the start of <head>
//	meta_charset   <meta charset> value (default "UTF-8")
//	meta_viewport  viewport <meta> content
//	title          <title> content
//	head_end       nodes at the end of <head>
//	body_attrs     node.Attrs for <body>
//	body           content of <body>
//
// A hook is resolved from the page's own Hooks first, then from the parent
// set with SetParent, then from the page's fields. A hook that returns nil
// omits its element.
//
// # Delegation
//
// SetParent forwards unresolved hooks to another template under a renamed
// key, so one parent can serve several pages:
//
//	site := page.Hooks{
//	    "blog_title": func(...any) node.Node { return "Blog" },
//	}
//	p := page.New(body)
//	p.SetParent(site, "blog_", "")
package page
