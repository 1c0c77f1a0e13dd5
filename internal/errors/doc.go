// Package errors provides structured, coded errors for hiccup.
//
// Every error carries a code (e.g., "E002") that maps to a registered
// template with a category, a short message and an explanation.
//
// # Error Categories
//
//   - parse: malformed tag specs (missing tag name, unknown token, [class])
//   - node: values that cannot be rendered, children on void tags,
//     class overrides of an unknown shape
//   - document: JSON / MessagePack documents that cannot be decoded
//   - config: hiccup.toml problems
//   - publish: storing rendered pages failed
//   - cli: command line input/output problems
//
// Parse and node errors match the sentinels ErrParse and ErrInvalidNode
// with errors.Is.
//
// # Usage
//
//	err := errors.New("E002").
//	    WithTrail("div.a!x", []string{"div", ".a"}, "!x")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E002: invalid tag spec
//	//
//	//   │ div.a!x
//	//   │      ^
//	//
//	//   After the tag name only #id, .class and [name]value tokens are allowed.
package errors
