/*
Package acf parses Valve's ACF/VDF text format, the format of Steam's
appmanifest_*.acf files, into a tree of named blocks.

A document is a sequence of blocks. A block is a quoted name followed by
braces holding key/value pairs and then nested blocks:

	"AppState"
	{
		"appid"		"730"
		"name"		"Counter-Strike 2"
		"UserConfig"
		{
			"language"		"english"
		}
	}

Every token is a double-quoted literal or a brace; whitespace between
tokens is insignificant. Literals have no escape sequences: a backslash is
an ordinary character and a literal ends at the next double quote. Within
a block all key/value pairs must come before the first nested block.

Parsing a file:

	doc, err := acf.ParseFile("appmanifest_730.acf")
	if err != nil {
		// handle error
	}
	name, _ := doc.Find("AppState").Get("name")

When a key repeats inside one block the last value wins. WarnDuplicateKeys
reports these overwrites as non-fatal warnings; FatalOnly strips them:

	doc, err := acf.Parse(src, acf.WarnDuplicateKeys())
	for _, w := range acf.Warnings(err) {
		log.Println(w)
	}
	if err := acf.FatalOnly(err); err != nil {
		// handle error
	}

Failures are reported as an Error value. Read failures carry the path that
could not be read; parse failures carry a ParseError with the source range
of the problem, which can also be rendered as an hcl.Diagnostic.

Decoding into structs is available via Unmarshal and Decode with `acf`
struct tags, and MarshalValue goes the other way. Marshal writes a document
back out in Steam's layout; Format does the same for raw source.
*/
package acf
