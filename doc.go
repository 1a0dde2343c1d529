/*
Package xamine is a schema-driven dissector for the X11 wire protocol.

It compiles XML-XCB protocol schema documents into a type registry, then
decodes captured response buffers (errors, replies, events) against that
registry into a labeled parse tree.

# Compiling a schema

	ctx, _ := xamine.NewContext(xamine.NoFlags)
	doc, _ := xamine.ParseElement(schemaFile)
	for _, diag := range xamine.Compile(ctx, doc) {
	    log.Println(diag)
	}

Compile never aborts on a malformed element; it logs a diagnostic and moves
on to the next one.

# Dissecting a buffer

	cv, _ := xamine.NewConversation(ctx, xamine.NoFlags)
	item, diag := xamine.Examine(cv, xamine.DirResponse, buffer)
	fmt.Print(item)

Request dissection, union decoding, and extension opcode negotiation are
out of scope; see the package-level constants and the Extension/Conversation
types for the registration points a caller uses once it has done that work
itself.
*/
package xamine
