// Command xaminectl loads XML-XCB protocol schemas and dissects captured
// X11 wire buffers against them.
package main

func main() {
	execute()
}
