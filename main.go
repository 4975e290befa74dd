// Command moddoc generates README and manual Markdown for a module.
package main

import "github.com/gaurav-prasanna/moddoc/cmd"

func main() {
	cmd.Execute()
}
