// Command fanbase generates fan base plates as STL files.
package main

import "github.com/fanparts/fanbase/internal/cli"

func main() {
	cli.Execute()
}
