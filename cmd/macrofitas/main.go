// Package main provides the macrofitas CLI application.
// macrofitas cross-references plant names with taxonomic and occurrence
// databases.
package main

import (
	"github.com/gnames/macrofitas/cmd"
)

func main() {
	cmd.Execute()
}
