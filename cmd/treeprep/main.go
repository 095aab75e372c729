// cmd/treeprep/main.go
package main

import (
	"treeprep/internal/app"
	"treeprep/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
