// cmd/fachunk/main.go
package main

import (
	"fachunk/internal/app"
	"fachunk/internal/appshell"
)

func main() {
	appshell.Main(app.RunContext)
}
