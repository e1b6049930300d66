package main

import (
	"github.com/newsdhq/newsd/internal/cmd"
)

func main() {
	cmd.Execute()
}
