package main

import (
	"github.com/jsphweid/arcdex/cmd"
)

func main() {
	cmd.Execute()
}
