package main

import (
	"github.com/MeKo-Tech/stepreport/cmd/stepreport/cmd"
)

func main() {
	cmd.Execute()
}
