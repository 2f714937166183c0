package main

import (
	"os"

	"github.com/penwyp/go-timelog/commands"
	"github.com/penwyp/go-timelog/internal/util"
)

func main() {
	defer util.CloseLogger()

	if err := commands.Execute(); err != nil {
		util.CloseLogger()
		os.Exit(1)
	}
}
