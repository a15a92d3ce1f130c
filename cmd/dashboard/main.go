package main

import (
	"os"

	"github.com/makeinspiresadmin/makeinspires-dashboard-sub000/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
