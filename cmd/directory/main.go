package main

import (
	"os"

	"github.com/ogurasousui/employee-directory/internal/adapters/cli"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
