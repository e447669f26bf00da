// Copyright © 2018 One Concern

package main

import (
	"github.com/oneconcern/gpmodel/cmd/gpmodel/cmd"
)

func main() {
	cmd.Execute()
}
