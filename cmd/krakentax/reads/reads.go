// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package reads is a metapackage for commands
// that dealt with the per-read output of a classifier.
package reads

import (
	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/cmd/krakentax/reads/conf"
	"github.com/js-arias/krakentax/cmd/krakentax/reads/kmerscmd"
	"github.com/js-arias/krakentax/cmd/krakentax/reads/merge"
)

var Command = &command.Command{
	Usage: "reads <command> [<argument>...]",
	Short: "commands for classified reads",
}

func init() {
	Command.Add(conf.Command)
	Command.Add(kmerscmd.Command)
	Command.Add(merge.Command)
}
