// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tax is a metapackage for commands
// that dealt with the taxonomy of a classifier database.
package tax

import (
	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/cmd/krakentax/tax/desc"
	"github.com/js-arias/krakentax/cmd/krakentax/tax/lca"
	"github.com/js-arias/krakentax/cmd/krakentax/tax/lineage"
	"github.com/js-arias/krakentax/cmd/krakentax/tax/newick"
)

var Command = &command.Command{
	Usage: "tax <command> [<argument>...]",
	Short: "commands for classifier taxonomies",
}

func init() {
	Command.Add(desc.Command)
	Command.Add(lca.Command)
	Command.Add(lineage.Command)
	Command.Add(newick.Command)
}
