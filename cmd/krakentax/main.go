// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Krakentax is a tool to explore the taxonomy
// and the per-read output
// of k-mer based metagenomic classifiers.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/cmd/krakentax/reads"
	"github.com/js-arias/krakentax/cmd/krakentax/tax"
)

var app = &command.Command{
	Usage: "krakentax <command> [<argument>...]",
	Short: "a tool to explore k-mer classifier taxonomies",
}

func init() {
	app.Add(reads.Command)
	app.Add(tax.Command)
}

func main() {
	app.Main()
}
