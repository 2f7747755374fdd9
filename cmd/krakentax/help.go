// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(outputFilesGuide)
	app.Add(reportFilesGuide)
	app.Add(sampleFilesGuide)
}

var reportFilesGuide = &command.Command{
	Usage: "report-files",
	Short: "about taxonomy report files",
	Long: `
Krakentax builds the taxonomy from a taxonomy report, either the output of
'kraken2-inspect' or the report of a classification run ('--report' option of
kraken2). A report file is a tab-delimited file with the following fields:

	- percentage of the reads (or minimizers) in the clade
	- number of reads in the clade
	- number of reads assigned directly to the taxon
	- rank code
	- taxon ID
	- taxon name

The name of the taxon is indented with two spaces for each level of the
taxonomy, and each taxon is a child of the last taxon found at the previous
level. Here is an example file:

	# Database options: nucleotide db, k = 35, l = 31
	100.00	1205	0	R	1	root
	 99.10	1194	0	R1	131567	  cellular organisms
	 99.10	1194	2	D	2	    Bacteria
	 60.00	723	723	S	562	      Escherichia coli

The last taxon found at a level is remembered until another taxon is found
at the same level, so a taxon is attached to it even if a shallower taxon was
found in between.

The first record is the root of the taxonomy. Lines starting with '#' are
ignored, as well as the line of unclassified reads (rank code "U") of a
classification report.

The rank codes are single letters for the main ranks: "D" for domains, "K"
for kingdoms, "P" for phyla, "C" for classes, "O" for orders, "F" for
families, "G" for genera, and "S" for species. Intermediate ranks are
indicated with a number after the rank letter (for example "G1" for a taxon
below a genus). Taxa with a rank code without an equivalent linnean rank are
considered as unranked.

Commands that read a report accept several report files separated by commas
(for example "-r bacteria.txt,viruses.txt"). The taxonomies of the files are
merged and must share the taxa in common.

Files ending in ".gz" or ".xz" are decompressed while reading.
	`,
}

var outputFilesGuide = &command.Command{
	Usage: "output-files",
	Short: "about per-read classifier output files",
	Long: `
The per-read output of a classifier is a tab-delimited file without header.
Each line is a read (or a read pair) with the following fields:

	- classification status, "C" for classified, or "U" for unclassified
	- read identifier
	- taxon ID, or a taxonomy string as in "Bacteria (taxid 3)"
	- sequence length, in paired reads, the length of each mate separated
	  by '|'
	- k-mer classification string

The classification string is a space separated list of key:count pairs, in
which key is the taxon ID assigned to a run of k-mers, and count is the number
of k-mers in the run. The key "A" is used for k-mers with an ambiguous
nucleotide, and the key "0" for k-mers not found in the database. In paired
reads, the k-mers of each mate are separated by '|:|'. Here is an example
line:

	C	read-1	1102	251|250	3:179 1102:5 535:4 |:| 3:9 307:1 1102:5

The confidence of a read is the proportion of the pairs of the
classification string that are not "0" pairs.

Files ending in ".gz" or ".xz" are decompressed while reading.
	`,
}

var sampleFilesGuide = &command.Command{
	Usage: "sample-files",
	Short: "about sample sheet files",
	Long: `
A sample sheet is a tab-delimited file used to give a name to the
classifier output of each sample. It has the following fields:

	- sample  the name of the sample
	- path    the path of the per-read classifier output of the sample

Here is an example file:

	# krakentax samples
	sample	path
	gut-01	gut-01.kraken.gz
	gut-02	gut-02.kraken.gz

Relative paths are interpreted from the folder of the sample sheet.
	`,
}
