// Package otutab holds the input and output plumbing shared by the OTU tools:
// opening local, gzip/bzip2/xz/zip-compressed or gs:// inputs, walking
// tab-separated rows, sniffing delimiters, and buffered output files.
//
// The tools themselves live under cmd/: cluster2otu builds ranked OTU tables
// from a cd-hit cluster file, mergeotu consolidates OTUs by species-level
// taxonomy, corepan draws core and pan species curves, and ifprint filters
// table rows on a column value.
package otutab
