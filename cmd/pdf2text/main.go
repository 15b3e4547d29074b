package main

import (
	"fmt"
	"os"

	"PDFNarrator/internal/service/extract"
)

// Small utility: prints the extracted plain text of a document to stdout.
func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: pdf2text <path-to-document>")
		os.Exit(2)
	}

	extractor, err := extract.ForFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	text, err := extractor.Extract(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(text)
}
