package main

import (
	"encoding/json"
	"fmt"
	"os"

	"be04/pkg/pabean"
	"be04/pkg/pdftext"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: extract_dok <file.pdf> [pib|sppb]")
		os.Exit(2)
	}
	p := os.Args[1]
	jenis := ""
	if len(os.Args) > 2 {
		jenis = os.Args[2]
	}

	pages, err := pdftext.Pages(p)
	fmt.Printf("Pages err=%v n=%d\n", err, len(pages))
	if err != nil {
		os.Exit(1)
	}

	if jenis == "" || jenis == "pib" {
		d, err := pabean.ExtractPIB(pages, pabean.VariantUtama)
		fmt.Printf("ExtractPIB err=%v\n", err)
		if err == nil {
			b, _ := json.MarshalIndent(d, "", "  ")
			fmt.Printf("%s\n", b)
		}
	}
	if jenis == "" || jenis == "sppb" {
		d := pabean.ExtractSPPB(pages, pabean.VariantUtama)
		b, _ := json.MarshalIndent(d, "", "  ")
		fmt.Printf("%s\n", b)
	}
}
