package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/maseology/mmio"
	"github.com/maseology/topmodel"
)

func main() {
	verbose := flag.Bool("v", false, "draw a progress bar while evaluating")
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: topmodel [-v] <control file>")
	}

	fmt.Println("")
	tt := mmio.NewTimer()

	dom, err := topmodel.LoadDomain(flag.Arg(0))
	if err != nil {
		log.Fatalf("topmodel: %v", err)
	}
	dom.Verbose = *verbose
	tt.Print("domain load complete\n")

	if _, err := dom.Run(); err != nil {
		log.Fatalf("topmodel: %v", err)
	}
	tt.Lap("\nrun complete")
}
