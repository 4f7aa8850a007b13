package main

import (
	"flag"
	"fmt"
	"os"

	varskema "github.com/varskema/varskema"
	"github.com/varskema/varskema/modelfile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "describe":
		describeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "varskema CLI\n\nUsage:\n  varskema describe -f model.yaml [-variant name]\n\nPrints the derived per-variant schemas of a model file.")
}

func describeCmd(args []string) {
	fs := flag.NewFlagSet("describe", flag.ExitOnError)
	var file string
	var variant string
	fs.StringVar(&file, "f", "", "model file to describe")
	fs.StringVar(&variant, "variant", "", "limit output to one variant")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		fatalf("reading %s: %v", file, err)
	}
	spec, err := modelfile.Parse(data, modelfile.NewRegistry())
	if err != nil {
		if iss, ok := varskema.AsIssues(err); ok {
			for _, it := range iss {
				fmt.Fprintf(os.Stderr, "%s: %s at %s\n", it.Code, it.Message, it.Path)
			}
			os.Exit(1)
		}
		fatalf("parsing %s: %v", file, err)
	}

	variants := spec.Set().List()
	if variant != "" {
		variants = []varskema.Variant{varskema.Variant(variant)}
	}
	for _, v := range variants {
		sch, err := spec.Schema(v)
		if err != nil {
			fatalf("%v", err)
		}
		marker := ""
		if v == spec.Default() {
			marker = " (default)"
		}
		fmt.Printf("%s%s:\n", v, marker)
		for _, f := range sch.Fields() {
			if f.Key != f.Name {
				fmt.Printf("  %s (field %s)\n", f.Key, f.Name)
				continue
			}
			fmt.Printf("  %s\n", f.Key)
		}
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
