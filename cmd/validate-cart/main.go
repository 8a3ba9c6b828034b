// Command validate-cart checks recorded cart API responses.
//
//	validate-cart -in responses.jsonl > valid.jsonl
//	curl -s "$API/cart?userId=u1" | validate-cart
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/Gunvolt24/cartsync/pkg/validate"
)

func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl); stdin (jsonl) when empty")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	flag.Parse()

	format, err := validate.ParseFormat(*formatStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx := context.Background()
	validator := validate.NewSnapshotValidator()

	var summary validate.Summary
	if *inputPath == "" {
		var res validate.JSONLResult
		res, err = validate.ValidateJSONLStream(ctx, validator, os.Stdin, os.Stdout)
		summary = validate.Summary{Valid: res.ValidLinesCount, Invalid: res.InvalidLinesCount}
	} else {
		summary, err = validate.ValidateFile(ctx, validator, *inputPath, format, os.Stdout)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}
