package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fifth-lang/fifth"
)

func main() {
	ctx := context.Background()

	var timeout time.Duration
	var trace bool
	var dump bool
	var retLimit int
	var expr string
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump dictionary and stacks on exit")
	flag.IntVar(&retLimit, "ret-limit", 0, "cap return stack depth")
	flag.StringVar(&expr, "e", "", "evaluate this source instead of stdin")
	flag.Parse()

	var opts = []fifth.VMOption{
		fifth.WithInput(os.Stdin),
		fifth.WithOutput(os.Stdout),
	}
	if trace {
		opts = append(opts, fifth.WithLogf(log.Printf))
	}
	if retLimit != 0 {
		opts = append(opts, fifth.WithReturnLimit(retLimit))
	}
	vm := fifth.New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var err error
	if expr != "" {
		err = vm.EvalString(ctx, expr)
	} else {
		err = vm.Run(ctx)
	}
	if dump {
		vm.Dump(os.Stderr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %+v\n", err)
		os.Exit(1)
	}
}
