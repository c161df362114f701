package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/xenharmonic-devs/sonic-weave-sub001/ast"
	"github.com/xenharmonic-devs/sonic-weave-sub001/eval"
	"github.com/xenharmonic-devs/sonic-weave-sub001/prelude"
	"github.com/xenharmonic-devs/sonic-weave-sub001/rootctx"
	"github.com/xenharmonic-devs/sonic-weave-sub001/value"
)

// demoProgram stands in for what a parser would hand the evaluator given
// the source text "4::8; (3/2)^2" — the harmonic segment from the 4th to
// the 8th partial, followed by a stacked fifth.
func demoProgram() ast.Node {
	return ast.BlockStatement{
		Body: []ast.Node{
			ast.HarmonicSegment{
				Start: ast.IntegerLiteral{Value: 4},
				End:   ast.IntegerLiteral{Value: 8},
			},
			ast.BinaryExpression{
				Op:    "^",
				Left:  ast.FractionLiteral{Num: 3, Den: 2},
				Right: ast.IntegerLiteral{Value: 2},
			},
		},
	}
}

func run(gas int64, components int) error {
	root, err := rootctx.New(
		rootctx.WithGas(gas),
		rootctx.WithNumComponents(components),
		rootctx.WithWarn(func(msg string) { fmt.Fprintf(os.Stderr, "warn: %s\n", msg) }),
	)
	if err != nil {
		return errors.Wrap(err, "sonicweave: building root context")
	}

	v := eval.NewVisitor(root)
	prelude.Load(root, v)

	scale, err := v.Run(demoProgram())
	if err != nil {
		return errors.Wrap(err, "sonicweave: evaluating program")
	}

	for i, elem := range scale {
		iv, ok := elem.(value.Interval)
		if !ok {
			fmt.Printf("%d: %s\n", i, elem.Kind())
			continue
		}
		fmt.Printf("%d: %.3f cents\n", i, iv.Number.TotalCents())
	}
	return nil
}

func main() {
	gas := flag.Int64("gas", -1, "evaluation gas budget, -1 for unlimited")
	components := flag.Int("components", 23, "prime-exponent vector length new intervals are built with")
	flag.Parse()

	if err := run(*gas, *components); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
