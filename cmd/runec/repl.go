package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/peterh/liner"

	"github.com/jbdutton/rune-go/internal/ast"
	"github.com/jbdutton/rune-go/internal/ir"
	"github.com/jbdutton/rune-go/internal/irc"
	"github.com/jbdutton/rune-go/internal/lexer"
	"github.com/jbdutton/rune-go/internal/parser"
)

// runIRRepl starts an interactive loop that compiles each line through the
// IR compiler (C7) and evaluates it with the IR evaluator (C6) — a live
// window onto const-folding and template expansion, the same path
// internal/compile drives over whole files.
func runIRRepl() {
	line := liner.NewLiner()
	defer line.Close()
	line.SetMultiLineMode(false)

	historyFile := filepath.Join(os.TempDir(), ".runec_ir_history")
	if f, err := os.Open(historyFile); err == nil {
		_, _ = line.ReadHistory(f)
		f.Close()
	}

	fmt.Printf("%s %s\n", bold("runec ir"), Version)
	fmt.Println("Type an expression to evaluate it; :quit to exit.")
	fmt.Println()

	compiler := irc.New("<ir>")
	evaluator := ir.NewEvaluator(nil)

	for {
		input, err := line.Prompt("ir> ")
		if err != nil {
			fmt.Println()
			break
		}
		if input == "" {
			continue
		}
		line.AppendHistory(input)
		if input == ":quit" || input == ":q" {
			break
		}

		l := lexer.New(input, "<ir>")
		p := parser.New(l)
		program := p.Parse()
		if len(p.Errors()) > 0 {
			for _, e := range p.Errors() {
				fmt.Fprintf(os.Stderr, "%s: %v\n", red("parse error"), e)
			}
			continue
		}
		if program == nil || program.File == nil || len(program.File.Statements) == 0 {
			continue
		}

		last := program.File.Statements[len(program.File.Statements)-1]
		expr, ok := last.(ast.Expr)
		if !ok {
			fmt.Fprintf(os.Stderr, "%s: not an expression\n", red("error"))
			continue
		}

		node, err := compiler.Compile(expr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("compile error"), err)
			continue
		}
		v, err := evaluator.Evaluate(node)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("eval error"), err)
			continue
		}
		printValue(v)
	}

	if f, err := os.Create(historyFile); err == nil {
		_, _ = line.WriteHistory(f)
		f.Close()
	}
}

func printValue(v ir.Value) {
	if s, ok := v.Stringify(); ok {
		fmt.Printf("%s %s\n", cyan("=>"), green(s))
		return
	}
	fmt.Printf("%s %s\n", cyan("=>"), yellow(v.Kind.String()))
}
