// cmd/typeshell/main.go
//
// typeshell is a development REPL over the type registry and lattice
// (component J, SPEC_FULL §2): punch in type names and watch subtyping,
// join, meet, and textual rendering. It is ordinary dev tooling, not part
// of the analysis core's external interface. Grounded on cmd/msg/main.go's
// liner-based REPL loop (history file, Ctrl+C handling, prompt/continue
// split) adapted from evaluating MindScript source to evaluating type
// expressions against a tscore.Registry.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/daios-ai/tscore"
)

const (
	historyFile = ".typeshell_history"
	prompt      = "tscore> "
)

var helpText = `
commands:
  <name>              parse and render a type by name (number, string, Foo, ?Foo, A|B)
  sub A B              is A <: B
  join A B              render join(A, B)
  meet A B              render meet(A, B)
  typeof A              typeof-tag of A
  eq A B                ternary test_for_equality(A, B)
  :help                 show this text
  :quit                 exit
`

func main() {
	os.Exit(run())
}

func run() int {
	fmt.Println("tscore typeshell — type :help for commands, :quit to exit")

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	reg := tscore.NewRegistry()

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)

		switch {
		case line == ":quit":
			return 0
		case line == ":help":
			fmt.Print(helpText)
		default:
			eval(reg, line)
		}
	}
	return 0
}

func eval(reg *tscore.Registry, line string) {
	fields := strings.Fields(line)
	switch {
	case len(fields) == 3 && fields[0] == "sub":
		a, b := parseType(reg, fields[1]), parseType(reg, fields[2])
		fmt.Println(reg.IsSubtype(a, b))
	case len(fields) == 3 && fields[0] == "join":
		a, b := parseType(reg, fields[1]), parseType(reg, fields[2])
		fmt.Println(reg.TypeString(reg.Join(a, b)))
	case len(fields) == 3 && fields[0] == "meet":
		a, b := parseType(reg, fields[1]), parseType(reg, fields[2])
		fmt.Println(reg.TypeString(reg.Meet(a, b)))
	case len(fields) == 3 && fields[0] == "eq":
		a, b := parseType(reg, fields[1]), parseType(reg, fields[2])
		fmt.Println(ternaryString(reg.TestForEquality(a, b)))
	case len(fields) == 2 && fields[0] == "typeof":
		fmt.Println(typeofTags(reg, parseType(reg, fields[1])))
	case len(fields) == 1:
		fmt.Println(reg.TypeString(parseType(reg, fields[0])))
	default:
		fmt.Println("unrecognized input, try :help")
	}
}

// parseType accepts the textual forms a user would type at a prompt:
// a bare name, "?Name" for nullable, or "A|B|C" for a union — enough to
// exercise CreateUnion and ParseTypeName without a full doc-expression
// parser, which is this core's out-of-scope collaborator (spec.md §1).
func parseType(reg *tscore.Registry, text string) tscore.TypeID {
	if strings.Contains(text, "|") {
		parts := strings.Split(text, "|")
		alts := make([]tscore.TypeID, len(parts))
		for i, p := range parts {
			alts[i] = parseType(reg, p)
		}
		return reg.CreateUnion(alts...)
	}
	if strings.HasPrefix(text, "?") {
		base := reg.ParseTypeName(text[1:])
		return reg.CreateUnion(base, reg.GetNative(tscore.NativeNull))
	}
	return reg.ParseTypeName(text)
}

// typeofTags lists the typeof-tags a value of type t can have, joined by
// "|" for a union spanning several tags, or "?" when none is known.
func typeofTags(reg *tscore.Registry, t tscore.TypeID) string {
	var tags []string
	for _, tag := range []string{"number", "string", "boolean", "function", "object", "undefined"} {
		if reg.Type(reg.RestrictByTypeof(t, tag)).Kind != tscore.KindNo {
			tags = append(tags, tag)
		}
	}
	if len(tags) == 0 {
		return "?"
	}
	return strings.Join(tags, "|")
}

func ternaryString(t tscore.Ternary) string {
	switch t {
	case tscore.TernaryTrue:
		return "TRUE"
	case tscore.TernaryFalse:
		return "FALSE"
	default:
		return "UNKNOWN"
	}
}
