package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/joshuapare/scopekit/region"
)

// A scope script is a line-oriented replay of the calls generated code makes
// into the runtime. Blank lines and '#' comments are ignored. Allocations
// are bound to names so later lines can refer to them:
//
//	enter
//	malloc v 64        allocate a 64-byte tracked block as "v"
//	object o           allocate a base object as "o"
//	list xs            allocate a list as "xs"
//	append xs o        append "o" to "xs" (via dispatch)
//	get xs 0           read element 0 of "xs" (via dispatch)
//	retain v           increment "v"'s refcount
//	release v          decrement "v"'s refcount
//	ret v              mark "v" escaping and exit the scope
//	exit
type interp struct {
	rt   *region.Runtime
	refs map[string]region.Ref
	out  io.Writer
}

// runScript executes a script against rt, writing per-line results to out.
// Contract violations inside the runtime panic; the interpreter converts
// them to errors so a bad script reports instead of crashing the tool.
func runScript(rt *region.Runtime, r io.Reader, out io.Writer) error {
	in := &interp{rt: rt, refs: make(map[string]region.Ref), out: out}

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := in.exec(strings.Fields(line)); err != nil {
			return fmt.Errorf("line %d: %q: %w", lineNo, line, err)
		}
	}
	return sc.Err()
}

func (in *interp) exec(fields []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("runtime contract violation: %v", r)
		}
	}()

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "enter":
		in.rt.Enter()

	case "exit":
		in.rt.Exit()

	case "malloc":
		if len(args) != 2 {
			return fmt.Errorf("malloc wants <name> <size>")
		}
		size, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad size %q: %w", args[1], err)
		}
		in.refs[args[0]] = in.rt.Malloc(size)

	case "object":
		if len(args) != 1 {
			return fmt.Errorf("object wants <name>")
		}
		in.refs[args[0]] = in.rt.NewObject()

	case "list":
		if len(args) != 1 {
			return fmt.Errorf("list wants <name>")
		}
		in.refs[args[0]] = in.rt.NewList()

	case "append":
		if len(args) != 2 {
			return fmt.Errorf("append wants <list> <elem>")
		}
		li, err := in.lookup(args[0])
		if err != nil {
			return err
		}
		elem, err := in.lookup(args[1])
		if err != nil {
			return err
		}
		if _, err := in.rt.Invoke(li, region.OpAppend, uint64(elem)); err != nil {
			return err
		}

	case "get":
		if len(args) != 2 {
			return fmt.Errorf("get wants <list> <index>")
		}
		li, err := in.lookup(args[0])
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("bad index %q: %w", args[1], err)
		}
		got, err := in.rt.Invoke(li, region.OpGet, uint64(idx))
		if err != nil {
			return err
		}
		in.report(args[0], idx, region.Ref(got))

	case "retain":
		if len(args) != 1 {
			return fmt.Errorf("retain wants <name>")
		}
		ref, err := in.lookup(args[0])
		if err != nil {
			return err
		}
		in.rt.Retain(ref)

	case "release":
		if len(args) != 1 {
			return fmt.Errorf("release wants <name>")
		}
		ref, err := in.lookup(args[0])
		if err != nil {
			return err
		}
		in.rt.Release(ref)

	case "ret":
		if len(args) != 1 {
			return fmt.Errorf("ret wants <name>")
		}
		ref, err := in.lookup(args[0])
		if err != nil {
			return err
		}
		in.refs[args[0]] = in.rt.Ret(ref)

	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

func (in *interp) lookup(name string) (region.Ref, error) {
	ref, ok := in.refs[name]
	if !ok {
		return region.Nil, fmt.Errorf("unknown name %q", name)
	}
	return ref, nil
}

func (in *interp) report(list string, idx int, got region.Ref) {
	if got == region.Nil {
		fmt.Fprintf(in.out, "get %s[%d] = <absent>\n", list, idx)
		return
	}
	fmt.Fprintf(in.out, "get %s[%d] = %#x\n", list, idx, uint64(got))
}
