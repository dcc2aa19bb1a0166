package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wippyai/script-bridge/arena"
	"github.com/wippyai/script-bridge/driver"
	"github.com/wippyai/script-bridge/frame"
	"github.com/wippyai/script-bridge/handles"
	"github.com/wippyai/script-bridge/natives"
	"github.com/wippyai/script-bridge/registry"
	"github.com/wippyai/script-bridge/sched"
)

func main() {
	var (
		nativeName  = flag.String("native", "", "Native function to call")
		argsStr     = flag.String("args", "", "Arguments (comma-separated)")
		sessionsStr = flag.String("sessions", "101,102,103", "Connected session IDs for the playground host")
		list        = flag.Bool("list", false, "List registered natives and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	host, err := newPlayground(*sessionsStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		fmt.Println("Registered natives:")
		for _, sig := range host.catalog {
			fmt.Printf("  %s\n", sig.format(nil))
		}
		return
	}

	if *interactive {
		if err := runInteractive(host); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *nativeName == "" {
		fmt.Fprintln(os.Stderr, "Usage: call -native <NAME> [-args a,b,c]")
		fmt.Fprintln(os.Stderr, "       call -list")
		fmt.Fprintln(os.Stderr, "       call -i  (interactive mode)")
		os.Exit(1)
	}

	if err := host.callAndPrint(*nativeName, *argsStr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playground wires a registry of demo natives behind one driver so the
// command has something real to call.
type playground struct {
	reg     *registry.Registry
	drv     *driver.Driver
	mem     *arena.Arena
	ledger  *arena.Ledger
	objects *handles.Table
	ticks   *sched.TickScheduler
	catalog []nativeSig
}

type nativeSig struct {
	name   string
	result string
	params []paramSig
}

type paramSig struct {
	name string
	typ  string
}

func newPlayground(sessionsStr string) (*playground, error) {
	var ids []int32
	for _, s := range strings.Split(sessionsStr, ",") {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("bad session id %q: %w", s, err)
		}
		ids = append(ids, int32(v))
	}

	p := &playground{
		reg:     registry.New(),
		mem:     arena.New(),
		ledger:  arena.NewLedger(),
		objects: handles.NewTable(),
		ticks:   sched.New(),
	}

	p.reg.MustRegister("ADD_INT32", func(f *frame.Frame) error {
		f.SetResultInt32(f.Int32(0) + f.Int32(1))
		return nil
	})
	p.reg.MustRegister("ECHO_STRING", func(f *frame.Frame) error {
		return f.SetResultString(f.String(0))
	})
	p.reg.MustRegister("SCALE_FLOAT", func(f *frame.Frame) error {
		f.SetResultFloat64(f.Float64(0) * f.Float64(1))
		return nil
	})
	p.reg.MustRegister("QUEUE_ON_TICK", func(f *frame.Frame) error {
		p.ticks.Schedule(f.Int64(0), func() {})
		return nil
	})
	p.reg.MustRegister("ADVANCE_TICK", func(f *frame.Frame) error {
		due := p.ticks.Due(f.Int64(0))
		for _, fn := range due {
			fn()
		}
		f.SetResultInt32(int32(len(due)))
		return nil
	})

	if err := natives.RegisterSessionNatives(p.reg, p.objects, staticSessions(ids)); err != nil {
		return nil, err
	}

	p.drv = driver.New(p.reg, frame.WithAllocator(p.mem), frame.WithLedger(p.ledger))
	p.catalog = []nativeSig{
		{name: "ADD_INT32", result: "i32", params: []paramSig{{"a", "i32"}, {"b", "i32"}}},
		{name: "ECHO_STRING", result: "string", params: []paramSig{{"s", "string"}}},
		{name: "SCALE_FLOAT", result: "f64", params: []paramSig{{"value", "f64"}, {"factor", "f64"}}},
		{name: "QUEUE_ON_TICK", params: []paramSig{{"tick", "i64"}}},
		{name: "ADVANCE_TICK", result: "i32", params: []paramSig{{"tick", "i64"}}},
		{name: natives.NameCreateSessionIterator, result: "handle"},
		{name: natives.NameIteratorHasNext, result: "bool", params: []paramSig{{"iter", "handle"}}},
		{name: natives.NameIteratorCurrentID, result: "i32", params: []paramSig{{"iter", "handle"}}},
		{name: natives.NameIteratorAdvance, params: []paramSig{{"iter", "handle"}}},
		{name: natives.NameDestroyIterator, params: []paramSig{{"iter", "handle"}}},
	}
	return p, nil
}

func (sig nativeSig) format(style func(string) string) string {
	if style == nil {
		style = func(s string) string { return s }
	}
	var params []string
	for _, p := range sig.params {
		params = append(params, p.name+": "+style(p.typ))
	}
	out := sig.name + "(" + strings.Join(params, ", ") + ")"
	if sig.result != "" {
		out += " -> " + style(sig.result)
	}
	return out
}

func (p *playground) lookup(name string) (nativeSig, bool) {
	for _, sig := range p.catalog {
		if sig.name == name {
			return sig, true
		}
	}
	return nativeSig{}, false
}

func (p *playground) call(sig nativeSig, raw []string) (string, error) {
	if len(raw) != len(sig.params) {
		return "", fmt.Errorf("%s takes %d arguments, got %d", sig.name, len(sig.params), len(raw))
	}

	args := make([]any, len(raw))
	for i, r := range raw {
		args[i] = convertArg(r, sig.params[i].typ)
	}

	id := registry.Identifier(sig.name)
	switch sig.result {
	case "bool":
		v, err := p.drv.CallBool(id, args...)
		return fmt.Sprintf("%v", v), err
	case "i32":
		v, err := p.drv.CallInt32(id, args...)
		return fmt.Sprintf("%d", v), err
	case "i64":
		v, err := p.drv.CallInt64(id, args...)
		return fmt.Sprintf("%d", v), err
	case "f64":
		v, err := p.drv.CallFloat64(id, args...)
		return fmt.Sprintf("%g", v), err
	case "string":
		return p.drv.CallString(id, args...)
	case "handle":
		v, err := p.drv.CallPointer(id, args...)
		return fmt.Sprintf("%d", v), err
	default:
		return "ok", p.drv.Call(id, args...)
	}
}

func (p *playground) callAndPrint(name, argsStr string) error {
	sig, ok := p.lookup(name)
	if !ok {
		return fmt.Errorf("unknown native %q (use -list)", name)
	}

	var raw []string
	if argsStr != "" {
		raw = strings.Split(argsStr, ",")
	}

	fmt.Printf("Calling %s...\n", sig.format(nil))
	result, err := p.call(sig, raw)
	if err != nil {
		return err
	}
	fmt.Printf("Result: %s\n", result)
	return nil
}

func convertArg(value, typ string) any {
	value = strings.TrimSpace(value)
	switch typ {
	case "i32":
		v, _ := strconv.ParseInt(value, 10, 32)
		return int32(v)
	case "i64":
		v, _ := strconv.ParseInt(value, 10, 64)
		return v
	case "f64":
		v, _ := strconv.ParseFloat(value, 64)
		return v
	case "bool":
		return value == "true" || value == "1"
	case "handle":
		v, _ := strconv.ParseUint(value, 10, 64)
		return uintptr(v)
	default:
		return value
	}
}

type staticSessions []int32

func (s staticSessions) ConnectedIDs() []int32 { return append([]int32(nil), s...) }
