// Command rpcquickly-admin inspects a running rpcquickly server (list,
// ping) and can also serve one handler whose domain/range types are given
// entirely as command-line data rather than Go generic parameters --
// exercising dispatch.Add's runtime signature check instead of the
// compile-time-derived one AddInfer uses.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/erer1243/rpcquickly/codec"
	"github.com/erer1243/rpcquickly/dispatch"
	rpclogging "github.com/erer1243/rpcquickly/internal/logging"
	"github.com/erer1243/rpcquickly/internal/uicolor"
	"github.com/erer1243/rpcquickly/rpcclient"
	"github.com/erer1243/rpcquickly/rpcserver"
	"github.com/erer1243/rpcquickly/value"
)

func list(c *cli.Context) error {
	addr := c.String("addr")

	client, err := rpcclient.Connect(addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", addr, err)
	}

	infos, err := client.RpcFunctions()
	if err != nil {
		return fmt.Errorf("rpc_functions: %w", err)
	}

	if len(infos) == 0 {
		fmt.Println(uicolor.Yellow("no functions registered"))
		return nil
	}

	for _, info := range infos {
		fmt.Printf("%s(%s) -> %s\n",
			uicolor.Cyan(info.Name),
			info.Signature.Domain.String(),
			info.Signature.Range.String())
	}
	return nil
}

func ping(c *cli.Context) error {
	addr := c.String("addr")
	client, err := rpcclient.Connect(addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer client.Close()

	if err := client.Ping(); err != nil {
		return fmt.Errorf("ping %s: %w", addr, err)
	}
	fmt.Println(uicolor.Green(addr + " is alive"))
	return nil
}

// parseType parses a compact type descriptor into a value.Type:
// "any", "nil", "int", "string" name a primitive; "string:a,b,c" and
// "int:1,2,3" build a OneOf over string or int members.
func parseType(desc string) (value.Type, error) {
	switch desc {
	case "any":
		return value.AnyType(), nil
	case "nil":
		return value.NilType(), nil
	case "int":
		return value.IntType(), nil
	case "string":
		return value.StringType(), nil
	}

	kind, rest, ok := strings.Cut(desc, ":")
	if !ok {
		return value.Type{}, fmt.Errorf("unrecognized type descriptor %q", desc)
	}
	members := strings.Split(rest, ",")
	switch kind {
	case "string":
		return value.StringOneOfType(members...), nil
	case "int":
		values := make([]value.Value, len(members))
		for i, m := range members {
			n, err := strconv.ParseInt(strings.TrimSpace(m), 10, 64)
			if err != nil {
				return value.Type{}, fmt.Errorf("int member %q: %w", m, err)
			}
			values[i] = value.Int64(n)
		}
		return value.OneOfType(values...), nil
	default:
		return value.Type{}, fmt.Errorf("unrecognized type descriptor %q", desc)
	}
}

// dynamicEcho is a Handler whose Domain/Range are only known as data at
// registration time -- its Go type parameters are fixed to value.Value, and
// its real signature comes from sig, supplied by the caller of serve.
type dynamicEcho struct {
	name string
	sig  value.Signature
}

func (h *dynamicEcho) Name() string { return h.name }

func (h *dynamicEcho) Signature() value.Signature { return h.sig }

func (h *dynamicEcho) Call(_ context.Context, v value.Value) value.Value { return v }

// unsignedEcho is a Handler that deliberately omits Signature(), used to
// demonstrate dispatch.Add's registration-time panic for a handler passed
// without an explicit signature.
type unsignedEcho struct{ name string }

func (h unsignedEcho) Name() string { return h.name }

func (h unsignedEcho) Call(_ context.Context, v value.Value) value.Value { return v }

func serve(c *cli.Context) (err error) {
	port := c.Int("port")
	name := c.String("name")

	reg := dispatch.NewRegistry()

	if c.Bool("bad-handler") {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("registration panic (expected): %v", r)
			}
		}()
		dispatch.Add[value.Value, value.Value](reg, unsignedEcho{name: name}, codec.ValueCodec, codec.ValueCodec)
		return fmt.Errorf("dispatch.Add did not panic for a handler with no Signature method")
	}

	domainType, err := parseType(c.String("domain"))
	if err != nil {
		return fmt.Errorf("--domain: %w", err)
	}
	rangeType, err := parseType(c.String("range"))
	if err != nil {
		return fmt.Errorf("--range: %w", err)
	}

	h := &dynamicEcho{name: name, sig: value.Signature{Domain: domainType, Range: rangeType}}
	dispatch.Add[value.Value, value.Value](reg, h, codec.ValueCodec, codec.ValueCodec)

	log := rpclogging.Setup("rpcquickly-admin", logging.INFO)
	srv := rpcserver.NewServer(reg, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Printf("serving %s(%s) -> %s on :%d\n",
		uicolor.Cyan(name), domainType.String(), rangeType.String(), port)
	return srv.ServeTCP(ctx, port)
}

func main() {
	app := cli.NewApp()
	app.Name = "rpcquickly-admin"
	app.Usage = "inspect and serve rpcquickly functions"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "addr", Value: "127.0.0.1:8888", Usage: "server address to connect to"},
	}
	app.Commands = []cli.Command{
		{
			Name:    "list",
			Aliases: []string{"ls"},
			Usage:   "list registered rpc functions and their signatures",
			Action:  list,
		},
		{
			Name:   "ping",
			Usage:  "check that the server is alive",
			Action: ping,
		},
		{
			Name:  "serve",
			Usage: "serve one handler whose signature is given as data, not Go generics",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "port", Value: 8888, Usage: "TCP port to serve on"},
				cli.StringFlag{Name: "name", Value: "Echo", Usage: "registered function name"},
				cli.StringFlag{Name: "domain", Value: "any", Usage: "domain type descriptor (any, nil, int, string, string:a,b,c, int:1,2,3)"},
				cli.StringFlag{Name: "range", Value: "any", Usage: "range type descriptor, same grammar as --domain"},
				cli.BoolFlag{Name: "bad-handler", Usage: "register a handler missing Signature() to demonstrate the registration-time panic"},
			},
			Action: serve,
		},
	}
	app.Action = list
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, uicolor.Red(err.Error()))
		os.Exit(1)
	}
}
