// Command rpcquickly-hello reproduces original_source/examples/hello.rs: a
// Hello greeter registered with an inferred (String, String) signature,
// served over TCP and exercised by a client in the same process.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/op/go-logging"
	"github.com/urfave/cli"

	"github.com/erer1243/rpcquickly/codec"
	"github.com/erer1243/rpcquickly/dispatch"
	"github.com/erer1243/rpcquickly/internal/dialutil"
	rpclogging "github.com/erer1243/rpcquickly/internal/logging"
	"github.com/erer1243/rpcquickly/internal/uicolor"
	"github.com/erer1243/rpcquickly/rpcclient"
	"github.com/erer1243/rpcquickly/rpcserver"
)

type helloHandler struct{}

func (helloHandler) Name() string { return "Hello" }

func (helloHandler) Call(_ context.Context, name string) string {
	return fmt.Sprintf("Hello, %s!", name)
}

func run(c *cli.Context) error {
	port := c.Int("port")
	name := c.String("name")

	log := rpclogging.Setup("rpcquickly-hello", logging.INFO)

	reg := dispatch.NewRegistry()
	dispatch.AddInfer[string, string](reg, helloHandler{}, codec.StringCodec, codec.StringCodec)

	srv := rpcserver.NewServer(reg, log)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.ServeTCP(ctx, port) }()

	addr := fmt.Sprintf("127.0.0.1:%d", port)
	client, err := dialutil.ConnectWithRetry(addr, 2*time.Second)
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.Ping(); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	fmt.Println(uicolor.Green("server is alive"))

	result, err := rpcclient.Call[string, string](client, "Hello", name, codec.StringCodec, codec.StringCodec)
	if err != nil {
		return fmt.Errorf("call Hello: %w", err)
	}
	fmt.Println(uicolor.Cyan(result))
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "rpcquickly-hello"
	app.Usage = "serve and call the Hello example rpc function"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "port", Value: 8888, Usage: "TCP port to serve and connect on"},
		cli.StringFlag{Name: "name", Value: "world", Usage: "name to greet"},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, uicolor.Red(err.Error()))
		os.Exit(1)
	}
}
