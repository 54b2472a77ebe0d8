// Command rpcquickly-quiz reproduces
// original_source/examples/interesting_types.rs and
// original_source/tests/interesting_types.rs: a MultipleChoice handler
// with an explicit OneOf domain/range and a pre-selected answer, exercised
// with every possible guess plus a batch of domain-mismatched values.
package main

import (
	"context"
	"fmt"
	"math/rand"
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
	"github.com/erer1243/rpcquickly/value"
)

var choices = []string{"a", "b", "c", "d"}

// multipleChoice holds a randomly pre-selected answer and counts
// invocations, a side channel used below to prove a domain-mismatched
// call never reaches Call.
type multipleChoice struct {
	answer  string
	invoked int
}

func newMultipleChoice() *multipleChoice {
	return &multipleChoice{answer: choices[rand.Intn(len(choices))]}
}

func (h *multipleChoice) Name() string { return "MultipleChoice" }

func (h *multipleChoice) Signature() value.Signature {
	return value.Signature{
		Domain: value.StringOneOfType(choices...),
		Range:  value.StringOneOfType("right", "wrong"),
	}
}

func (h *multipleChoice) Call(_ context.Context, guess string) string {
	h.invoked++
	if guess == h.answer {
		return "right"
	}
	return "wrong"
}

func run(c *cli.Context) error {
	port := c.Int("port")
	log := rpclogging.Setup("rpcquickly-quiz", logging.INFO)

	quiz := newMultipleChoice()
	fmt.Printf("the correct answer will be %s\n", uicolor.Yellow(quiz.answer))

	reg := dispatch.NewRegistry()
	dispatch.Add[string, string](reg, quiz, codec.StringCodec, codec.StringCodec)

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

	for _, guess := range choices {
		result, err := rpcclient.Call[string, string](client, "MultipleChoice", guess, codec.StringCodec, codec.StringCodec)
		if err != nil {
			return fmt.Errorf("call(%q): %w", guess, err)
		}
		line := fmt.Sprintf("%s is %s", guess, result)
		if result == "right" {
			fmt.Println(uicolor.Green(line))
		} else {
			fmt.Println(uicolor.Magenta(line))
		}
	}

	for _, bad := range []value.Value{value.String("x"), value.Int64(10), value.Nil()} {
		_, err := rpcclient.Call[value.Value, value.Value](client, "MultipleChoice", bad, codec.ValueCodec, codec.ValueCodec)
		if err == nil {
			return fmt.Errorf("expected a domain error calling MultipleChoice with %v", bad)
		}
		fmt.Println(uicolor.Red(err.Error()))
	}

	if quiz.invoked != len(choices) {
		return fmt.Errorf("handler invoked %d times, want %d (domain mismatches must not reach Call)", quiz.invoked, len(choices))
	}
	return nil
}

func main() {
	app := cli.NewApp()
	app.Name = "rpcquickly-quiz"
	app.Usage = "serve and exercise the MultipleChoice example rpc function"
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "port", Value: 8889, Usage: "TCP port to serve and connect on"},
	}
	app.Action = run
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, uicolor.Red(err.Error()))
		os.Exit(1)
	}
}
