package rpcserver

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/erer1243/rpcquickly/codec"
	"github.com/erer1243/rpcquickly/dispatch"
	"github.com/erer1243/rpcquickly/rpcclient"
	"github.com/erer1243/rpcquickly/value"
)

type helloHandler struct{}

func (helloHandler) Name() string { return "Hello" }

func (helloHandler) Call(_ context.Context, name string) string {
	return "Hello, " + name + "!"
}

type quizHandler struct{ answer string }

func (h *quizHandler) Name() string { return "MultipleChoice" }

func (h *quizHandler) Signature() value.Signature {
	return value.Signature{
		Domain: value.StringOneOfType("a", "b", "c", "d"),
		Range:  value.StringOneOfType("right", "wrong"),
	}
}

func (h *quizHandler) Call(_ context.Context, guess string) string {
	if guess == h.answer {
		return "right"
	}
	return "wrong"
}

// freePort asks the OS for an unused TCP port by binding then releasing
// one, avoiding a flaky fixed-port test.
func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("freePort: %v", err)
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func startTestServer(t *testing.T, reg *dispatch.Registry) (addr string, cancel func()) {
	t.Helper()
	port := freePort(t)
	srv := NewServer(reg, nil)
	ctx, cancelFn := context.WithCancel(context.Background())

	go func() {
		// ServeTCP blocks in net.Listen+Accept; the client side waits for
		// the port to become reachable below instead of synchronizing on
		// an internal ready hook.
		_ = srv.ServeTCP(ctx, port)
	}()

	addr = net.JoinHostPort("127.0.0.1", strconv.Itoa(port))
	waitForServer(t, addr)
	return addr, cancelFn
}

func waitForServer(t *testing.T, addr string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err := net.Dial("tcp", addr)
		if err == nil {
			conn.Close()
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("server at %s never became reachable", addr)
}

func TestEndToEndHello(t *testing.T) {
	reg := dispatch.NewRegistry()
	dispatch.AddInfer[string, string](reg, helloHandler{}, codec.StringCodec, codec.StringCodec)
	addr, cancel := startTestServer(t, reg)
	defer cancel()

	client, err := rpcclient.Connect(addr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	if err := client.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	result, err := rpcclient.Call[string, string](client, "Hello", "world", codec.StringCodec, codec.StringCodec)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if result != "Hello, world!" {
		t.Fatalf("got %q, want %q", result, "Hello, world!")
	}
}

func TestEndToEndMultipleChoiceAndDirectory(t *testing.T) {
	reg := dispatch.NewRegistry()
	dispatch.AddInfer[string, string](reg, helloHandler{}, codec.StringCodec, codec.StringCodec)
	dispatch.Add[string, string](reg, &quizHandler{answer: "b"}, codec.StringCodec, codec.StringCodec)
	addr, cancel := startTestServer(t, reg)
	defer cancel()

	client, err := rpcclient.Connect(addr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	infos, err := client.RpcFunctions()
	if err != nil {
		t.Fatalf("rpc_functions: %v", err)
	}
	if len(infos) != 2 || infos[0].Name != "Hello" || infos[1].Name != "MultipleChoice" {
		t.Fatalf("got %+v, want [Hello, MultipleChoice] in order", infos)
	}

	rights, wrongs := 0, 0
	for _, guess := range []string{"a", "b", "c", "d"} {
		result, err := rpcclient.Call[string, string](client, "MultipleChoice", guess, codec.StringCodec, codec.StringCodec)
		if err != nil {
			t.Fatalf("call(%q): %v", guess, err)
		}
		if result == "right" {
			rights++
		} else {
			wrongs++
		}
	}
	if rights != 1 || wrongs != 3 {
		t.Fatalf("rights=%d wrongs=%d, want 1/3", rights, wrongs)
	}

	if _, err := rpcclient.Call[string, string](client, "Nope", "x", codec.StringCodec, codec.StringCodec); err == nil {
		t.Fatal("expected an error calling an unregistered function")
	}
}

func TestEndToEndPerConnectionOrdering(t *testing.T) {
	reg := dispatch.NewRegistry()
	dispatch.AddInfer[string, string](reg, helloHandler{}, codec.StringCodec, codec.StringCodec)
	addr, cancel := startTestServer(t, reg)
	defer cancel()

	client, err := rpcclient.Connect(addr)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer client.Close()

	names := []string{"alice", "bob", "carol", "dave"}
	for _, name := range names {
		result, err := rpcclient.Call[string, string](client, "Hello", name, codec.StringCodec, codec.StringCodec)
		if err != nil {
			t.Fatalf("call(%q): %v", name, err)
		}
		if want := "Hello, " + name + "!"; result != want {
			t.Fatalf("got %q, want %q", result, want)
		}
	}
}
