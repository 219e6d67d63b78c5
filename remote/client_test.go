package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/marben/irpc"

	mandel "github.com/marben/mandel_data"
	"github.com/marben/mandel_data/render"
)

// fakeProvider rejects grids above maxPoints the way cmd/server does.
// Requests with MaxIterations == failIterations fail with an internal error,
// those with MaxIterations == blockIterations wait for cancellation.
type fakeProvider struct {
	maxPoints int
	requests  atomic.Int32
}

const (
	failIterations  = 13
	blockIterations = 17
)

func (f *fakeProvider) Generate(ctx context.Context, p mandel.GenerationParameters) (mandel.Dataset, error) {
	f.requests.Add(1)
	switch {
	case p.Points() > f.maxPoints:
		return mandel.Dataset{}, fmt.Errorf("%w: too many points", mandel.ErrInvalidParameter)
	case p.MaxIterations == failIterations:
		return mandel.Dataset{}, errors.New("out of workers")
	case p.MaxIterations == blockIterations:
		<-ctx.Done()
		return mandel.Dataset{}, ctx.Err()
	}
	return render.Generate(ctx, p)
}

// serveIrpc exposes provider as an irpc service on every websocket accepted
// by the returned server.
func serveIrpc(t *testing.T, provider mandel.DatasetProvider) *httptest.Server {
	t.Helper()
	service := mandel.NewDatasetProviderIrpcService(provider)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		ep := irpc.NewEndpoint(
			websocket.NetConn(context.Background(), c, websocket.MessageBinary),
			irpc.WithEndpointServices(service),
		)
		<-ep.Context().Done()
	}))
	t.Cleanup(srv.Close)
	return srv
}

func dialFake(t *testing.T, fp *fakeProvider) *Client {
	t.Helper()
	srv := serveIrpc(t, fp)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

var small = mandel.GenerationParameters{
	CenterX:       -0.5,
	Width:         6,
	Height:        4,
	Scale:         0.5,
	MaxIterations: 30,
	Bound:         2,
	Power:         2,
}

func TestGenerateMatchesLocal(t *testing.T) {
	c := dialFake(t, &fakeProvider{maxPoints: 1000})

	want, err := render.Generate(context.Background(), small)
	if err != nil {
		t.Fatal(err)
	}
	// Handshake context has expired by now; the session must still work.
	for range 2 {
		got, err := c.Generate(context.Background(), small)
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("remote dataset differs from local:\n got %+v\nwant %+v", got, want)
		}
	}
}

func TestGenerateConcurrent(t *testing.T) {
	c := dialFake(t, &fakeProvider{maxPoints: 1000})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p := small
			p.MaxIterations = 20 + i
			want, _ := render.Generate(context.Background(), p)
			got, err := c.Generate(context.Background(), p)
			if err != nil {
				t.Errorf("request %d: %v", i, err)
				return
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("request %d: dataset differs from local", i)
			}
		}()
	}
	wg.Wait()
}

func TestGenerateServerRejects(t *testing.T) {
	c := dialFake(t, &fakeProvider{maxPoints: 10})

	_, err := c.Generate(context.Background(), small)
	var se *ServerError
	if !errors.As(err, &se) || !strings.Contains(se.Message, "too many points") {
		t.Fatalf("err = %v, want ServerError", err)
	}
	if !errors.Is(err, mandel.ErrInvalidParameter) {
		t.Errorf("rejected parameters not reported as ErrInvalidParameter: %v", err)
	}

	p := small
	p.Width, p.Height = 2, 2
	if _, err := c.Generate(context.Background(), p); err != nil {
		t.Errorf("session unusable after a rejected request: %v", err)
	}
}

func TestGenerateServerFailure(t *testing.T) {
	c := dialFake(t, &fakeProvider{maxPoints: 1000})

	p := small
	p.MaxIterations = failIterations
	_, err := c.Generate(context.Background(), p)
	var se *ServerError
	if !errors.As(err, &se) || se.Message != "out of workers" {
		t.Fatalf("err = %v, want ServerError", err)
	}
	if errors.Is(err, mandel.ErrInvalidParameter) {
		t.Errorf("internal failure reported as invalid parameter: %v", err)
	}
}

func TestGenerateCanceled(t *testing.T) {
	c := dialFake(t, &fakeProvider{maxPoints: 1000})

	p := small
	p.MaxIterations = blockIterations
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, p); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want context.DeadlineExceeded", err)
	}

	if _, err := c.Generate(context.Background(), small); err != nil {
		t.Errorf("session unusable after a canceled request: %v", err)
	}
}

func TestGenerateValidatesLocally(t *testing.T) {
	fp := &fakeProvider{maxPoints: 1000}
	c := dialFake(t, fp)

	p := small
	p.Bound = -1
	_, err := c.Generate(context.Background(), p)
	var pe *mandel.ParamError
	if !errors.As(err, &pe) || pe.Field != "bound" {
		t.Errorf("err = %v, want ParamError for bound", err)
	}
	if n := fp.requests.Load(); n != 0 {
		t.Errorf("invalid parameters sent to server (%d requests)", n)
	}
}

func TestServerErrorIs(t *testing.T) {
	if errors.Is(&ServerError{Message: "boom"}, mandel.ErrInvalidParameter) {
		t.Error("internal server error reported as invalid parameter")
	}
	if got := (&ServerError{Message: "boom"}).Error(); got != "server: boom" {
		t.Errorf("Error() = %q", got)
	}
}

func TestDialRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := Dial(ctx, url, nil); err == nil {
		t.Error("Dial to a closed server succeeded")
	}
}
