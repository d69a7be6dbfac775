package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type flakyClient struct {
	failures int
	calls    int
	err      error
}

func (f *flakyClient) Name() string { return "flaky" }
func (f *flakyClient) Close() error { return nil }

func (f *flakyClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	f.calls++
	if f.calls <= f.failures {
		if f.err != nil {
			return nil, f.err
		}
		return nil, errors.New("transient")
	}
	return json.RawMessage(`{"ok": true}`), nil
}

func TestRetryRecoversFromTransientErrors(t *testing.T) {
	base := &flakyClient{failures: 2}
	cli := Wrap(base, Retry(3, time.Millisecond))

	out, err := cli.GenerateJSON(context.Background(), "p", nil)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if string(out) != `{"ok": true}` {
		t.Fatalf("out = %s", out)
	}
	if base.calls != 3 {
		t.Fatalf("calls = %d", base.calls)
	}
}

func TestRetryGivesUpAfterBudget(t *testing.T) {
	base := &flakyClient{failures: 10}
	cli := Wrap(base, Retry(3, time.Millisecond))

	if _, err := cli.GenerateJSON(context.Background(), "p", nil); err == nil {
		t.Fatal("expected error")
	}
	if base.calls != 3 {
		t.Fatalf("calls = %d", base.calls)
	}
}

func TestRetryStopsOnPermanentError(t *testing.T) {
	base := &flakyClient{failures: 10, err: &PermanentError{Err: errors.New("bad request")}}
	cli := Wrap(base, Retry(5, time.Millisecond))

	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	var pe *PermanentError
	if !errors.As(err, &pe) {
		t.Fatalf("err = %v", err)
	}
	if base.calls != 1 {
		t.Fatalf("permanent error retried: calls = %d", base.calls)
	}
}

type hangingClient struct{}

func (hangingClient) Name() string { return "hanging" }
func (hangingClient) Close() error { return nil }

func (hangingClient) GenerateJSON(ctx context.Context, prompt string, input any) (json.RawMessage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestTimeoutBoundsCall(t *testing.T) {
	cli := Wrap(hangingClient{}, Timeout(10*time.Millisecond))
	start := time.Now()
	_, err := cli.GenerateJSON(context.Background(), "p", nil)
	if err == nil {
		t.Fatal("expected timeout")
	}
	if time.Since(start) > time.Second {
		t.Fatal("timeout did not bound the call")
	}
}

func TestFakeClientScriptsPerRole(t *testing.T) {
	f := NewFakeClient().
		Script("intent", `{"a": 1}`, `{"a": 2}`).
		Script("skeleton", `{"b": 1}`)

	ctx := WithRole(context.Background(), "intent")
	first, _ := f.GenerateJSON(ctx, "", nil)
	second, _ := f.GenerateJSON(ctx, "", nil)
	third, _ := f.GenerateJSON(ctx, "", nil)
	if string(first) != `{"a": 1}` || string(second) != `{"a": 2}` {
		t.Fatalf("script order broken: %s then %s", first, second)
	}
	if string(third) != `{"a": 2}` {
		t.Fatalf("last response should repeat, got %s", third)
	}

	if _, err := f.GenerateJSON(WithRole(context.Background(), "unknown"), "", nil); err == nil {
		t.Fatal("unscripted role should error")
	}
	if len(f.Calls) != 4 {
		t.Fatalf("calls = %v", f.Calls)
	}
}

func TestWrapOrder(t *testing.T) {
	base := &flakyClient{failures: 1}
	// Retry outermost, Timeout innermost: each attempt gets its own deadline.
	cli := Wrap(base, Retry(2, time.Millisecond), Timeout(time.Second))
	if _, err := cli.GenerateJSON(context.Background(), "p", nil); err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if base.calls != 2 {
		t.Fatalf("calls = %d", base.calls)
	}
}
