package permission

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// inlinePoster runs posted functions right away.
type inlinePoster struct{}

func (inlinePoster) Post(fn func()) bool {
	fn()
	return true
}

func waitResult(t *testing.T, results <-chan bool) bool {
	t.Helper()
	select {
	case granted := <-results:
		return granted
	case <-time.After(5 * time.Second):
		t.Fatal("no permission result delivered")
		return false
	}
}

func TestResponseGranted(t *testing.T) {
	assert.False(t, Response{}.Granted())
	assert.True(t, Response{GrantResults: []Result{Granted}}.Granted())
	assert.False(t, Response{GrantResults: []Result{Denied, Granted}}.Granted())
}

func TestCheck(t *testing.T) {
	root := t.TempDir()

	assert.False(t, NewGate(root, StaticPrompter{}, inlinePoster{}).Check())
	assert.True(t, NewGate(root, StaticPrompter{}, inlinePoster{}, WithGranted()).Check())
	assert.False(t, NewGate(filepath.Join(root, "missing"), StaticPrompter{}, inlinePoster{}, WithGranted()).Check(),
		"unreadable root")
}

func TestRequestGranted(t *testing.T) {
	g := NewGate(t.TempDir(), StaticPrompter{Grant: true}, inlinePoster{})

	results := make(chan bool, 1)
	g.Request(func(granted bool) { results <- granted })

	assert.True(t, waitResult(t, results))
	assert.True(t, g.Check())
}

func TestRequestDenied(t *testing.T) {
	g := NewGate(t.TempDir(), StaticPrompter{Grant: false}, inlinePoster{})

	results := make(chan bool, 1)
	g.Request(func(granted bool) { results <- granted })

	assert.False(t, waitResult(t, results))
	assert.False(t, g.Check())
}

type blockingPrompter struct {
	release chan struct{}
}

func (p blockingPrompter) Prompt(req Request) Response {
	<-p.release
	return StaticPrompter{Grant: true}.Prompt(req)
}

func TestRequestWhilePending(t *testing.T) {
	p := blockingPrompter{release: make(chan struct{})}
	g := NewGate(t.TempDir(), p, inlinePoster{})

	first := make(chan bool, 1)
	second := make(chan bool, 1)
	g.Request(func(granted bool) { first <- granted })
	g.Request(func(granted bool) { second <- granted })

	assert.False(t, waitResult(t, second))

	close(p.release)
	assert.True(t, waitResult(t, first))
}

func TestDeliverIgnoresOtherRequestCodes(t *testing.T) {
	g := NewGate("", StaticPrompter{}, inlinePoster{})

	assert.False(t, g.Deliver(Response{RequestCode: 42, GrantResults: []Result{Granted}}))
	assert.True(t, g.Deliver(Response{RequestCode: RequestCode, GrantResults: []Result{Granted}}))
	assert.True(t, g.Check())
}

func TestTerminalPrompter(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}

	for _, tt := range tests {
		var out bytes.Buffer
		p := TerminalPrompter{In: strings.NewReader(tt.input), Out: &out}

		resp := p.Prompt(Request{Code: RequestCode, Permissions: []string{ReadStorage}})
		require.Len(t, resp.GrantResults, 1)
		assert.Equal(t, tt.want, resp.Granted(), "input %q", tt.input)
		assert.Contains(t, out.String(), "read raster packages")
	}
}
