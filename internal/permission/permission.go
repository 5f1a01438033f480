// Package permission gates access to the filesystem behind a read-storage
// capability which has to be granted before any raster package is opened.
package permission

import (
	"errors"
	"sync"

	"github.com/gruppe-adler/rasterscene/internal/utils"
)

// ReadStorage is the capability required to read raster packages.
const ReadStorage = "storage.read"

// RequestCode identifies read-storage requests and their responses.
const RequestCode = 1

// ErrDenied is the error used when the user declined access.
var ErrDenied = errors.New("read permission denied")

// Result is the outcome for one requested permission.
type Result int

const (
	Denied Result = iota
	Granted
)

// Request is what the gate asks a Prompter for.
type Request struct {
	Code        int
	Permissions []string
}

// Response carries the parallel permission and result arrays of a request.
type Response struct {
	RequestCode  int
	Permissions  []string
	GrantResults []Result
}

// Granted reports whether the first requested permission was granted.
func (r Response) Granted() bool {
	return len(r.GrantResults) > 0 && r.GrantResults[0] == Granted
}

// Prompter asks the user for permissions. Prompt may block until the user
// answered; it is never called on the UI loop.
type Prompter interface {
	Prompt(req Request) Response
}

// Poster runs functions on the UI loop.
type Poster interface {
	Post(fn func()) bool
}

// Gate checks and requests the read-storage capability for a storage root.
type Gate struct {
	root     string
	prompter Prompter
	post     Poster

	mu         sync.Mutex
	granted    bool
	requesting bool
}

// Option configures a Gate.
type Option func(*Gate)

// WithGranted marks the capability as already granted, as if granted in an
// earlier session.
func WithGranted() Option {
	return func(g *Gate) { g.granted = true }
}

// NewGate creates a gate for root. Responses are delivered through post.
func NewGate(root string, prompter Prompter, post Poster, opts ...Option) *Gate {
	g := &Gate{root: root, prompter: prompter, post: post}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check reports whether the capability is granted and the storage root can
// be read.
func (g *Gate) Check() bool {
	g.mu.Lock()
	granted := g.granted
	g.mu.Unlock()

	return granted && (g.root == "" || utils.IsReadableDirectory(g.root))
}

// Request asks the prompter for the capability. onResult is called exactly
// once on the UI loop with the outcome. A request made while another one is
// pending is answered with false.
func (g *Gate) Request(onResult func(granted bool)) {
	g.mu.Lock()
	if g.requesting {
		g.mu.Unlock()
		g.post.Post(func() { onResult(false) })
		return
	}
	g.requesting = true
	g.mu.Unlock()

	req := Request{Code: RequestCode, Permissions: []string{ReadStorage}}

	go func() {
		resp := g.prompter.Prompt(req)
		g.post.Post(func() {
			onResult(g.Deliver(resp))
		})
	}()
}

// Deliver applies a permission response and returns whether read access is
// now granted. Responses for other request codes are ignored.
func (g *Gate) Deliver(resp Response) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if resp.RequestCode != RequestCode {
		return g.granted
	}

	g.requesting = false
	g.granted = resp.Granted()
	return g.granted
}
