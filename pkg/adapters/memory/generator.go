// Package memory provides a scripted, in-process generator backend.
//
// The generator replays a Script: each face yields a bounding box, and each
// face renderer flushes the scripted primitives through the session
// callbacks. Every session and renderer is counted, so callers can verify
// that resources are released exactly once.
package memory

import (
	"errors"
	"fmt"
	"sync"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/pkg/ports"
)

// ErrScriptedFailure is returned for failures requested by a script.
var ErrScriptedFailure = errors.New("scripted failure")

// Stats counts generator resources.
type Stats struct {
	SessionsCreated   int
	SessionsReleased  int
	RenderersCreated  int
	RenderersReleased int
	FacesPulled       int
	FacesRendered     int
	DoubleReleases    int
}

// Balanced reports whether every created resource was released exactly once.
func (s Stats) Balanced() bool {
	return s.SessionsCreated == s.SessionsReleased &&
		s.RenderersCreated == s.RenderersReleased &&
		s.DoubleReleases == 0
}

// Generator implements ports.Generator from a Script.
type Generator struct {
	mu     sync.Mutex
	script *Script
	stats  Stats
	onPull func(pulled int)
}

var _ ports.Generator = (*Generator)(nil)

// Option configures a Generator.
type Option func(*Generator)

// WithScript replays s for every session instead of parsing the argument blob.
func WithScript(s Script) Option {
	return func(g *Generator) {
		g.script = &s
	}
}

// WithPullHook calls fn after each successful face pull with the number of
// faces pulled so far in that session.
func WithPullHook(fn func(pulled int)) Option {
	return func(g *Generator) {
		g.onPull = fn
	}
}

// New creates a scripted generator.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Stats returns a copy of the resource counters.
func (g *Generator) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.stats
}

// NewSession starts a session. Without a fixed script the argument blob is
// parsed as a YAML Script.
func (g *Generator) NewSession(cb ports.Callbacks, args string) (ports.Session, error) {
	var script Script
	if g.script != nil {
		script = *g.script
	} else {
		parsed, err := ParseScript(args)
		if err != nil {
			return nil, err
		}
		script = parsed
	}
	if script.FailSession {
		return nil, fmt.Errorf("%w: session", ErrScriptedFailure)
	}

	for _, msg := range script.Messages {
		cb.Log(msg)
	}
	for _, key := range script.Queries {
		cb.Log(fmt.Sprintf("%s=%s", key, cb.Override(key)))
	}

	g.mu.Lock()
	g.stats.SessionsCreated++
	g.mu.Unlock()
	return &session{gen: g, cb: cb, faces: script.Faces}, nil
}

type session struct {
	gen      *Generator
	cb       ports.Callbacks
	faces    []Face
	next     int
	released bool
}

func (s *session) NextFace() (math32.Box3, uint32, bool) {
	if s.next >= len(s.faces) {
		return math32.Box3{}, 0, false
	}
	f := s.faces[s.next]
	s.next++

	s.gen.mu.Lock()
	s.gen.stats.FacesPulled++
	onPull := s.gen.onPull
	s.gen.mu.Unlock()
	if onPull != nil {
		onPull(s.next)
	}
	return f.Bounds(), f.ID, true
}

func (s *session) face(id uint32) (Face, bool) {
	for _, f := range s.faces {
		if f.ID == id {
			return f, true
		}
	}
	return Face{}, false
}

func (s *session) NewFaceRenderer(faceID uint32) (ports.FaceRenderer, error) {
	f, ok := s.face(faceID)
	if !ok {
		return nil, fmt.Errorf("unknown face %d", faceID)
	}
	if f.Fail == FailConstruct {
		return nil, fmt.Errorf("%w: construct face %d", ErrScriptedFailure, faceID)
	}
	s.gen.mu.Lock()
	s.gen.stats.RenderersCreated++
	s.gen.mu.Unlock()
	return &faceRenderer{session: s, face: f}, nil
}

func (s *session) Release() {
	s.gen.mu.Lock()
	defer s.gen.mu.Unlock()
	if s.released {
		s.gen.stats.DoubleReleases++
		return
	}
	s.released = true
	s.gen.stats.SessionsReleased++
}

type faceRenderer struct {
	session  *session
	face     Face
	released bool
}

func (r *faceRenderer) Render() bool {
	switch r.face.Fail {
	case FailRender:
		return false
	case FailPanic:
		panic(fmt.Sprintf("scripted panic in face %d", r.face.ID))
	}

	var m ports.Mat44
	r.session.cb.Transform(0, &m)
	for _, p := range r.face.Primitives {
		r.session.cb.Flush(p.Geom, primitiveCache(p))
	}

	r.session.gen.mu.Lock()
	r.session.gen.stats.FacesRendered++
	r.session.gen.mu.Unlock()
	return true
}

func (r *faceRenderer) Release() {
	r.session.gen.mu.Lock()
	defer r.session.gen.mu.Unlock()
	if r.released {
		r.session.gen.stats.DoubleReleases++
		return
	}
	r.released = true
	r.session.gen.stats.RenderersReleased++
}

type primitiveCache Primitive

func (c primitiveCache) IsSpline() bool        { return c.Spline }
func (c primitiveCache) PrimitiveType() string { return c.Type }
