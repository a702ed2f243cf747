package regsvr

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
)

// Scope of a subsystem acquisition.
type Scope int

const (
	ScopeModule Scope = iota // acquire and release around every module
	ScopeRun                 // acquire before the first load, release when the run ends
)

// ParseScope accepts "module" or "run", empty means module.
func ParseScope(s string) (Scope, error) {
	switch strings.ToLower(s) {
	case "", "module":
		return ScopeModule, nil
	case "run":
		return ScopeRun, nil
	}
	return ScopeModule, fmt.Errorf("%w: unknown scope %q", ErrConfig, s)
}

func (s Scope) String() string {
	if s == ScopeRun {
		return "run"
	}
	return "module"
}

// State of the registration of one module.
type State int

const (
	Idle State = iota
	SubsystemReady
	LibraryLoaded
	EntryResolved
	Invoked
	TornDown
	Done
)

var stateNames = [...]string{"Idle", "SubsystemReady", "LibraryLoaded", "EntryResolved", "Invoked", "TornDown", "Done"}

func (s State) String() string {
	if s >= Idle && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Report of one processed module. Only Outcome is meant for the user.
type Report struct {
	Request   Request
	Outcome   Outcome
	Reached   State  // furthest state before teardown
	Status    int32  // value returned by the entry point
	LastError uint32 // platform last-error of a failed load
}

// Registrar runs the registration lifecycle. It is not safe for concurrent use.
type Registrar struct {
	Loader    Loader
	Subsystem Subsystem
	Scope     Scope
	Logger    *slog.Logger
	Stat      func(path string) (fs.FileInfo, error) // existence check, default os.Stat
}

// New create a Registrar acquiring the subsystem per module.
func New(loader Loader, subsystem Subsystem) *Registrar {
	return &Registrar{Loader: loader, Subsystem: subsystem}
}

func (r *Registrar) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r.Logger
}

func (r *Registrar) stat(path string) (fs.FileInfo, error) {
	if r.Stat == nil {
		return os.Stat(path)
	}
	return r.Stat(path)
}

// Process a single module.
func (r *Registrar) Process(req Request) Report {
	_, reports := r.Run([]Request{req})
	return reports[0]
}

// Run process the requests in order and stops at the first outcome that is not [Success].
// The returned outcome is the one of the last processed module, [InvalidArguments] without requests.
func (r *Registrar) Run(requests []Request) (Outcome, []Report) {
	if len(requests) == 0 {
		return InvalidArguments, nil
	}
	s := &session{r: r, log: r.logger()}
	defer s.close()
	reports := make([]Report, 0, len(requests))
	for _, req := range requests {
		rep := s.process(req)
		reports = append(reports, rep)
		if rep.Outcome != Success {
			if n := len(requests) - len(reports); n > 0 {
				s.log.Debug("abort run", "outcome", rep.Outcome, "skipped", n)
			}
			break
		}
	}
	return reports[len(reports)-1].Outcome, reports
}

type session struct {
	r     *Registrar
	log   *slog.Logger
	token Token // held for ScopeRun only
}

// acquire returns the release of this module's subsystem use.
func (s *session) acquire() (func(), error) {
	if s.r.Scope == ScopeRun {
		if s.token == nil {
			t, err := s.r.Subsystem.Acquire()
			if err != nil {
				return nil, err
			}
			s.log.Debug("subsystem acquired", "scope", ScopeRun)
			s.token = t
		}
		return func() {}, nil
	}
	t, err := s.r.Subsystem.Acquire()
	if err != nil {
		return nil, err
	}
	return func() {
		t.Release()
		s.log.Debug("subsystem released", "scope", ScopeModule)
	}, nil
}

func (s *session) close() {
	if s.token != nil {
		s.token.Release()
		s.token = nil
		s.log.Debug("subsystem released", "scope", ScopeRun)
	}
}

func (s *session) process(req Request) (rep Report) {
	rep.Request = req
	log := s.log.With("path", req.Path, "mode", req.Mode)
	to := func(st State) {
		rep.Reached = st
		log.Debug("state", "to", st)
	}
	defer func() {
		log.Debug("state", "to", Done, "outcome", rep.Outcome, "status", rep.Status)
	}()
	if info, err := s.r.stat(req.Path); err != nil || info.IsDir() {
		log.Debug("module missing", "error", err)
		rep.Outcome = LoadFailed
		return
	}
	release, err := s.acquire()
	if err != nil {
		log.Warn("subsystem", "error", err)
		rep.Outcome = SubsystemError
		return
	}
	defer func() {
		release()
		log.Debug("state", "to", TornDown)
	}()
	to(SubsystemReady)
	lib, err := s.r.Loader.Open(req.Path)
	if err != nil {
		rep.LastError = LastError(err)
		rep.Outcome = MapLastError(rep.LastError)
		log.Debug("load failed", "error", err, "lastError", rep.LastError)
		return
	}
	defer func() {
		if err := lib.Close(); err != nil {
			log.Warn("release module", "error", err)
		}
	}()
	to(LibraryLoaded)
	ep, ok := lib.Lookup(req.Mode.EntryPoint())
	if !ok {
		rep.Outcome = req.Mode.NotFound()
		return
	}
	to(EntryResolved)
	rep.Status = Invoke(ep)
	to(Invoked)
	if rep.Status != 0 {
		rep.Outcome = req.Mode.Failed()
		return
	}
	rep.Outcome = Success
	return
}
