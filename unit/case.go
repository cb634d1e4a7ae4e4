package unit

import (
	"fmt"
	"runtime/debug"

	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum/go-ethereum/log"
)

// Func is the shape of a test body or fixture hook.
type Func func(t *T)

// Reporter receives the lifecycle transitions of executing cases. Every
// case produces exactly one terminal event: AddSuccess, AddFailure,
// AddError, or AddSkip. Skipped cases never see StartCase or StopCase.
type Reporter interface {
	StartCase(c *Case)
	StopCase(c *Case)
	AddSuccess(c *Case)
	AddFailure(c *Case, trace string)
	AddError(c *Case, trace string)
	AddSkip(c *Case, reason string)
}

// NativeCase is the contract of test types that carry their own execution
// protocol. The engine never replaces RunTest; it only wraps the entry
// point so the skip check still runs first.
type NativeCase interface {
	RunTest(t *T, method string)
}

// Disabler marks a whole case as disabled with a reason. An empty reason
// means the case runs.
type Disabler interface {
	Disabled() string
}

// MethodSetup is implemented by test classes that want a fixture run
// before each test method.
type MethodSetup interface {
	SetupMethod(t *T, method string)
}

// MethodTeardown is implemented by test classes that want a fixture run
// after each test method, whether or not the method failed.
type MethodTeardown interface {
	TeardownMethod(t *T, method string)
}

// Case is one normalized, independently executable test unit. All three
// authoring styles adapt into this shape, so the runner, the sorter and
// the reporters only ever see Cases.
type Case struct {
	name       string
	loc        source.Location
	className  string
	methodName string

	body     Func
	setUp    Func
	tearDown Func

	disabled       string
	methodDisabled string

	log log.Logger
}

// CaseOption customizes a Case under construction.
type CaseOption func(*Case)

// WithHooks attaches per-case fixture hooks. Either hook may be nil.
func WithHooks(setUp, tearDown Func) CaseOption {
	return func(c *Case) {
		c.setUp = setUp
		c.tearDown = tearDown
	}
}

// WithDisabled attaches a case-level disable reason.
func WithDisabled(reason string) CaseOption {
	return func(c *Case) {
		c.disabled = reason
	}
}

// WithMethodDisabled attaches a method-level disable reason, which takes
// precedence over the case-level one.
func WithMethodDisabled(reason string) CaseOption {
	return func(c *Case) {
		c.methodDisabled = reason
	}
}

// WithLogger attaches the engine logger handed to test scopes.
func WithLogger(logger log.Logger) CaseOption {
	return func(c *Case) {
		c.log = logger
	}
}

// NewCase builds a Case. A case without a resolved source position has no
// place in the suite order, so a zero location is rejected.
func NewCase(name string, loc source.Location, className, methodName string, body Func, opts ...CaseOption) (*Case, error) {
	if loc.File == "" || loc.Line <= 0 {
		return nil, fmt.Errorf("%w: case %s has no source position", source.ErrUnresolved, name)
	}
	if body == nil {
		return nil, fmt.Errorf("case %s has no body", name)
	}
	c := &Case{
		name:       name,
		loc:        loc,
		className:  className,
		methodName: methodName,
		body:       body,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Name returns the case's display name.
func (c *Case) Name() string { return c.name }

// Location returns the case's defining source position.
func (c *Case) Location() source.Location { return c.loc }

// ClassName returns the owning class name, or the module name for bare
// functions.
func (c *Case) ClassName() string { return c.className }

// MethodName returns the test method or function name.
func (c *Case) MethodName() string { return c.methodName }

// DisabledReason returns the effective disable reason. The method-level
// marker wins over the case-level one.
func (c *Case) DisabledReason() (string, bool) {
	if c.methodDisabled != "" {
		return c.methodDisabled, true
	}
	if c.disabled != "" {
		return c.disabled, true
	}
	return "", false
}

type outcome int

const (
	outcomeOK outcome = iota
	outcomeFailed
	outcomeErrored
)

// Run drives the case through its execution protocol and reports exactly
// one terminal event:
//
//   - a disabled case is skipped before anything executes
//   - a setUp abort or panic is an error; the body and tearDown never run
//   - a body abort via T is a failure; any other body panic is an error
//   - tearDown runs whenever the body ran, and a tearDown panic promotes
//     the case to an error even if the body had merely failed
func (c *Case) Run(rep Reporter) {
	if reason, ok := c.DisabledReason(); ok {
		rep.AddSkip(c, reason)
		return
	}

	rep.StartCase(c)
	defer rep.StopCase(c)

	t := newT(c.log)

	if out, trace := c.invoke(c.setUp, t); out != outcomeOK {
		if trace == "" {
			trace = t.failureTrace()
		}
		rep.AddError(c, trace)
		return
	}

	bodyOut, bodyTrace := c.invoke(c.body, t)
	tearOut, tearTrace := c.invoke(c.tearDown, t)

	switch {
	case bodyOut == outcomeErrored || tearOut == outcomeErrored:
		rep.AddError(c, joinTraces(bodyTrace, tearTrace, failureTraceIf(t)))
	case t.Failed():
		rep.AddFailure(c, t.failureTrace())
	default:
		rep.AddSuccess(c)
	}
}

// invoke runs one phase of the case, converting a T abort into a failure
// outcome and any other panic into an error outcome with a stack trace.
func (c *Case) invoke(fn Func, t *T) (out outcome, trace string) {
	if fn == nil {
		return outcomeOK, ""
	}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if aborted, ok := r.(*T); ok && aborted == t {
			out = outcomeFailed
			return
		}
		out = outcomeErrored
		trace = fmt.Sprintf("panic: %v\n\n%s", r, debug.Stack())
	}()
	fn(t)
	return outcomeOK, ""
}

func failureTraceIf(t *T) string {
	if !t.Failed() {
		return ""
	}
	return t.failureTrace()
}

func joinTraces(traces ...string) string {
	joined := ""
	for _, trace := range traces {
		if trace == "" {
			continue
		}
		if joined != "" {
			joined += "\n\n"
		}
		joined += trace
	}
	return joined
}
