package artifact

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/op-testkit/source"
	"github.com/ethereum-optimism/infra/op-testkit/unit"
)

const sampleSource = `package sample

func TestStandalone(t *T) {}

func (g *TestGadget) TestAssemble(t *T) {}

func (g *TestGadget) TestPaint(t *T) {}

func (r *runPrefixed) RunAround(t *T) {}

func (b *badSig) TestOops(x int) {}

func (g *gadgetNative) TestSpin(t *T) {}
`

type TestGadget struct {
	setups    []string
	teardowns []string
	ran       []string
}

func (g *TestGadget) SetupMethod(t *unit.T, method string) {
	g.setups = append(g.setups, method)
}

func (g *TestGadget) TeardownMethod(t *unit.T, method string) {
	g.teardowns = append(g.teardowns, method)
}

func (g *TestGadget) TestAssemble(t *unit.T) { g.ran = append(g.ran, "TestAssemble") }

func (g *TestGadget) TestPaint(t *unit.T) { g.ran = append(g.ran, "TestPaint") }

func (g *TestGadget) Helper() {}

type runPrefixed struct {
	ran []string
}

func (r *runPrefixed) Run() {}

func (r *runPrefixed) RunAround(t *unit.T) { r.ran = append(r.ran, "RunAround") }

type badSig struct{}

func (b *badSig) TestOops(x int) {}

type gadgetNative struct {
	calls    []string
	disabled string
}

func (g *gadgetNative) RunTest(t *unit.T, method string) {
	g.calls = append(g.calls, method)
}

func (g *gadgetNative) TestSpin(t *unit.T) {}

func (g *gadgetNative) Disabled() string { return g.disabled }

// sink is a minimal reporter for driving adapted cases.
type sink struct {
	successes []string
	failures  []string
	errored   []string
	skips     map[string]string
}

func newSink() *sink { return &sink{skips: make(map[string]string)} }

func (s *sink) StartCase(c *unit.Case)              {}
func (s *sink) StopCase(c *unit.Case)               {}
func (s *sink) AddSuccess(c *unit.Case)             { s.successes = append(s.successes, c.Name()) }
func (s *sink) AddFailure(c *unit.Case, _ string)   { s.failures = append(s.failures, c.Name()) }
func (s *sink) AddError(c *unit.Case, _ string)     { s.errored = append(s.errored, c.Name()) }
func (s *sink) AddSkip(c *unit.Case, reason string) { s.skips[c.Name()] = reason }

func sampleFile(t *testing.T) (*source.Locator, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test_sample.go")
	require.NoError(t, os.WriteFile(path, []byte(sampleSource), 0o644))
	return source.NewLocator(), path
}

func discardLogger() log.Logger {
	return log.NewLogger(log.DiscardHandler())
}

func TestFuncAdapt(t *testing.T) {
	loc, path := sampleFile(t)

	var order []string
	art := Func{
		Name:       "TestStandalone",
		Fn:         func(tt *unit.T) { order = append(order, "body") },
		ModuleName: "test_sample",
		Setup:      func(tt *unit.T) { order = append(order, "setup") },
		Teardown:   func(tt *unit.T) { order = append(order, "teardown") },
	}

	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "test_sample.TestStandalone", c.Name())
	assert.Equal(t, "test_sample", c.ClassName())
	assert.Equal(t, "TestStandalone", c.MethodName())
	assert.Equal(t, 3, c.Location().Line)

	s := newSink()
	c.Run(s)
	assert.Equal(t, []string{"setup", "body", "teardown"}, order)
	assert.Equal(t, []string{"test_sample.TestStandalone"}, s.successes)
}

func TestFuncAdaptUnresolvedSymbol(t *testing.T) {
	loc, path := sampleFile(t)

	art := Func{Name: "TestGhost", Fn: func(tt *unit.T) {}, ModuleName: "test_sample"}
	_, err := art.Adapt(loc, path, discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, source.ErrUnresolved))
}

func TestClassAdapt(t *testing.T) {
	loc, path := sampleFile(t)

	gadget := &TestGadget{}
	art := Class{Value: gadget, Prefix: "Test", ClassPrefix: "Test"}

	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)
	require.Len(t, cases, 2)

	assert.Equal(t, "TestGadget.TestAssemble", cases[0].Name())
	assert.Equal(t, 5, cases[0].Location().Line)
	assert.Equal(t, "TestGadget.TestPaint", cases[1].Name())
	assert.Equal(t, 7, cases[1].Location().Line)

	s := newSink()
	for _, c := range cases {
		c.Run(s)
	}
	assert.Equal(t, []string{"TestAssemble", "TestPaint"}, gadget.ran)
	assert.Equal(t, []string{"TestAssemble", "TestPaint"}, gadget.setups)
	assert.Equal(t, []string{"TestAssemble", "TestPaint"}, gadget.teardowns)
	assert.Len(t, s.successes, 2)
}

func TestClassAdaptDropsReservedMembers(t *testing.T) {
	loc, path := sampleFile(t)

	value := &runPrefixed{}
	art := Class{Value: value, Prefix: "Run"}

	// Run matches the prefix but collides with the case surface, so it is
	// dropped instead of rejected for its signature.
	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "runPrefixed.RunAround", cases[0].Name())
}

func TestClassAdaptRejectsUnprefixedName(t *testing.T) {
	loc, path := sampleFile(t)

	art := Class{Value: &TestGadget{}, Prefix: "Test", ClassPrefix: "Check"}
	_, err := art.Adapt(loc, path, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `class prefix "Check"`)
}

func TestClassAdaptRejectsBadSignature(t *testing.T) {
	loc, path := sampleFile(t)

	art := Class{Value: &badSig{}, Prefix: "Test"}
	_, err := art.Adapt(loc, path, discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported signature")
}

func TestClassAdaptMethodDisable(t *testing.T) {
	loc, path := sampleFile(t)

	gadget := &TestGadget{}
	art := Class{
		Value:   gadget,
		Prefix:  "Test",
		Methods: map[string]string{"TestPaint": "paint shop closed"},
	}

	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)

	s := newSink()
	for _, c := range cases {
		c.Run(s)
	}
	assert.Equal(t, []string{"TestAssemble"}, gadget.ran)
	assert.Equal(t, "paint shop closed", s.skips["TestGadget.TestPaint"])
}

func TestNativeAdaptDelegatesToRunTest(t *testing.T) {
	loc, path := sampleFile(t)

	native := &gadgetNative{}
	art := Native{Value: native, Prefix: "Test"}

	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)
	require.Len(t, cases, 1)
	assert.Equal(t, "gadgetNative.TestSpin", cases[0].Name())
	assert.Equal(t, 13, cases[0].Location().Line)

	s := newSink()
	cases[0].Run(s)
	assert.Equal(t, []string{"TestSpin"}, native.calls)
}

func TestNativeAdaptSkipRunsBeforeProtocol(t *testing.T) {
	loc, path := sampleFile(t)

	native := &gadgetNative{disabled: "spinning down"}
	art := Native{Value: native, Prefix: "Test"}

	cases, err := art.Adapt(loc, path, discardLogger())
	require.NoError(t, err)

	s := newSink()
	cases[0].Run(s)
	assert.Empty(t, native.calls)
	assert.Equal(t, "spinning down", s.skips["gadgetNative.TestSpin"])
}
