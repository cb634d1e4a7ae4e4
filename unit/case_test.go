package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethereum-optimism/infra/op-testkit/source"
)

// recorder captures reporter transitions for assertions.
type recorder struct {
	started   []string
	stopped   []string
	successes []string
	failures  map[string]string
	errored   map[string]string
	skips     map[string]string
}

func newRecorder() *recorder {
	return &recorder{
		failures: make(map[string]string),
		errored:  make(map[string]string),
		skips:    make(map[string]string),
	}
}

func (r *recorder) StartCase(c *Case) { r.started = append(r.started, c.Name()) }
func (r *recorder) StopCase(c *Case)  { r.stopped = append(r.stopped, c.Name()) }
func (r *recorder) AddSuccess(c *Case) {
	r.successes = append(r.successes, c.Name())
}
func (r *recorder) AddFailure(c *Case, trace string) { r.failures[c.Name()] = trace }
func (r *recorder) AddError(c *Case, trace string)   { r.errored[c.Name()] = trace }
func (r *recorder) AddSkip(c *Case, reason string)   { r.skips[c.Name()] = reason }

func mustCase(t *testing.T, name string, body Func, opts ...CaseOption) *Case {
	t.Helper()
	c, err := NewCase(name, source.Location{File: "test_sample.go", Line: 5}, "Sample", name, body, opts...)
	require.NoError(t, err)
	return c
}

func TestRunSuccess(t *testing.T) {
	rec := newRecorder()
	ran := false
	c := mustCase(t, "TestPasses", func(tt *T) { ran = true })

	c.Run(rec)

	assert.True(t, ran)
	assert.Equal(t, []string{"TestPasses"}, rec.started)
	assert.Equal(t, []string{"TestPasses"}, rec.stopped)
	assert.Equal(t, []string{"TestPasses"}, rec.successes)
	assert.Empty(t, rec.failures)
	assert.Empty(t, rec.errored)
}

func TestRunFailureViaErrorf(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestFails", func(tt *T) {
		tt.Errorf("want %d, got %d", 1, 2)
		tt.Errorf("second problem")
	})

	c.Run(rec)

	require.Contains(t, rec.failures, "TestFails")
	assert.Contains(t, rec.failures["TestFails"], "want 1, got 2")
	assert.Contains(t, rec.failures["TestFails"], "second problem")
	assert.Empty(t, rec.successes)
	assert.Empty(t, rec.errored)
}

func TestRunFailureViaFatalfAborts(t *testing.T) {
	rec := newRecorder()
	reached := false
	c := mustCase(t, "TestFatal", func(tt *T) {
		tt.Fatalf("give up")
		reached = true
	})

	c.Run(rec)

	assert.False(t, reached)
	require.Contains(t, rec.failures, "TestFatal")
	assert.Contains(t, rec.failures["TestFatal"], "give up")
}

func TestRunFailNowWithoutMessage(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestBare", func(tt *T) { tt.FailNow() })

	c.Run(rec)

	require.Contains(t, rec.failures, "TestBare")
	assert.Contains(t, rec.failures["TestBare"], "no failure message")
}

func TestRunPanicIsError(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestBoom", func(tt *T) { panic("boom") })

	c.Run(rec)

	require.Contains(t, rec.errored, "TestBoom")
	assert.Contains(t, rec.errored["TestBoom"], "panic: boom")
	assert.Empty(t, rec.failures)
	assert.Equal(t, []string{"TestBoom"}, rec.stopped)
}

func TestRunDisabledSkipsEverything(t *testing.T) {
	rec := newRecorder()
	hookRan := false
	c := mustCase(t, "TestOff",
		func(tt *T) { hookRan = true },
		WithHooks(func(tt *T) { hookRan = true }, func(tt *T) { hookRan = true }),
		WithDisabled("not ready"),
	)

	c.Run(rec)

	assert.False(t, hookRan)
	assert.Empty(t, rec.started)
	assert.Empty(t, rec.stopped)
	assert.Equal(t, "not ready", rec.skips["TestOff"])
}

func TestMethodDisableWinsOverCaseDisable(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestOff", func(tt *T) {},
		WithDisabled("class reason"),
		WithMethodDisabled("method reason"),
	)

	c.Run(rec)

	assert.Equal(t, "method reason", rec.skips["TestOff"])
}

func TestSetUpFailureIsErrorAndStopsCase(t *testing.T) {
	rec := newRecorder()
	bodyRan := false
	tearDownRan := false
	c := mustCase(t, "TestFixture",
		func(tt *T) { bodyRan = true },
		WithHooks(
			func(tt *T) { tt.Fatalf("fixture broke") },
			func(tt *T) { tearDownRan = true },
		),
	)

	c.Run(rec)

	assert.False(t, bodyRan)
	assert.False(t, tearDownRan)
	require.Contains(t, rec.errored, "TestFixture")
	assert.Contains(t, rec.errored["TestFixture"], "fixture broke")
}

func TestTearDownRunsAfterBodyFailure(t *testing.T) {
	rec := newRecorder()
	tearDownRan := false
	c := mustCase(t, "TestCleanup",
		func(tt *T) { tt.Fatalf("nope") },
		WithHooks(nil, func(tt *T) { tearDownRan = true }),
	)

	c.Run(rec)

	assert.True(t, tearDownRan)
	require.Contains(t, rec.failures, "TestCleanup")
}

func TestTearDownPanicPromotesFailureToError(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestPromote",
		func(tt *T) { tt.Errorf("body failed") },
		WithHooks(nil, func(tt *T) { panic("teardown broke") }),
	)

	c.Run(rec)

	assert.Empty(t, rec.failures)
	require.Contains(t, rec.errored, "TestPromote")
	assert.Contains(t, rec.errored["TestPromote"], "teardown broke")
	assert.Contains(t, rec.errored["TestPromote"], "body failed")
}

func TestTearDownPanicAfterCleanBodyIsError(t *testing.T) {
	rec := newRecorder()
	c := mustCase(t, "TestDirtyCleanup",
		func(tt *T) {},
		WithHooks(nil, func(tt *T) { panic("teardown broke") }),
	)

	c.Run(rec)

	assert.Empty(t, rec.successes)
	require.Contains(t, rec.errored, "TestDirtyCleanup")
}

func TestNewCaseRejectsZeroLocation(t *testing.T) {
	_, err := NewCase("TestNowhere", source.Location{}, "Sample", "TestNowhere", func(tt *T) {})
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrUnresolved)
}

func TestNewCaseRejectsNilBody(t *testing.T) {
	_, err := NewCase("TestEmpty", source.Location{File: "test_sample.go", Line: 1}, "Sample", "TestEmpty", nil)
	require.Error(t, err)
}
