package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	calls int32
	err   error
}

func (f *fakeRunner) AutoFreeze(ctx context.Context) (int, error) {
	atomic.AddInt32(&f.calls, 1)
	if ctx.Err() != nil {
		return 0, ctx.Err()
	}
	return 2, f.err
}

func TestRunAutoFreeze(t *testing.T) {
	runner := &fakeRunner{}
	s := New(runner)
	defer s.Stop()

	s.RunAutoFreeze()
	assert.EqualValues(t, 1, atomic.LoadInt32(&runner.calls))
}

func TestRunAutoFreezeErrorIsSwallowed(t *testing.T) {
	runner := &fakeRunner{err: errors.New("db down")}
	s := New(runner)
	defer s.Stop()

	assert.NotPanics(t, s.RunAutoFreeze)
	assert.EqualValues(t, 1, atomic.LoadInt32(&runner.calls))
}

func TestStartRejectsBadCron(t *testing.T) {
	s := New(&fakeRunner{})
	defer s.Stop()

	require.Error(t, s.Start("not a cron"))
}

func TestStartAcceptsDefaultCron(t *testing.T) {
	s := New(&fakeRunner{})
	defer s.Stop()

	require.NoError(t, s.Start("5 0 * * *"))
}
