package contact

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFormReadyRequiresEveryField(t *testing.T) {
	cases := []struct {
		name    string
		form    Form
		missing []string
	}{
		{"complete", Form{Name: "Ann", Email: "a@b.com", Message: "Hi"}, nil},
		{"empty", Form{}, []string{"name", "email", "message"}},
		{"blank email", Form{Name: "Ann", Email: "   ", Message: "Hi"}, []string{"email"}},
		{"no message", Form{Name: "Ann", Email: "a@b.com"}, []string{"message"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.missing == nil, tc.form.Ready())
			require.Equal(t, tc.missing, tc.form.Missing())
		})
	}
}

func newInstantSubmitter() *Submitter {
	s := NewSubmitter(Config{})
	s.sleep = func(time.Duration) {}
	return s
}

func TestSubmitClearsFieldsAndShowsBanner(t *testing.T) {
	s := newInstantSubmitter()

	res, err := s.Submit(context.Background(), "visitor", Form{Name: "Ann", Email: "a@b.com", Message: "Hi"})
	require.NoError(t, err)
	require.True(t, res.Sent)
	require.Equal(t, Form{}, res.Form)
	require.Equal(t, 3*time.Second, res.DismissAfter)
}

func TestSubmitRejectsIncompleteForm(t *testing.T) {
	s := newInstantSubmitter()
	form := Form{Name: "Ann"}

	res, err := s.Submit(context.Background(), "visitor", form)
	require.ErrorIs(t, err, ErrIncomplete)
	require.False(t, res.Sent)
	require.Equal(t, form, res.Form)
}

func TestSubmitWaitsConfiguredDelay(t *testing.T) {
	s := NewSubmitter(Config{Delay: 250 * time.Millisecond, BannerDuration: time.Second})
	var waited time.Duration
	s.sleep = func(d time.Duration) { waited = d }

	res, err := s.Submit(context.Background(), "v", Form{Name: "a", Email: "b", Message: "c"})
	require.NoError(t, err)
	require.Equal(t, 250*time.Millisecond, waited)
	require.Equal(t, time.Second, res.DismissAfter)
}

func TestSubmitCompletesAfterCancellation(t *testing.T) {
	s := newInstantSubmitter()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Submit(ctx, "v", Form{Name: "a", Email: "b", Message: "c"})
	require.NoError(t, err)
	require.True(t, res.Sent)
}

func TestSubmitRejectsConcurrentSubmissionForSameVisitor(t *testing.T) {
	s := NewSubmitter(Config{})
	entered := make(chan struct{})
	release := make(chan struct{})
	s.sleep = func(time.Duration) {
		close(entered)
		<-release
	}
	form := Form{Name: "Ann", Email: "a@b.com", Message: "Hi"}

	var wg sync.WaitGroup
	wg.Add(1)
	var firstErr error
	go func() {
		defer wg.Done()
		_, firstErr = s.Submit(context.Background(), "visitor", form)
	}()

	<-entered
	_, err := s.Submit(context.Background(), "visitor", form)
	require.ErrorIs(t, err, ErrInFlight)

	close(release)
	wg.Wait()
	require.NoError(t, firstErr)

	s.sleep = func(time.Duration) {}
	_, err = s.Submit(context.Background(), "visitor", form)
	require.NoError(t, err)
}
