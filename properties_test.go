package rxkit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/a2y-d5l/rxkit"
	"github.com/a2y-d5l/rxkit/optional"
	"github.com/a2y-d5l/rxkit/outcome"
)

// script is a generated event sequence: values followed by one terminal.
type script struct {
	values   []int
	terminal rxkit.Kind
	failure  string
}

func drawScript(t *rapid.T) script {
	return script{
		values:   rapid.SliceOf(rapid.IntRange(-100, 100)).Draw(t, "values"),
		terminal: rapid.SampledFrom([]rxkit.Kind{rxkit.KindFailed, rxkit.KindCompleted, rxkit.KindInterrupted}).Draw(t, "terminal"),
		failure:  rapid.StringMatching(`[a-z]{1,8}`).Draw(t, "failure"),
	}
}

func (sc script) stream() *rxkit.Stream[int, string] {
	return misbehaving(sc.values, sc.terminal, sc.failure)
}

func TestProperty_DropErrorNeverFails(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := drawScript(t)
		rec, _ := record(rxkit.DropError(sc.stream()))

		assert.Equal(t, nilIfEmpty(sc.values), nilIfEmpty(rec.Values()))
		assert.Equal(t, 1, rec.Terminals())
		term, _ := rec.Terminal()
		want := rxkit.KindCompleted
		if sc.terminal == rxkit.KindInterrupted {
			want = rxkit.KindInterrupted
		}
		assert.Equal(t, want, term.Kind)
	})
}

func TestProperty_ToOutcomeStreamPreservesOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := drawScript(t)
		rec, _ := record(rxkit.ToOutcomeStream(sc.stream()))

		got := rec.Values()
		wantLen := len(sc.values)
		if sc.terminal == rxkit.KindFailed {
			wantLen++
		}
		if !assert.Len(t, got, wantLen) {
			return
		}
		for i, v := range sc.values {
			assert.Equal(t, outcome.Ok[int, string](v), got[i])
		}
		if sc.terminal == rxkit.KindFailed {
			assert.Equal(t, outcome.Err[int](sc.failure), got[len(got)-1])
		}
		assert.Equal(t, 1, rec.Terminals())
	})
}

func TestProperty_AtMostOneTerminal(t *testing.T) {
	combinators := map[string]func(*rxkit.Stream[int, string]) int{
		"DropError": func(s *rxkit.Stream[int, string]) int {
			rec, _ := record(rxkit.DropError(s))
			return rec.Terminals()
		},
		"LiftError": func(s *rxkit.Stream[int, string]) int {
			rec, _ := record(rxkit.LiftError[error](s))
			return rec.Terminals()
		},
		"ToOutcomeStream": func(s *rxkit.Stream[int, string]) int {
			rec, _ := record(rxkit.ToOutcomeStream(s))
			return rec.Terminals()
		},
		"FilterByType": func(s *rxkit.Stream[int, string]) int {
			rec, _ := record(rxkit.FilterByType[int](s))
			return rec.Terminals()
		},
		"Taps": func(s *rxkit.Stream[int, string]) int {
			rec, _ := record(s.OnValue(func(int) {}).OnTerminated(func() {}).OnDisposed(func() {}))
			return rec.Terminals()
		},
	}

	rapid.Check(t, func(t *rapid.T) {
		sc := drawScript(t)
		for name, observe := range combinators {
			assert.Equal(t, 1, observe(sc.stream()), name)
		}
	})
}

func TestProperty_FilterByTypeIdentity(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := drawScript(t)
		plain, _ := record(sc.stream())
		filtered, _ := record(rxkit.FilterByType[int](sc.stream()))

		assert.Equal(t, plain.Events(), filtered.Events())
	})
}

func TestProperty_SkipPresentKeepsOnlyEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		present := rapid.SliceOf(rapid.Bool()).Draw(t, "present")
		elements := make([]optional.Optional[int], len(present))
		empty := 0
		for i, p := range present {
			if p {
				elements[i] = optional.Some(i)
				continue
			}
			elements[i] = optional.None[int]()
			empty++
		}

		rec, _ := record(rxkit.SkipPresent(rxkit.Just[optional.Optional[int], rxkit.Never](elements...)))

		assert.Len(t, rec.Values(), empty)
		for _, v := range rec.Values() {
			assert.False(t, v.IsPresent())
		}
	})
}

func TestProperty_FilterValuesAndErrorsPartition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		oks := rapid.SliceOf(rapid.Bool()).Draw(t, "oks")
		elements := make([]outcome.Outcome[int, string], len(oks))
		var wantValues []int
		var wantErrors []string
		for i, ok := range oks {
			if ok {
				elements[i] = outcome.Ok[int, string](i)
				wantValues = append(wantValues, i)
				continue
			}
			msg := rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "msg")
			elements[i] = outcome.Err[int](msg)
			wantErrors = append(wantErrors, msg)
		}
		src := rxkit.Just[outcome.Outcome[int, string], rxkit.Never](elements...)

		values, _ := record(rxkit.FilterValues(src))
		failures, _ := record(rxkit.FilterErrors(src))

		assert.Equal(t, wantValues, nilIfEmpty(values.Values()))
		assert.Equal(t, wantErrors, nilIfEmpty(failures.Values()))
		assert.Equal(t, len(elements), len(values.Values())+len(failures.Values()))
	})
}

func TestProperty_TapsAreTransparent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sc := drawScript(t)
		plain, _ := record(sc.stream())
		tapped, _ := record(sc.stream().
			OnValue(func(int) {}).
			OnError(func(string) {}).
			OnCompleted(func() {}).
			OnInterrupted(func() {}).
			OnTerminated(func() {}).
			OnDisposed(func() {}))

		assert.Equal(t, plain.Events(), tapped.Events())
	})
}

func nilIfEmpty[T any](s []T) []T {
	if len(s) == 0 {
		return nil
	}
	return s
}
