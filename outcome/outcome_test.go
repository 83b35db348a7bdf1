package outcome_test

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"

	"github.com/a2y-d5l/rxkit/outcome"
)

func TestOk_ExposesValueOnly(t *testing.T) {
	o := outcome.Ok[int, error](3)

	assert.True(t, o.IsOk())
	v, ok := o.Value()
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	e, ok := o.Failure()
	assert.False(t, ok)
	assert.Nil(t, e)
	assert.Equal(t, "Ok(3)", o.String())
}

func TestErr_ExposesFailureOnly(t *testing.T) {
	boom := errors.New("boom")
	o := outcome.Err[int](boom)

	assert.False(t, o.IsOk())
	_, ok := o.Value()
	assert.False(t, ok)

	e, ok := o.Failure()
	assert.True(t, ok)
	assert.Same(t, boom, e)
	assert.Equal(t, "Err(boom)", o.String())
}

func TestFromPair(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		err    error
		wantOk bool
	}{
		{name: "NilError_IsOk", value: "x", err: nil, wantOk: true},
		{name: "NonNilError_IsErr", value: "x", err: errors.New("bad"), wantOk: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := outcome.FromPair(tt.value, tt.err)
			assert.Equal(t, tt.wantOk, o.IsOk())
			if tt.wantOk {
				v, _ := o.Value()
				assert.Equal(t, tt.value, v)
				return
			}
			e, _ := o.Failure()
			assert.Equal(t, tt.err, e)
		})
	}
}

func TestZeroOutcome_IsErr(t *testing.T) {
	var o outcome.Outcome[int, string]
	assert.False(t, o.IsOk())
}

func TestOutcome_Properties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("exactly one of Value and Failure is present", prop.ForAll(
		func(v int, e string, isOk bool) bool {
			o := outcome.Err[int](e)
			if isOk {
				o = outcome.Ok[int, string](v)
			}
			_, hasValue := o.Value()
			_, hasFailure := o.Failure()
			return hasValue != hasFailure && hasValue == o.IsOk()
		},
		gen.Int(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.Property("Match selects the branch the outcome holds", prop.ForAll(
		func(v int, e string, isOk bool) bool {
			o := outcome.Err[int](e)
			if isOk {
				o = outcome.Ok[int, string](v)
			}
			branch := outcome.Match(o,
				func(int) string { return "ok" },
				func(string) string { return "err" },
			)
			return (branch == "ok") == isOk
		},
		gen.Int(),
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
