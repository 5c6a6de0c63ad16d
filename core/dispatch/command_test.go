package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"GoBotExt/core/dispatch"
	"GoBotExt/core/dispatch/convert"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *dispatch.Context, ...any) error { return nil }

func TestNewCommand_InvalidName(t *testing.T) {
	for _, name := range []string{"", "foo bar", "tab\tbed", " lead", "new\nline"} {
		t.Run(name, func(t *testing.T) {
			_, err := dispatch.NewCommand(dispatch.CommandOptions{Name: name}, noop)
			require.Error(t, err)
			assert.ErrorIs(t, err, dispatch.ErrInvalidCommandName)
			assert.ErrorIs(t, err, dispatch.ErrCommand)
		})
	}
}

func TestNewCommand_NilHandlerOrConverter(t *testing.T) {
	_, err := dispatch.NewCommand(dispatch.CommandOptions{Name: "x"}, nil)
	assert.ErrorIs(t, err, dispatch.ErrCommandImplementation)

	_, err = dispatch.NewCommand(dispatch.CommandOptions{
		Name:      "x",
		Arguments: []dispatch.Argument{dispatch.Arg("a", nil)},
	}, noop)
	assert.ErrorIs(t, err, dispatch.ErrCommandImplementation)
}

func TestNewCommand_Defaults(t *testing.T) {
	cmd, err := dispatch.NewCommand(dispatch.CommandOptions{Name: "ping"}, noop)
	require.NoError(t, err)

	assert.Equal(t, "ping", cmd.Name())
	assert.Equal(t, "No description", cmd.Description())
	assert.Empty(t, cmd.Format())
	assert.False(t, cmd.Hidden())
	assert.Nil(t, cmd.Section())
	assert.Empty(t, cmd.Arguments())
}

func TestNewCommand_ExplicitFormatKept(t *testing.T) {
	cmd, err := dispatch.NewCommand(dispatch.CommandOptions{
		Name:      "say",
		Arguments: []dispatch.Argument{dispatch.Arg("text", convert.String())},
		Format:    "say <anything>",
	}, noop)
	require.NoError(t, err)
	assert.Equal(t, "say <anything>", cmd.Format())
}

func TestDeriveFormat(t *testing.T) {
	tests := []struct {
		name string
		args []dispatch.Argument
		want string
	}{
		{
			name: "required and optional",
			args: []dispatch.Argument{
				dispatch.Arg("n", convert.Number()),
				dispatch.Arg("s", convert.String(convert.Optional())),
			},
			want: "cmdname {n} [s]",
		},
		{
			name: "defaults",
			args: []dispatch.Argument{
				dispatch.Arg("sides", convert.Number(convert.WithDefault(6.0))),
				dispatch.Arg("count", convert.Number(convert.WithDefault(1.0))),
			},
			want: "cmdname [sides = 6] [count = 1]",
		},
		{
			name: "greedy",
			args: []dispatch.Argument{dispatch.Arg("users", convert.Spoiled(convert.User()))},
			want: "cmdname {users}",
		},
		{
			name: "greedy with blank list default",
			args: []dispatch.Argument{dispatch.Arg("section", convert.Spoiled(convert.String(), convert.ListDefault("")))},
			want: "cmdname [{section}]",
		},
		{
			name: "greedy with list default",
			args: []dispatch.Argument{dispatch.Arg("n", convert.Spoiled(convert.Number(), convert.ListDefault(1, 2)))},
			want: "cmdname [{n = 1 2}]",
		},
		{
			name: "choices",
			args: []dispatch.Argument{dispatch.Arg("color", convert.Oneof(convert.String(), "red", "blue"))},
			want: "cmdname {color}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := dispatch.NewCommand(dispatch.CommandOptions{Name: "cmdname", Arguments: tt.args}, noop)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd.Format())
		})
	}
}

func TestCommandError_Messages(t *testing.T) {
	missing := &dispatch.CommandError{Kind: dispatch.ErrMissingRequiredArgument, Command: "add", Argument: "n"}
	assert.Equal(t, "required argument: n missing in add", missing.Error())
	assert.True(t, errors.Is(missing, dispatch.ErrArgument))
	assert.True(t, errors.Is(missing, dispatch.ErrCommand))

	choice := &dispatch.CommandError{Kind: dispatch.ErrBadArgument, Argument: "color", Choices: []any{"red", "blue"}}
	assert.Equal(t, "bad argument for color, expected one of red, blue", choice.Error())

	cause := errors.New("boom")
	impl := &dispatch.CommandError{Kind: dispatch.ErrCommandImplementation, Command: "x", Err: cause}
	assert.ErrorIs(t, impl, cause)
	assert.ErrorIs(t, impl, dispatch.ErrCommandImplementation)
	assert.NotErrorIs(t, impl, dispatch.ErrArgument)
}
