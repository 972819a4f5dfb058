// Copyright 2026 The Matchopt Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cmd implements the matchopt command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"matchopt.dev/go/internal/optdebug"
	"matchopt.dev/go/internal/optlog"
)

type runFunction func(cmd *Command, args []string) error

func mkRunE(c *Command, f runFunction) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c.Command = cmd
		return f(c, args)
	}
}

// newRootCmd creates the base command when called without any subcommands.
func newRootCmd() *Command {
	cmd := &cobra.Command{
		Use:   "matchopt",
		Short: "matchopt optimizes instruction-selection matchers.",
		Long: `matchopt reads matcher trees in their text form, rewrites them into
smaller equivalent trees and prints the result.

A matcher is a chain of steps that navigate, check and capture parts of a
program fragment. A scope tries its alternatives in order:

	check_opcode add
	scope {
		{
			select_child 0
			capture "x"
			check_type i32
			select_parent
			complete "add32"
		}
		{
			complete "add"
		}
	}

The optimizer fuses child visits into checks at the parent and factors
alternatives that start with the same step.

The MATCHOPT_DEBUG environment variable holds a comma-separated list of
debug flags:

	strict       verify the tree after every pass
	logopt=N     log level: 1 logs a summary, 2 logs every rewrite
	logformat=F  log encoding, console or json
	fixpoint     repeat the passes until nothing changes
	nofuse       disable fusion
	nofactor     disable factoring
`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	c := &Command{Command: cmd, root: cmd}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		c.Command = cmd
		return c.initLog()
	}

	subCommands := []*cobra.Command{
		newOptCmd(c),
		newFmtCmd(c),
		newStatsCmd(c),
		newSimCmd(c),
		newVersionCmd(c),
	}

	addGlobalFlags(cmd.PersistentFlags())

	for _, sub := range subCommands {
		cmd.AddCommand(sub)
	}

	return c
}

// Main runs the matchopt tool and returns the code for passing to os.Exit.
func Main() int {
	err := mainErr(context.Background(), os.Args[1:])
	if err != nil {
		if err != ErrPrintedError {
			fmt.Fprintln(os.Stderr, err)
		}
		return 1
	}
	return 0
}

func mainErr(ctx context.Context, args []string) error {
	cmd := New(args)
	return cmd.Run(ctx)
}

// Command wraps the active cobra command together with state shared by all
// subcommands.
type Command struct {
	// The currently active command.
	*cobra.Command

	root *cobra.Command

	log *zap.Logger

	hasErr bool
}

type errWriter Command

func (w *errWriter) Write(b []byte) (int, error) {
	c := (*Command)(w)
	c.hasErr = true
	return c.Command.ErrOrStderr().Write(b)
}

// Stderr returns a writer for error messages. Writing to it makes the
// command exit with a non-zero status.
func (c *Command) Stderr() io.Writer {
	return (*errWriter)(c)
}

// Log returns the logger configured by the global flags and MATCHOPT_DEBUG.
func (c *Command) Log() *zap.Logger {
	if c.log == nil {
		return zap.NewNop()
	}
	return c.log
}

func (c *Command) initLog() error {
	if err := optdebug.Init(); err != nil {
		return err
	}
	level := optdebug.Flags.LogOpt
	if flagVerbose.Bool(c) {
		level = max(level, 1)
	}
	format := optdebug.Flags.LogFormat
	if f := flagLogFormat.String(c); f != "" {
		format = f
	}
	log, err := optlog.New(c.root.ErrOrStderr(), optlog.Options{
		Format: format,
		Level:  level,
		NoTime: format != optlog.JSON,
	})
	if err != nil {
		return err
	}
	c.log = log
	return nil
}

// SetOutput sets the destination for usage, help and error messages.
func (c *Command) SetOutput(w io.Writer) {
	c.root.SetOut(w)
	c.root.SetErr(w)
}

// SetInput sets the reader used when a command reads standard input.
func (c *Command) SetInput(r io.Reader) {
	c.root.SetIn(r)
}

// ErrPrintedError indicates error messages have been printed to stderr.
var ErrPrintedError = errors.New("terminating because of errors")

// Run executes the command selected by the arguments passed to New.
func (c *Command) Run(ctx context.Context) (err error) {
	defer recoverError(&err)

	if err := c.root.ExecuteContext(ctx); err != nil {
		return err
	}
	if c.hasErr {
		return ErrPrintedError
	}
	return nil
}

func recoverError(err *error) {
	switch e := recover().(type) {
	case nil:
	case panicError:
		*err = e.Err
	default:
		panic(e)
	}
	// We use panic to escape, instead of os.Exit
}

// New creates the root command for the given arguments.
func New(args []string) *Command {
	cmd := newRootCmd()
	cmd.root.SetArgs(args)
	return cmd
}

type panicError struct {
	Err error
}

func exit() {
	panic(panicError{ErrPrintedError})
}

// exitOnErr reports err on stderr and, if fatal, stops the command.
func exitOnErr(cmd *Command, err error, fatal bool) {
	if err == nil {
		return
	}
	fmt.Fprintln(cmd.Stderr(), err)
	if fatal {
		exit()
	}
}
