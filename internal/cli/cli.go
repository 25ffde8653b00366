// Package cli implements the ztoc command surface: flag parsing,
// validation and the phase pipeline (tokenize, parse, lower, emit) behind
// `ztoc [flags] <input>`.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/mainer"
)

const binName = "ztoc"

var (
	shortUsage = fmt.Sprintf(`
usage: %s [-no-emit-bin|-tokens|-ast|-ir|-report] -o <file> -lib <dir> <input>
Run '%[1]s --help' for details.
`, binName)

	longUsage = fmt.Sprintf(`usage: %s [<option>...] -o <file> -lib <dir> <input>
       %[1]s -h|--help
       %[1]s -v|--version

Source-to-source compiler translating a single input file to portable C.

Valid flag options are:
       -h --help                 Show this help and exit.
       -v --version              Print version and exit.
       -o <file>                 Write the generated C to <file>. Required
                                 unless -no-emit-bin is set.
       -lib <dir>                Directory containing prelude.h, inlined
                                 into the generated C in place of the
                                 standard includes. Required unless
                                 -no-emit-bin is set.
       -tokens                   Print one line per token and exit.
       -ast                      Print the nested AST dump and exit.
       -ir                       Print the textual IR dump and exit.
       -report                   Print memory/size statistics to stdout
                                 before emitting.
       -no-emit-bin              Parse and lower but do not write output.

More information on the %[1]s repository:
       https://github.com/mna/ztoc
`, binName)
)

type Cmd struct {
	BuildVersion string
	BuildDate    string

	Help    bool `flag:"h,help"`
	Version bool `flag:"v,version"`

	Output    string `flag:"o"`
	LibDir    string `flag:"lib"`
	Tokens    bool   `flag:"tokens"`
	AST       bool   `flag:"ast"`
	IR        bool   `flag:"ir"`
	Report    bool   `flag:"report"`
	NoEmitBin bool   `flag:"no-emit-bin"`

	input string
	args  []string
}

func (c *Cmd) SetArgs(args []string) {
	c.args = args
}

func (c *Cmd) Validate() error {
	if c.Help || c.Version {
		return nil
	}

	switch len(c.args) {
	case 0:
		return errors.New("no input file provided")
	case 1:
		c.input = c.args[0]
	default:
		return errors.New("multiple files provided")
	}

	if !c.NoEmitBin && c.LibDir == "" {
		return errors.New("-lib <dir> is required")
	}
	if !c.NoEmitBin && c.Output == "" {
		return errors.New("-o <file> is required")
	}
	return nil
}

func (c *Cmd) Main(args []string, stdio mainer.Stdio) mainer.ExitCode {
	p := mainer.Parser{
		EnvVars:   true,
		EnvPrefix: binName + "_",
	}
	if err := p.Parse(args, c); err != nil {
		fmt.Fprintf(stdio.Stderr, "invalid arguments: %s\n%s", err, shortUsage)
		return mainer.InvalidArgs
	}

	switch {
	case c.Help:
		fmt.Fprint(stdio.Stdout, longUsage)
		return mainer.Success

	case c.Version:
		fmt.Fprintf(stdio.Stdout, "%s %s %s\n", binName, c.BuildVersion, c.BuildDate)
		return mainer.Success
	}

	ctx := mainer.CancelOnSignal(context.Background(), os.Interrupt)
	if err := c.compile(ctx, stdio); err != nil {
		// compile prints its own diagnostics to stdout, just return with
		// an error code
		return mainer.Failure
	}
	return mainer.Success
}
