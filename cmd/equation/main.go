package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/equation"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

type options struct {
	in          string
	vars        string
	seed        uint64
	echo        bool
	interactive bool
	verbose     bool
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "equation [statement...]",
		Short: "Evaluate matrix statements",
		Long: "Compile and run statements such as \"c = inv(a*b)\". Statements come from\n" +
			"the arguments, then from --in or standard input one per line, unless\n" +
			"--interactive is given.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}
	cmd.Flags().StringVar(&opts.in, "in", "", "file of statements, one per line (- for stdin)")
	cmd.Flags().StringVar(&opts.vars, "vars", "", "YAML file of variables to define first")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "seed for rand and randn (0 for time-based)")
	cmd.Flags().BoolVar(&opts.echo, "echo", false, "print the operations of each statement")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "read statements from a prompt")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log compiler events to stderr")
	return cmd
}

func run(cmd *cobra.Command, opts *options, args []string) error {
	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	eo := []equation.Option{equation.WithLogger(log)}
	if opts.seed != 0 {
		eo = append(eo, equation.Seed(opts.seed))
	}
	e := equation.New(eo...)
	if opts.vars != "" {
		if err := loadVars(e, opts.vars); err != nil {
			return err
		}
	}
	out := cmd.OutOrStdout()
	for _, a := range args {
		if err := statement(out, e, a, opts.echo); err != nil {
			return err
		}
	}
	if opts.interactive {
		return repl(out, e, opts.echo)
	}
	var in io.Reader
	switch {
	case opts.in == "-", opts.in == "" && len(args) == 0:
		in = cmd.InOrStdin()
	case opts.in != "":
		f, err := os.Open(opts.in)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	default:
		return nil
	}
	s := bufio.NewScanner(in)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := statement(out, e, line, opts.echo); err != nil {
			return err
		}
	}
	return s.Err()
}

// statement compiles and performs one statement and prints its result.
func statement(w io.Writer, e *equation.Equation, src string, echo bool) error {
	seq, err := e.Compile(src)
	if err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if echo {
		fmt.Fprintf(w, "ops: %s\n", strings.Join(seq.Ops(), " "))
	}
	if err := seq.Perform(); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	if t := seq.Target(); t != "" {
		fmt.Fprintf(w, "%s = %v\n", t, e.Lookup(t))
	}
	return nil
}

func repl(w io.Writer, e *equation.Equation, echo bool) error {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     ".equation-history.tmp",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return err
	}
	defer l.Close()
	for {
		line, err := l.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if err := statement(w, e, line, echo); err != nil {
			fmt.Fprintln(w, err)
		}
	}
}
