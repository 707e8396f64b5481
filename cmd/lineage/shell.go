package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

// errUnterminatedQuote is returned by splitArgs for an unbalanced quote.
var errUnterminatedQuote = errors.New("unterminated quote")

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive session on one tree",
		Long: `Start an interactive session. The tree is loaded once and every command
runs against it, so image exports can continue in the background while
you keep editing. Type 'help' for commands and 'exit' to leave.`,
		Args: cobra.NoArgs,
		RunE: runShell,
	}
}

// inShell reports whether commands run inside an interactive session.
func inShell() bool {
	return currentSession() != nil
}

func currentSession() *internalDeps {
	sessionMu.Lock()
	defer sessionMu.Unlock()
	return session
}

func setSession(d *internalDeps) {
	sessionMu.Lock()
	session = d
	sessionMu.Unlock()
}

func runShell(cmd *cobra.Command, args []string) error {
	if inShell() {
		return errors.New("already in a shell")
	}
	ctx := cmd.Context()

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	deps, err := buildDeps(ctx, cwd, globalTree)
	if err != nil {
		return err
	}
	defer deps.cleanup()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     deps.Config.HistoryPath(cwd),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("starting readline: %w", err)
	}
	defer rl.Close()

	return runShellSession(ctx, deps, rl, rl.Stdout(), rl.Stderr())
}

// lineReader yields one line of input per call and io.EOF at the end.
type lineReader interface {
	Readline() (string, error)
}

// runShellSession runs lines against deps until exit, EOF or ctx is done.
// Background exports are waited for before it returns.
func runShellSession(ctx context.Context, deps *internalDeps, lines lineReader, stdout, stderr io.Writer) error {
	setSession(deps)
	defer setSession(nil)
	defer deps.waitExports(stdout)

	stats := deps.Family.HandleStats()
	fmt.Fprintf(stdout, "Tree %s: %d members, %d relationships. Type 'help' for commands.\n",
		deps.DocumentKey, stats.Members, stats.Relationships)

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := lines.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				fmt.Fprintln(stdout, "Use 'exit' or 'quit' to leave the shell.")
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		words, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			continue
		}
		if len(words) == 0 {
			continue
		}

		if words[0] == "exit" || words[0] == "quit" {
			return nil
		}

		if err := runShellLine(ctx, stdout, stderr, words); err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
		}
	}
}

// runShellLine executes one command line with a fresh command tree so
// flag values never leak between lines.
func runShellLine(ctx context.Context, stdout, stderr io.Writer, words []string) error {
	if words[0] == "shell" || words[0] == "init" {
		return fmt.Errorf("%q is not available inside the shell", words[0])
	}

	root := newRootCmd()
	root.SetArgs(words)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// splitArgs splits a shell line into words. Single and double quotes
// group words and a backslash escapes the next character.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)

	for _, r := range line {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 || escaped {
		return nil, errUnterminatedQuote
	}
	if inWord {
		args = append(args, current.String())
	}
	return args, nil
}
