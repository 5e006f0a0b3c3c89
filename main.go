package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jcorbin/twostack/internal/diag"
	"github.com/jcorbin/twostack/internal/logio"
	"github.com/jcorbin/twostack/internal/panicerr"
	"github.com/jcorbin/twostack/internal/scan"
	"github.com/peterh/liner"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"
)

const historyFile = ".twostack_history"

func main() {
	ctx := context.Background()

	var (
		timeout     time.Duration
		trace       bool
		dump        bool
		interactive bool
		maxDepth    int
		color       string
	)
	flag.DurationVar(&timeout, "timeout", 0, "specify a time limit")
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "dump VM state after running")
	flag.BoolVar(&interactive, "i", false, "run an interactive session")
	flag.IntVar(&maxDepth, "max-depth", 0, "limit nested call depth")
	flag.StringVar(&color, "color", "auto", "color diagnostics: auto, always, or never")
	flag.Parse()

	var log logio.Logger
	log.SetOutput(os.Stderr)

	args := flag.Args()
	if !interactive && len(args) != 1 {
		log.Errorf("usage: %v [flags] FILE", filepath.Base(os.Args[0]))
		os.Exit(log.ExitCode())
	}

	var opts = []VMOption{
		WithOutput(os.Stdout),
		WithDiagnostics(&diag.Printer{Out: os.Stderr, Color: useColor(color)}),
	}
	if trace {
		opts = append(opts, WithLogf(log.Leveledf("TRACE")))
	}
	if maxDepth != 0 {
		opts = append(opts, WithMaxDepth(maxDepth))
	}
	vm := New(opts...)

	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	var err error
	if interactive {
		err = runInteractive(ctx, vm)
	} else {
		err = runFile(ctx, vm, args[0])
	}
	if cerr := vm.Close(); err == nil {
		err = cerr
	}

	if dump {
		vmDumper{vm: vm, out: os.Stderr}.dump()
	}
	logError(&log, err)
	os.Exit(log.ExitCode())
}

// logError logs an error that stopped the interpreter. Lexical and runtime
// failures of the program were already reported as diagnostics, and do not
// change the exit code; only failures of the interpreter itself do.
func logError(log *logio.Logger, err error) {
	switch {
	case err == nil:
	case errors.Is(err, ErrRuntime), errors.Is(err, scan.ErrLexical):
	case panicerr.IsPanic(err):
		log.Errorf("%v\n%s", err, panicerr.PanicStack(err))
	case panicerr.IsExit(err):
		log.Errorf("interpreter stopped: %v", err)
	default:
		log.ErrorIf(err)
	}
}

func useColor(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stderr.Fd()))
	}
}

// runFile runs a source file, alongside a watcher that stops the VM on
// interrupt.
func runFile(ctx context.Context, vm *VM, name string) error {
	source, err := os.ReadFile(name)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		defer cancel()
		return vm.Run(ctx, string(source))
	})
	eg.Go(func() error {
		return watchSignals(ctx)
	})
	return eg.Wait()
}

type signalError struct{ os.Signal }

func (err signalError) Error() string { return fmt.Sprintf("received %v", err.Signal) }

func watchSignals(ctx context.Context) error {
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigc)
	select {
	case <-ctx.Done():
		return nil
	case sig := <-sigc:
		return signalError{sig}
	}
}

func runInteractive(ctx context.Context, vm *VM) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if home, err := os.UserHomeDir(); err == nil {
		histPath := filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			ln.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()
	}

	return repl{vm: vm, in: ln}.run(ctx)
}
