package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"ovm/classfile"
	"ovm/vm"
)

func main() {
	var (
		classpath   string
		verbose     bool
		debug       bool
		trace       string
		stats       bool
		interactive bool
	)

	rootCmd := &cobra.Command{
		Use:   "ovm <FullyQualifiedClassName> [args...]",
		Short: "ovm runs a compiled class's main2:([Ljava/lang/String;)I entry point",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(verbose)
			defer logger.Sync()
			vm.SetLogger(logger)

			entryClass, programArgs := args[0], args[1:]

			repo := vm.NewRepository()
			vm.Bootstrap(repo)

			if err := loadClasspath(repo, classpath, entryClass); err != nil {
				return err
			}
			vm.RelinkSupers(repo)

			heap := vm.NewHeap()
			interp := vm.NewInterpreter(repo, heap, os.Stdout)
			interp.Debug = debug
			interp.TraceMethod = trace

			if interactive {
				if !isInteractiveTTY() {
					logger.Warnw("stdout is not a tty, ignoring --interactive")
				} else {
					return runDebugTUI(interp, entryClass, programArgs)
				}
			}

			code, err := vm.RunMain(interp, entryClass, programArgs)
			if err != nil {
				logger.Errorw("run failed", "error", err)
				os.Exit(1)
			}
			if stats {
				fmt.Fprintf(os.Stderr, "exit code: %d\n", code)
			}
			os.Exit(int(code))
			return nil
		},
	}

	rootCmd.Flags().StringVar(&classpath, "classpath", "", "zip archive or directory of .class files to load alongside the entry class")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "structured logging at debug level")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "trace every instruction of --trace's method")
	rootCmd.Flags().StringVar(&trace, "trace", "", "method name to trace when --debug is set")
	rootCmd.Flags().BoolVar(&stats, "stats", false, "print the exit code to stderr before exiting")
	rootCmd.Flags().BoolVar(&interactive, "interactive", false, "step through main2 in an interactive debugger")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger(verbose bool) *zap.SugaredLogger {
	if verbose {
		l, _ := zap.NewDevelopment()
		return l.Sugar()
	}
	l, _ := zap.NewProduction()
	return l.Sugar()
}

func isInteractiveTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// loadClasspath loads everything classpath points at (a .zip/.jar archive,
// a directory, or a single .class file). With no classpath it loads only
// the entry class's own file, "<entryClass>.class" relative to the working
// directory.
func loadClasspath(repo *vm.Repository, classpath, entryClass string) error {
	if classpath == "" {
		cf, err := classfile.ParseFile(entryClass + ".class")
		if err != nil {
			return fmt.Errorf("loading entry class %s: %w", entryClass, err)
		}
		vm.LoadIntoRepository(repo, cf)
		return nil
	}

	var classFiles []*classfile.ClassFile
	var err error
	if isZip(classpath) {
		classFiles, err = classfile.LoadZip(classpath)
	} else {
		classFiles, err = classfile.LoadDir(classpath)
	}
	if err != nil && len(classFiles) == 0 {
		return fmt.Errorf("loading classpath %s: %w", classpath, err)
	}
	if err != nil {
		vm.Logger.Warnw("some classpath entries failed to load", "error", err)
	}
	for _, cf := range classFiles {
		vm.LoadIntoRepository(repo, cf)
	}
	return nil
}

func isZip(path string) bool {
	if len(path) < 4 {
		return false
	}
	return path[len(path)-4:] == ".zip" || path[len(path)-4:] == ".jar"
}
