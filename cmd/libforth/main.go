// Command libforth is a thin CLI shell around the forth package: it
// loads or creates a core, evaluates -e strings and file arguments, and
// optionally drops into an interactive line-editing REPL.
package main

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"

	"github.com/Paul-Webster/libforth"
	"github.com/Paul-Webster/libforth/internal/logio"
)

const usage = `libforth

Usage:
  libforth [-d] [-t] [-m SIZE] [-l FILE] [-s FILE] [-e STRING] [FILE...]
  libforth -h

Options:
  -h, --help              Show this help.
  -e STRING                Evaluate STRING before processing any files.
  -s FILE                   Save the core image to FILE on exit.
  -d                        Save the core image to forth.core on exit.
  -l FILE                   Load a core image from FILE instead of starting fresh.
  -m SIZE                   Core size in kilobytes [default: 32].
  -t                        Read from stdin after processing files.
  --                        End of options.
`

func main() {
	os.Exit(run())
}

func run() int {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], "")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	log := &logio.Logger{}
	log.SetOutput(os.Stderr)

	loadFile, _ := opts.String("-l")
	saveFile, _ := opts.String("-s")
	if d, _ := opts.Bool("-d"); d && saveFile == "" {
		saveFile = "forth.core"
	}

	sizeStr, _ := opts.String("-m")
	sizeKB, err := strconv.Atoi(sizeStr)
	if err != nil {
		log.Errorf("bad -m value %q: %v", sizeStr, err)
		return log.ExitCode()
	}
	if loadFile != "" && sizeKB != 32 {
		log.Errorf("-l and -m are mutually exclusive")
		return log.ExitCode()
	}

	vmOpts := []forth.VMOption{
		forth.WithOutput(os.Stdout),
		forth.WithErrorOutput(os.Stderr),
	}

	vm, err := openVM(loadFile, sizeKB, vmOpts)
	if err != nil {
		log.Errorf("%v", err)
		return log.ExitCode()
	}
	defer vm.Close()

	ctx := context.Background()

	if s, err := opts.String("-e"); err == nil && s != "" {
		if rc := vm.Eval(ctx, s); rc != 0 {
			log.Errorf("evaluation of -e argument failed")
		}
	}

	files, _ := opts["FILE"].([]string)
	for _, name := range files {
		if err := evalFile(ctx, vm, name); err != nil {
			log.Errorf("%v", err)
		}
	}

	tail, _ := opts.Bool("-t")
	wantREPL := tail || (len(files) == 0 && !hadEval(opts))
	if wantREPL {
		if isatty.IsTerminal(os.Stdin.Fd()) {
			repl(ctx, vm, log)
		} else {
			vm.SetFileInput(os.Stdin, "<stdin>")
			if rc := vm.Run(ctx); rc != 0 {
				log.Errorf("stdin evaluation failed")
			}
		}
	}

	if saveFile != "" {
		f, err := os.Create(saveFile)
		if err != nil {
			log.Errorf("%v", err)
			return log.ExitCode()
		}
		err = vm.SaveCore(f)
		f.Close()
		if err != nil {
			log.Errorf("%v", err)
		}
	}

	return log.ExitCode()
}

func hadEval(opts docopt.Opts) bool {
	s, err := opts.String("-e")
	return err == nil && s != ""
}

func openVM(loadFile string, sizeKB int, opts []forth.VMOption) (*forth.VM, error) {
	if loadFile != "" {
		f, err := os.Open(loadFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return forth.LoadCore(f, opts...)
	}
	return forth.New(sizeKB*1024*8/forth.CellBits, opts...), nil
}

func evalFile(ctx context.Context, vm *forth.VM, name string) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	vm.SetFileInput(f, name)
	if rc := vm.Run(ctx); rc != 0 {
		return fmt.Errorf("%s: evaluation failed", name)
	}
	return nil
}

// repl runs an interactive line-editing session via liner, evaluating
// one line at a time so a word that halts on a parse error doesn't take
// the whole session down with it.
func repl(ctx context.Context, vm *forth.VM, log *logio.Logger) {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetWordCompleter(wordCompleter(vm))

	for {
		text, err := line.Prompt("forth> ")
		if err != nil {
			return
		}
		line.AppendHistory(text)
		if rc := vm.Eval(ctx, text+"\n"); rc != 0 {
			log.Errorf("evaluation failed")
		}
		if vm.Invalid() {
			return
		}
	}
}

// wordCompleter sources completions from the VM's live dictionary, so a
// word defined earlier in the session is offered back once its prefix
// is typed again.
func wordCompleter(vm *forth.VM) func(line string, pos int) (string, []string, string) {
	return func(line string, pos int) (head string, completions []string, tail string) {
		start := pos
		for start > 0 && line[start-1] != ' ' && line[start-1] != '\t' {
			start--
		}
		head, tail = line[:start], line[pos:]
		if word := line[start:pos]; word != "" {
			completions = vm.DictionaryWords(word)
		}
		return head, completions, tail
	}
}
