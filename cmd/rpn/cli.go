package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/speakeasy-api/rpn"
	"github.com/speakeasy-api/rpn/pkg/batch"
	"github.com/speakeasy-api/rpn/pkg/config"
	"github.com/speakeasy-api/rpn/pkg/rpnfmt"
)

const name = "rpn"

const (
	exitCodeOK = iota
	exitCodeFlagParseErr
	exitCodeUsageErr
	exitCodeIOErr
	_
	exitCodeEvalErr
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "load configuration from a YAML `FILE`",
	}
	logLevelFlag = cli.StringFlag{
		Name:  "log-level",
		Usage: "log level: error, warn, info or debug",
	}
	allowLeftoverFlag = cli.BoolFlag{
		Name:  "allow-leftover",
		Usage: "return the top value when operands are left over",
	}
	fmtFlag = cli.BoolFlag{
		Name:  "fmt",
		Usage: "print expressions in canonical form instead of evaluating them",
	}
	fmtBreakFlag = cli.StringFlag{
		Name:  "fmt-break",
		Usage: "comma-separated operators (add,sub,mul,div) followed by a line break with --fmt",
	}
	batchFlag = cli.StringFlag{
		Name:  "batch",
		Usage: "run the cases of a YAML batch `FILE`",
	}
	yamlFlag = cli.BoolFlag{
		Name:  "yaml",
		Usage: "print results as YAML",
	}
	colorFlag = cli.BoolFlag{
		Name:  "color",
		Usage: "colorize error output",
	}
	noColorFlag = cli.BoolFlag{
		Name:  "no-color",
		Usage: "disable colored error output",
	}
)

// runner holds the streams and the resolved configuration of one invocation.
type runner struct {
	inStream  io.Reader
	outStream io.Writer
	errStream io.Writer
	isTTY     bool

	color   bool
	config  config.Config
	options rpn.Options
}

// outputEntry is one element of the --yaml output sequence.
type outputEntry struct {
	Expr  string `yaml:"expr"`
	Value *int64 `yaml:"value,omitempty"`
	Error string `yaml:"error,omitempty"`
}

func init() {
	// Messages are printed where the error occurs and run maps the returned
	// ExitCoder to the exit code, so the library must not exit the process.
	cli.OsExiter = func(int) {}
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func (r *runner) newApp() *cli.App {
	app := cli.NewApp()
	app.Name = name
	app.Usage = "evaluate Reverse Polish Notation integer expressions"
	app.UsageText = name + " [options] [expression ...]\n\n" +
		"   Evaluates each expression, or each line of standard input when none is given."
	app.HideVersion = true
	app.Writer = r.outStream
	app.ErrWriter = r.errStream
	app.Flags = []cli.Flag{
		configFlag,
		logLevelFlag,
		allowLeftoverFlag,
		fmtFlag,
		fmtBreakFlag,
		batchFlag,
		yamlFlag,
		colorFlag,
		noColorFlag,
	}
	app.OnUsageError = func(ctx *cli.Context, err error, isSubcommand bool) error {
		fmt.Fprintf(r.errStream, "%s: %s\n", name, err)
		return cli.NewExitError("", exitCodeFlagParseErr)
	}
	app.Action = r.action
	return app
}

// run executes the command with args (without the program name) and returns
// the process exit code.
func (r *runner) run(args []string) int {
	err := r.newApp().Run(append([]string{name}, args...))
	if err == nil {
		return exitCodeOK
	}
	var coder cli.ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	r.printError(err)
	return exitCodeUsageErr
}

func (r *runner) action(ctx *cli.Context) error {
	if err := r.configure(ctx); err != nil {
		r.printError(err)
		return cli.NewExitError("", exitCodeUsageErr)
	}

	var exitCode int
	switch {
	case ctx.String(batchFlag.Name) != "":
		if ctx.NArg() > 0 {
			r.printError(errors.New("--batch does not accept expressions"))
			return cli.NewExitError("", exitCodeUsageErr)
		}
		exitCode = r.runBatch(ctx.String(batchFlag.Name))
	case ctx.Bool(fmtFlag.Name):
		cfg := rpnfmt.Cfg{Check: true}
		if ops := ctx.String(fmtBreakFlag.Name); ops != "" {
			for _, op := range strings.Split(ops, ",") {
				if op = strings.TrimSpace(op); op != "" {
					cfg.Ops = append(cfg.Ops, op)
				}
			}
		}
		if _, err := rpnfmt.ValidateConfig(cfg); err != nil {
			r.printError(err)
			return cli.NewExitError("", exitCodeUsageErr)
		}
		exitCode = r.forEach(ctx.Args(), func(expr string) error {
			s, err := rpnfmt.Format(expr, cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(r.outStream, s)
			return nil
		})
	case r.config.Output == config.OutputYAML:
		exitCode = r.runYAML(ctx.Args())
	default:
		exitCode = r.forEach(ctx.Args(), func(expr string) error {
			v, err := rpn.EvaluateWithOptions(expr, r.options)
			if err != nil {
				return err
			}
			fmt.Fprintln(r.outStream, v)
			return nil
		})
	}
	if exitCode != exitCodeOK {
		return cli.NewExitError("", exitCode)
	}
	return nil
}

func (r *runner) configure(ctx *cli.Context) error {
	cfg := config.Default()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if level := ctx.String(logLevelFlag.Name); level != "" {
		cfg.LogLevel = level
	}
	if ctx.Bool(allowLeftoverFlag.Name) {
		cfg.AllowLeftover = true
	}
	if ctx.Bool(yamlFlag.Name) {
		cfg.Output = config.OutputYAML
	}
	if ctx.Bool(colorFlag.Name) {
		cfg.Color = config.ColorAlways
	}
	if ctx.Bool(noColorFlag.Name) {
		cfg.Color = config.ColorNever
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.config = cfg
	r.options = cfg.Options(cfg.Logger(r.errStream))
	switch cfg.Color {
	case config.ColorAlways:
		r.color = true
	case config.ColorNever:
		r.color = false
	default:
		r.color = r.isTTY && os.Getenv("NO_COLOR") == ""
	}
	return nil
}

// forEach applies f to every argument, or to every non-blank input line when
// there are no arguments. Failures are reported and do not stop the loop.
func (r *runner) forEach(args []string, f func(string) error) int {
	exitCode := exitCodeOK
	handle := func(expr string) {
		if err := f(expr); err != nil {
			r.printEvalError(expr, err)
			exitCode = exitCodeEvalErr
		}
	}
	if len(args) > 0 {
		for _, expr := range args {
			handle(expr)
		}
		return exitCode
	}

	s := bufio.NewScanner(r.inStream)
	for s.Scan() {
		if line := s.Text(); strings.TrimSpace(line) != "" {
			handle(line)
		}
	}
	if err := s.Err(); err != nil {
		r.printError(err)
		return exitCodeIOErr
	}
	return exitCode
}

func (r *runner) runYAML(args []string) int {
	var entries []outputEntry
	exitCode := r.forEach(args, func(expr string) error {
		v, err := rpn.EvaluateWithOptions(expr, r.options)
		entry := outputEntry{Expr: expr}
		if err != nil {
			entry.Error = err.Error()
		} else {
			entry.Value = &v
		}
		entries = append(entries, entry)
		return err
	})
	if exitCode == exitCodeIOErr {
		return exitCode
	}

	enc := yaml.NewEncoder(r.outStream)
	enc.SetIndent(2)
	if err := enc.Encode(entries); err != nil {
		r.printError(err)
		return exitCodeIOErr
	}
	if err := enc.Close(); err != nil {
		r.printError(err)
		return exitCodeIOErr
	}
	return exitCode
}

func (r *runner) runBatch(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		r.printError(err)
		return exitCodeIOErr
	}
	b, err := batch.ParseBatch(data)
	if err != nil {
		r.printError(err)
		return exitCodeUsageErr
	}
	results := batch.Run(b, r.options)
	if err := batch.RenderTable(r.outStream, results); err != nil {
		r.printError(err)
		return exitCodeIOErr
	}
	if batch.Failed(results) > 0 {
		return exitCodeEvalErr
	}
	return exitCodeOK
}

// printError prints err after the command name. Evaluation errors already
// carry that name as their prefix, so it is not repeated.
func (r *runner) printError(err error) {
	msg := strings.TrimPrefix(err.Error(), name+": ")
	r.printColored(fmt.Sprintf("%s: %s\n", name, msg))
}

func (r *runner) printEvalError(expr string, err error) {
	var e *rpn.EvalError
	if errors.As(err, &e) && r.isTTY {
		r.printColored(fmt.Sprintf("%s: %q\n%s", name, expr, batch.FormatEvalError(expr, err)))
		return
	}
	r.printError(err)
}

func (r *runner) printColored(msg string) {
	if r.color {
		msg = "\x1b[31m" + strings.TrimSuffix(msg, "\n") + "\x1b[0m\n"
	}
	fmt.Fprint(r.errStream, msg)
}
