package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kingpin/v2"

	"github.com/kazz187/tasktrack/internal/task"
)

const (
	opAdd      = "add"
	opRemove   = "remove"
	opComplete = "complete"
	opList     = "list"
)

// options holds the parsed command line. The *Set fields record whether a flag
// was given explicitly so it can override the environment.
type options struct {
	operation   string
	id          int
	idSet       bool
	description string
	filter      string
	order       string
	file        string
	header      bool
	watch       bool

	strict       bool
	strictSet    bool
	stableIDs    bool
	stableIDsSet bool
	color        bool
	colorSet     bool
}

func newApp(opts *options) *kingpin.Application {
	app := kingpin.New("tasktrack", "Record, complete, remove and list short text tasks")

	app.Flag("operation", "Operation: add, remove, complete, list").Short('o').Required().
		EnumVar(&opts.operation, opAdd, opRemove, opComplete, opList)
	app.Flag("id", "ID of the task to complete or remove").Short('i').
		IsSetByUser(&opts.idSet).IntVar(&opts.id)
	app.Flag("description", "Description of the task to add").Short('d').
		StringVar(&opts.description)
	app.Flag("filter", "Listing filter: none, pending, completed").Short('f').Default("none").
		EnumVar(&opts.filter, task.FilterNames...)
	app.Flag("json", "Path to the task file (default $HOME/todo.json or $TASKTRACK_FILE)").Short('j').
		StringVar(&opts.file)
	app.Flag("order", "Listing order: id, created").Default("id").
		EnumVar(&opts.order, task.OrderNames...)
	app.Flag("header", "Print a header above the listing").BoolVar(&opts.header)
	app.Flag("watch", "Keep listing and re-render whenever the task file changes").BoolVar(&opts.watch)
	app.Flag("strict", "Fail when removing a task that does not exist").
		IsSetByUser(&opts.strictSet).BoolVar(&opts.strict)
	app.Flag("stable-ids", "Persist task IDs instead of deriving them from position").
		IsSetByUser(&opts.stableIDsSet).BoolVar(&opts.stableIDs)
	app.Flag("color", "Colour completed tasks in listings").
		IsSetByUser(&opts.colorSet).BoolVar(&opts.color)

	return app
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options
	app := newApp(&opts)
	app.UsageWriter(stderr)
	app.ErrorWriter(stderr)
	if _, err := app.Parse(args); err != nil {
		app.Errorf("%s, try --help", err)
		return 1
	}

	return execute(ctx, &opts, stdout, stderr)
}
