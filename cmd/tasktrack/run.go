package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/oklog/ulid/v2"

	"github.com/kazz187/tasktrack/internal/config"
	"github.com/kazz187/tasktrack/internal/task"
	"github.com/kazz187/tasktrack/internal/task/repositoryimpl"
	"github.com/kazz187/tasktrack/pkg/cerr"
	"github.com/kazz187/tasktrack/pkg/clog"
	"github.com/kazz187/tasktrack/pkg/panicerr"
	"github.com/kazz187/tasktrack/pkg/storage"
)

func execute(ctx context.Context, opts *options, stdout, stderr io.Writer) int {
	env, err := config.LoadEnv()
	if err != nil {
		return report(ctx, stderr, cerr.NewError(cerr.InvalidArgument, "invalid configuration", err))
	}
	setupLogger(env, stderr)
	applyOverrides(env, opts)

	ctx = clog.ContextWithSlog(ctx)
	clog.AddAttributes(ctx, map[string]any{
		"run_id":    ulid.Make().String(),
		"operation": opts.operation,
	})

	err = panicerr.SafeContext(func(ctx context.Context) error {
		return dispatch(ctx, env, opts, stdout)
	})(ctx)
	if err != nil {
		return report(ctx, stderr, err)
	}
	return 0
}

func setupLogger(env *config.Env, stderr io.Writer) {
	level := env.SlogLevel()
	var handler slog.Handler
	if env.Env == "local" {
		handler = clog.NewTextHandler(stderr, clog.WithLevel(level), clog.WithColor(!color.NoColor))
	} else {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	}
	slog.SetDefault(slog.New(clog.NewAttributesHandler(handler)))
}

func applyOverrides(env *config.Env, opts *options) {
	if opts.file != "" {
		env.File = opts.file
	}
	if opts.strictSet {
		env.Strict = opts.strict
	}
	if opts.stableIDsSet {
		env.StableIDs = opts.stableIDs
	}
	if opts.colorSet {
		env.Color = opts.color
	}
}

// validate rejects missing or invalid arguments before storage is touched.
func validate(opts *options) error {
	switch opts.operation {
	case opAdd:
		if opts.description == "" {
			return cerr.NewError(cerr.InvalidArgument, "description missing, --description is required for add", nil)
		}
	case opRemove, opComplete:
		if !opts.idSet {
			return cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("task id missing, --id is required for %s", opts.operation), nil)
		}
		if opts.id < 1 {
			return cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("invalid task id %d, ids start at 1", opts.id), nil)
		}
	}
	if opts.watch && opts.operation != opList {
		return cerr.NewError(cerr.InvalidArgument, "--watch is only supported for list", nil)
	}
	return nil
}

func dispatch(ctx context.Context, env *config.Env, opts *options, stdout io.Writer) error {
	if err := validate(opts); err != nil {
		return err
	}
	filter, err := task.ParseFilter(opts.filter)
	if err != nil {
		return err
	}
	order, err := task.ParseOrder(opts.order)
	if err != nil {
		return err
	}

	path, err := env.TaskFile()
	if err != nil {
		return cerr.NewError(cerr.InvalidArgument, "cannot resolve task file", err)
	}
	store, err := newStorage(ctx, env, path)
	if err != nil {
		return err
	}
	clog.AddAttribute(ctx, "path", path)

	repo := repositoryimpl.NewFileRepository(store, filepath.Base(path), repositoryimpl.WithStableIDs(env.StableIDs))
	svc := task.NewService(repo, task.WithStrict(env.Strict))

	switch opts.operation {
	case opAdd:
		_, err = svc.Add(ctx, opts.description)
		return err
	case opRemove:
		_, err = svc.Remove(ctx, opts.id)
		return err
	case opComplete:
		_, err = svc.Complete(ctx, opts.id)
		return err
	case opList:
		l := &lister{
			svc:      svc,
			filter:   filter,
			order:    order,
			renderer: task.Renderer{Header: opts.header, Color: env.Color},
			w:        stdout,
		}
		if opts.watch {
			local, ok := store.(*storage.LocalStorage)
			if !ok {
				return cerr.NewError(cerr.InvalidArgument, "--watch requires local storage", nil)
			}
			return l.watch(ctx, local.Resolve(filepath.Base(path)))
		}
		return l.list(ctx)
	default:
		return cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown operation %q", opts.operation), nil)
	}
}

func newStorage(ctx context.Context, env *config.Env, path string) (storage.Storage, error) {
	switch env.StorageEnv.Type {
	case "s3":
		s, err := storage.NewS3Storage(ctx, env.S3Bucket, env.S3Prefix, env.S3Region)
		if err != nil {
			return nil, cerr.NewError(cerr.InvalidArgument, "failed to create S3 storage", err)
		}
		return s, nil
	case "local", "":
		s, err := storage.NewLocalStorage(filepath.Dir(path))
		if err != nil {
			return nil, cerr.NewError(cerr.Internal, "failed to create local storage", err)
		}
		return s, nil
	default:
		return nil, cerr.NewError(cerr.InvalidArgument, fmt.Sprintf("unknown storage type %q", env.StorageEnv.Type), nil)
	}
}

// report prints the diagnostic for err and returns the exit code.
func report(ctx context.Context, stderr io.Writer, err error) int {
	e := cerr.Normalize(err)
	if e.Code == cerr.Canceled {
		return e.Code.ExitCode()
	}
	clog.AddError(ctx, e)
	if e.Stack != "" {
		clog.AddStack(ctx, e.Stack)
	}
	slog.DebugContext(ctx, "operation failed", "code", e.Code.String())
	fmt.Fprintf(stderr, "tasktrack: %s\n", e.Error())
	return e.Code.ExitCode()
}
