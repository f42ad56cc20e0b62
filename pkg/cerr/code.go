package cerr

import "log/slog"

type Code int

const (
	OK              = Code(0)
	Canceled        = Code(1)
	Unknown         = Code(2)
	InvalidArgument = Code(3)
	NotFound        = Code(5)
	Internal        = Code(13)
	DataLoss        = Code(15)
)

func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case Canceled:
		return "canceled"
	case Unknown:
		return "unknown"
	case InvalidArgument:
		return "invalid_argument"
	case NotFound:
		return "not_found"
	case Internal:
		return "internal"
	case DataLoss:
		return "data_loss"
	default:
		return "unknown"
	}
}

// Level is the slog level an error of this code is logged at.
func (c Code) Level() slog.Level {
	switch c {
	case OK, Canceled:
		return slog.LevelInfo
	case InvalidArgument, NotFound:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// ExitCode is the process exit status for an error of this code.
func (c Code) ExitCode() int {
	switch c {
	case OK, Canceled:
		return 0
	default:
		return 1
	}
}
