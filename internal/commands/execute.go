package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	ExportICS func(PathArgs) (Result, error)
	ImportICS func(PathArgs) (Result, error)
	Backup    func(PathArgs) (Result, error)
	Restore   func(PathArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeExportICS:
		if handlers.ExportICS == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "export-ics handler not configured"}
		}
		return handlers.ExportICS(*cmd.Path)
	case TypeImportICS:
		if handlers.ImportICS == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "import-ics handler not configured"}
		}
		return handlers.ImportICS(*cmd.Path)
	case TypeBackup:
		if handlers.Backup == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "backup handler not configured"}
		}
		return handlers.Backup(*cmd.Path)
	case TypeRestore:
		if handlers.Restore == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "restore handler not configured"}
		}
		return handlers.Restore(*cmd.Path)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
