// Package commands parses the binary's maintenance subcommands. Without a
// subcommand the binary runs the interactive UI; with one it performs a
// one-shot codec operation against the store and exits.
package commands

import (
	"fmt"
	"strings"
)

type Type string

const (
	TypeExportICS Type = "export-ics"
	TypeImportICS Type = "import-ics"
	TypeBackup    Type = "backup"
	TypeRestore   Type = "restore"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// PathArgs is the single argument every maintenance subcommand takes: the
// file it reads or writes.
type PathArgs struct {
	Path string
}

type Command struct {
	Type Type
	Raw  string
	Path *PathArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeExportICS, TypeImportICS, TypeBackup, TypeRestore:
		return parsePath(Type(head), input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parsePath(t Type, raw string, args []string) (Command, error) {
	if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires exactly one file path", t)}
	}
	return Command{Type: t, Raw: raw, Path: &PathArgs{Path: args[0]}}, nil
}
