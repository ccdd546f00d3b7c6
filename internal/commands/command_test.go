package commands

import (
	"errors"
	"testing"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
		pathWant string
	}{
		{"export-ics calendar.ics", TypeExportICS, "calendar.ics"},
		{"import-ics /tmp/shared.ics", TypeImportICS, "/tmp/shared.ics"},
		{"backup organizer.json", TypeBackup, "organizer.json"},
		{"restore organizer.json", TypeRestore, "organizer.json"},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
		if cmd.Path == nil || cmd.Path.Path != tc.pathWant {
			t.Fatalf("parse %q path = %+v, want %q", tc.in, cmd.Path, tc.pathWant)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("vacuum now")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestParseMissingPath(t *testing.T) {
	_, err := Parse("backup")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
		t.Fatalf("expected invalid argument error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("export-ics calendar.ics")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		ExportICS: func(a PathArgs) (Result, error) {
			called = true
			if a.Path != "calendar.ics" {
				t.Fatalf("unexpected path: %q", a.Path)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("restore organizer.json")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
