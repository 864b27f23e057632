package main

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"

	"github.com/seqsense/scaffoldmapper/scaffold"
)

func TestConsole_Run(t *testing.T) {
	cmd, _ := newLoadedContext(t)
	c := &console{cmd: cmd}

	res, err := c.Run("rotate yaw 90")
	if err != nil {
		t.Fatal(err)
	}
	expected := "yaw 90.000\npitch 0.000\nroll 0.000\nX 0.000\nY 0.000\nZ 0.000"
	if res != expected {
		t.Errorf("Expected:\n%s\ngot:\n%s", expected, res)
	}

	if _, err := c.Run("translate X 5 2"); err != nil {
		t.Fatal(err)
	}
	res, err = c.Run("settings")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res, "X 10.000") {
		t.Errorf("X must be 10, got:\n%s", res)
	}

	res, err = c.Run("undo")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res, "X 0.000") || !strings.HasPrefix(res, "yaw 90.000") {
		t.Errorf("Translation must be undone, got:\n%s", res)
	}
	if _, err := c.Run("translate X 5 2"); err != nil {
		t.Fatal(err)
	}

	res, err = c.Run("reset")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(res, "yaw 0.000") {
		t.Errorf("Settings must be reset, got:\n%s", res)
	}

	res, err = c.Run("help")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(res, "rotate") || !strings.Contains(res, "translate") {
		t.Errorf("Help must list commands, got:\n%s", res)
	}
}

func TestConsole_Errors(t *testing.T) {
	cmd, _ := newLoadedContext(t)
	c := &console{cmd: cmd}

	testCases := map[string]struct {
		line string
		err  error
	}{
		"UnknownCommand":  {"spin 1", errInvalidCommand},
		"RotateArgs":      {"rotate yaw", errArgumentNumber},
		"TranslateArgs":   {"translate X 1 2 3", errArgumentNumber},
		"ResetArgs":       {"reset now", errArgumentNumber},
		"SaveArgs":        {"save", errArgumentNumber},
		"UnknownAxis":     {"rotate spin 1", scaffold.ErrUnknownAxis},
		"InvalidNumber":   {"rotate yaw ninety", strconv.ErrSyntax},
		"PointSizeNoData": {"point_size", nil},
		"NothingToUndo":   {"undo", errNothingToUndo},
	}
	for name, tt := range testCases {
		t.Run(name, func(t *testing.T) {
			_, err := c.Run(tt.line)
			if err == nil {
				t.Fatal("Expected error")
			}
			if tt.err != nil && !errors.Is(err, tt.err) {
				t.Errorf("Expected %v, got %v", tt.err, err)
			}
		})
	}

	if res, err := c.Run("   "); res != "" || err != nil {
		t.Errorf("Empty line must be ignored, got %q, %v", res, err)
	}
}

func TestConsole_Serve(t *testing.T) {
	cmd, _ := newLoadedContext(t)
	c := &console{cmd: cmd}

	in := strings.NewReader("rotate roll 45\nbogus\n\nsettings\n")
	var out bytes.Buffer
	if err := c.Serve(context.Background(), in, &out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 13 {
		t.Fatalf("Expected 13 lines, got %d:\n%s", len(lines), out.String())
	}
	if lines[6] != "error: invalid command" {
		t.Errorf("Expected error line, got %q", lines[6])
	}
	if lines[9] != "roll 45.000" {
		t.Errorf("Expected roll 45.000, got %q", lines[9])
	}
}
