package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/peterh/liner"

	"github.com/aretw0/camnotes/pkg/core"
)

var errAborted = errors.New("aborted")

// lineReader is the part of *liner.State the prompts use.
type lineReader interface {
	Prompt(prompt string) (string, error)
	PromptWithSuggestion(prompt, text string, pos int) (string, error)
	Close() error
}

// newTerminal puts the terminal into raw mode; closeTerminal restores it.
var newTerminal = func() lineReader {
	l := liner.NewLiner()
	l.SetCtrlCAborts(true)
	return l
}

var term lineReader

func terminal() lineReader {
	if term == nil {
		term = newTerminal()
	}
	return term
}

func closeTerminal() {
	if term != nil {
		_ = term.Close()
		term = nil
	}
}

// promptCaption asks for a caption, pre-filled with initial.
func promptCaption(initial string) (string, error) {
	line, err := terminal().PromptWithSuggestion("caption> ", initial, -1)
	if err == liner.ErrPromptAborted {
		return "", errAborted
	}
	return line, err
}

// confirmPermission is the device.Prompter used by the CLI.
func confirmPermission(ctx context.Context, kind core.PermissionKind) (bool, error) {
	answer, err := terminal().Prompt(fmt.Sprintf("Allow camnotes to use the %s? (yes/no): ", kind))
	if err == liner.ErrPromptAborted {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
