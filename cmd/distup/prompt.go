package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/conn-castle/distup/internal/messages"
)

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// runConfirmForm renders a huh yes/no form; aborting the form declines.
func runConfirmForm(title string, value *bool) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithOutput(os.Stderr)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		*value = false
		return nil
	}
	return err
}

// promptContinue asks until the answer is y or n. End of input declines.
func promptContinue(in io.Reader, out io.Writer) (bool, error) {
	reader := bufio.NewReader(in)
	prompt := messages.UpdateConfirmPrompt
	for {
		if _, err := fmt.Fprint(out, prompt); err != nil {
			return false, err
		}
		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, fmt.Errorf(messages.UpdateConfirmReadFailedFmt, err)
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		if errors.Is(err, io.EOF) {
			if _, werr := fmt.Fprintln(out); werr != nil {
				return false, werr
			}
			return false, nil
		}
		prompt = messages.UpdateConfirmRetryPrompt
	}
}
