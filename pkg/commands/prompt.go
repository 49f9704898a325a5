package commands

import (
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"tableflip.dev/bizdesk/pkg/auth"
)

// NopCloser wraps a writer for promptui, which wants a WriteCloser.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

func promptRole(in io.Reader, out io.Writer) (string, error) {
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ . | bold }}",
		Inactive: "   {{ . }}",
		Selected: "Role: {{ . | green }}",
	}
	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Sign in as",
		Items:     auth.AllRoles,
		Templates: templates,
		Stdin:     ioutil.NopCloser(in),
		Stdout:    NopCloser(out),
	}
	_, role, err := prompt.Run()
	return role, err
}

func promptText(in io.Reader, out io.Writer, label string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:    label,
		Validate: validate,
		Stdin:    ioutil.NopCloser(in),
		Stdout:   NopCloser(out),
	}
	v, err := prompt.Run()
	return strings.TrimSpace(v), err
}

func notBlank(label string) promptui.ValidateFunc {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.Errorf("%s is required", label)
		}
		return nil
	}
}

// promptPassword reads a password without echo when stdin is a terminal.
func promptPassword(out io.Writer, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.Errorf("%s is required, pass it with a flag when not on a terminal", strings.ToLower(label))
	}
	_, _ = fmt.Fprintf(out, "%s: ", label)
	b, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(out)
	if err != nil {
		return "", errors.Wrap(err, "reading password")
	}
	return string(b), nil
}
