package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// Prompt seams; tests swap them for canned answers.
var (
	readPassword  = term.ReadPassword
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// GetSimpleText writes prompt followed by a "> " marker and returns the next
// line from reader with surrounding blanks removed. A last line without a
// newline is still accepted.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n> ", prompt); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo. The caller
// owns the returned buffer and should wipe it.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// getNumber prompts until a line is read and parses it as a base-10 integer.
func getNumber(reader *bufio.Reader, prompt string, w io.Writer) (int64, error) {
	text, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return 0, err
	}
	if text == "" {
		return 0, fmt.Errorf("%s is required", strings.ToLower(prompt))
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", text)
	}
	return n, nil
}

// getAirportCode reads an airport code and upper-cases it. Empty input is
// returned as "" so callers can treat it as "any airport".
func getAirportCode(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	code, err := getSimpleText(reader, prompt, w)
	if err != nil {
		return "", err
	}
	return strings.ToUpper(code), nil
}
