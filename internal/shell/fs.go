package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// lsCommand lists the files in the given (or current) directory, one
// per line. Names are lower-cased, matching the 8.3 SD filesystem the
// device console lists.
func (s *Shell) lsCommand(args string, w io.Writer) error {
	folder := s.absoluteFromRelative(args)
	entries, err := os.ReadDir(s.hostPath(folder))
	if err != nil {
		fmt.Fprintf(w, "Could not open directory %s\n", folder)
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s\n", strings.ToLower(e.Name()))
	}
	return nil
}

func (s *Shell) cdCommand(args string, w io.Writer) error {
	folder := s.absoluteFromRelative(args)
	if !strings.HasSuffix(folder, "/") {
		folder += "/"
	}
	fi, err := os.Stat(s.hostPath(folder))
	if err != nil || !fi.IsDir() {
		fmt.Fprintf(w, "Could not open directory %s\n", folder)
		return nil
	}
	s.cwd = folder
	return nil
}

func (s *Shell) pwdCommand(args string, w io.Writer) error {
	fmt.Fprintf(w, "%s\n", s.cwd)
	return nil
}

// catCommand prints a file's contents; a second argument limits the
// number of lines printed.
func (s *Shell) catCommand(args string, w io.Writer) error {
	name, rest := shiftParam(args)
	filename := s.absoluteFromRelative(name)

	limit := -1
	if limitParam, _ := shiftParam(rest); limitParam != "" {
		if n, err := strconv.Atoi(limitParam); err == nil {
			limit = n
		}
	}

	f, err := os.Open(s.hostPath(filename))
	if err != nil {
		fmt.Fprintf(w, "File not found: %s\n", filename)
		return nil
	}
	defer f.Close()

	// read line by line without a line-length ceiling; device files
	// can carry arbitrarily long G-code or log lines
	r := bufio.NewReader(f)
	lines := 0
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			if !strings.HasSuffix(line, "\n") {
				line += "\n"
			}
			if _, err := io.WriteString(w, line); err != nil {
				return err
			}
			lines++
			if lines == limit {
				return nil
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}

func (s *Shell) rmCommand(args string, w io.Writer) error {
	name, _ := shiftParam(args)
	filename := s.absoluteFromRelative(name)
	if err := os.Remove(s.hostPath(filename)); err != nil {
		fmt.Fprintf(w, "Could not delete %s\n", filename)
	}
	return nil
}
