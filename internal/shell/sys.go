package shell

import (
	"fmt"
	"io"
)

func (s *Shell) versionCommand(args string, w io.Writer) error {
	info := s.target.Info()
	fmt.Fprintf(w, "Build version: %s, Build date: %s, MCU: %s, System Clock: %dMHz\n",
		info.Build, info.BuildDate, info.MCU, info.ClockMHz)
	return nil
}

func (s *Shell) resetCommand(args string, w io.Writer) error {
	if err := s.target.Reset(); err != nil {
		fmt.Fprintf(w, "reset: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "Rebooting target...\n")
	return nil
}

func (s *Shell) dfuCommand(args string, w io.Writer) error {
	if err := s.target.EnterDFU(); err != nil {
		fmt.Fprintf(w, "dfu: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "Entering boot mode...\n")
	return nil
}

func (s *Shell) breakCommand(args string, w io.Writer) error {
	if err := s.target.Break(); err != nil {
		fmt.Fprintf(w, "break: %v\n", err)
		return nil
	}
	fmt.Fprintf(w, "Entering debug mode...\n")
	return nil
}

func (s *Shell) helpCommand(args string, w io.Writer) error {
	fmt.Fprintf(w, "Commands:\n")
	fmt.Fprintf(w, "version\n")
	fmt.Fprintf(w, "mem [-v]\n")
	fmt.Fprintf(w, "ls [folder]\n")
	fmt.Fprintf(w, "cd folder\n")
	fmt.Fprintf(w, "pwd\n")
	fmt.Fprintf(w, "cat file [limit]\n")
	fmt.Fprintf(w, "rm file\n")
	fmt.Fprintf(w, "reset - reboot the target\n")
	fmt.Fprintf(w, "dfu - enter dfu boot loader\n")
	fmt.Fprintf(w, "break - break into debugger\n")
	fmt.Fprintf(w, "config-get <setting>\n")
	fmt.Fprintf(w, "config-set <setting> <value>\n")
	fmt.Fprintf(w, "get temp [bed|hotend]\n")
	fmt.Fprintf(w, "set_temp bed|hotend 185\n")
	fmt.Fprintf(w, "get pos\n")
	return nil
}
