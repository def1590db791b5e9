// Package shell implements the diagnostic console: a line-oriented
// interpreter that dispatches recognized commands to handlers for
// filesystem, configuration, and memory-introspection actions against
// a target. It reproduces the embedded controller's on-board console,
// so output formats follow the firmware's literally.
package shell

import (
	"errors"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/embtools/mcudiag/internal/config"
	"github.com/embtools/mcudiag/internal/target"
)

// ErrUnknownCommand is returned by Dispatch for lines whose first
// token matches no table entry.
var ErrUnknownCommand = errors.New("unknown command")

type handler func(args string, w io.Writer) error

type command struct {
	checksum uint16
	fn       handler
}

// Shell holds the console's only persistent state: the current path
// plus its collaborators. Each command invocation is otherwise fresh;
// in particular the heap walk keeps nothing between runs.
type Shell struct {
	target target.Target
	cfg    *config.Store
	root   string // host directory mounted as the target's filesystem
	cwd    string // target-style current path, trailing slash kept

	commands []command
}

// New returns a shell for t whose filesystem commands operate under
// root and whose configuration commands read and write cfg.
func New(t target.Target, cfg *config.Store, root string) *Shell {
	s := &Shell{
		target: t,
		cfg:    cfg,
		root:   root,
		cwd:    "/",
	}
	s.commands = []command{
		{Checksum("ls"), s.lsCommand},
		{Checksum("cd"), s.cdCommand},
		{Checksum("pwd"), s.pwdCommand},
		{Checksum("cat"), s.catCommand},
		{Checksum("rm"), s.rmCommand},
		{Checksum("reset"), s.resetCommand},
		{Checksum("dfu"), s.dfuCommand},
		{Checksum("break"), s.breakCommand},
		{Checksum("help"), s.helpCommand},
		{Checksum("version"), s.versionCommand},
		{Checksum("mem"), s.memCommand},
		{Checksum("get"), s.getCommand},
		{Checksum("set_temp"), s.setTempCommand},
		{Checksum("config-get"), s.configGetCommand},
		{Checksum("config-set"), s.configSetCommand},
	}
	return s
}

// Dispatch interprets one console line, writing any output to w.
// Blank lines and comment lines (leading ';') are ignored. The command
// table is scanned linearly on the Fletcher-16 checksum of the first
// token, like the firmware's.
func (s *Shell) Dispatch(line string, w io.Writer) error {
	line = strings.TrimRight(line, "\r\n")
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, ";") {
		return nil
	}

	name, args := shiftParam(line)
	cs := Checksum(name)
	for _, c := range s.commands {
		if c.checksum == cs {
			return c.fn(args, w)
		}
	}
	return ErrUnknownCommand
}

// shiftParam splits off the first space-separated token of params,
// returning it and the remainder.
func shiftParam(params string) (string, string) {
	params = strings.TrimSpace(params)
	if i := strings.IndexByte(params, ' '); i >= 0 {
		return params[:i], strings.TrimSpace(params[i+1:])
	}
	return params, ""
}

// absoluteFromRelative converts a path argument into an absolute
// target path: a leading '/' is taken verbatim, a leading '.' keeps
// the current path, anything else is appended to it.
func (s *Shell) absoluteFromRelative(p string) string {
	switch {
	case p == "":
		return s.cwd
	case p[0] == '/':
		return p
	case p[0] == '.':
		return s.cwd
	default:
		return s.cwd + p
	}
}

// hostPath maps an absolute target path onto the sandbox root.
// Cleaning the target path first pins ".." at "/", so arguments cannot
// escape the root.
func (s *Shell) hostPath(targetPath string) string {
	clean := path.Clean("/" + targetPath)
	return filepath.Join(s.root, filepath.FromSlash(strings.TrimPrefix(clean, "/")))
}
