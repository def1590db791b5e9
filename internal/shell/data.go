package shell

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Subcommands of get, keyed like the command table.
var (
	getTempChecksum = Checksum("temp")
	getPosChecksum  = Checksum("pos")
)

// getCommand reads published data values: "get temp [name]" and
// "get pos".
func (s *Shell) getCommand(args string, w io.Writer) error {
	what, rest := shiftParam(args)

	switch Checksum(what) {
	case getTempChecksum:
		name, _ := shiftParam(rest)
		current, ok := s.tempValue(name, "CURRENT")
		if !ok {
			fmt.Fprintf(w, "%s is not a known temperature device\n", name)
			return nil
		}
		targetTemp, _ := s.tempValue(name, "TARGET")
		pwm, _ := s.cfg.Get(tempKey(name, "PWM"))
		pwmVal, _ := strconv.Atoi(pwm)
		fmt.Fprintf(w, "%s temp: %f/%f @%d\n", name, current, targetTemp, pwmVal)

	case getPosChecksum:
		x, okX := s.posValue("X")
		y, okY := s.posValue("Y")
		z, okZ := s.posValue("Z")
		if !okX || !okY || !okZ {
			fmt.Fprintf(w, "get pos command failed\n")
			return nil
		}
		fmt.Fprintf(w, "Position X: %f, Y: %f, Z: %f\n", x, y, z)
	}
	return nil
}

// setTempCommand sets a temperature device's target value.
func (s *Shell) setTempCommand(args string, w io.Writer) error {
	name, rest := shiftParam(args)
	temp, _ := shiftParam(rest)

	t := 0.0
	if temp != "" {
		t, _ = strconv.ParseFloat(temp, 64)
	}

	if _, ok := s.tempValue(name, "CURRENT"); !ok {
		fmt.Fprintf(w, "%s is not a known temperature device\n", name)
		return nil
	}
	if err := s.cfg.Set(tempKey(name, "TARGET"), strconv.FormatFloat(t, 'f', -1, 64)); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s temp set to: %3.1f\n", name, t)
	return nil
}

func (s *Shell) configGetCommand(args string, w io.Writer) error {
	key, _ := shiftParam(args)
	v, ok := s.cfg.Get(key)
	if !ok {
		fmt.Fprintf(w, "%s is not set\n", key)
		return nil
	}
	fmt.Fprintf(w, "%s: %s\n", key, v)
	return nil
}

func (s *Shell) configSetCommand(args string, w io.Writer) error {
	key, rest := shiftParam(args)
	value, _ := shiftParam(rest)
	if err := s.cfg.Set(key, value); err != nil {
		return err
	}
	fmt.Fprintf(w, "%s set to %s\n", key, value)
	return nil
}

func tempKey(device, field string) string {
	return "TEMP_" + strings.ToUpper(device) + "_" + field
}

func (s *Shell) tempValue(device, field string) (float64, bool) {
	raw, ok := s.cfg.Get(tempKey(device, field))
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (s *Shell) posValue(axis string) (float64, bool) {
	raw, ok := s.cfg.Get("POS_" + axis)
	if !ok {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
