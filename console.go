package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

type console struct {
	cmd *commandContext
}

var errArgumentNumber = errors.New("invalid number of arguments")
var errInvalidCommand = errors.New("invalid command")

var consoleCommands = map[string]func(cmd *commandContext, args []string) ([]string, error){
	"rotate": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 2 {
			return nil, errArgumentNumber
		}
		v, err := parseFloats(args[1:])
		if err != nil {
			return nil, err
		}
		if err := cmd.Rotate(args[0], v[0]); err != nil {
			return nil, err
		}
		return settingsLines(cmd), nil
	},
	"translate": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 2 && len(args) != 3 {
			return nil, errArgumentNumber
		}
		v, err := parseFloats(args[1:])
		if err != nil {
			return nil, err
		}
		var rate *float64
		if len(v) == 2 {
			rate = &v[1]
		}
		if err := cmd.Translate(args[0], v[0], rate); err != nil {
			return nil, err
		}
		return settingsLines(cmd), nil
	},
	"reset": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if err := cmd.Reset(); err != nil {
			return nil, err
		}
		return settingsLines(cmd), nil
	},
	"undo": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		if err := cmd.Undo(); err != nil {
			return nil, err
		}
		return settingsLines(cmd), nil
	},
	"settings": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		return settingsLines(cmd), nil
	},
	"point_size": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 0 {
			return nil, errArgumentNumber
		}
		s, err := cmd.PointSize()
		if err != nil {
			return nil, err
		}
		return []string{formatFloat(s)}, nil
	},
	"load_scaffold": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, cmd.LoadScaffold(args[0])
	},
	"load_data": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, cmd.LoadData(args[0])
	},
	"save": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, cmd.Save(args[0])
	},
	"export": func(cmd *commandContext, args []string) ([]string, error) {
		if len(args) != 1 {
			return nil, errArgumentNumber
		}
		return nil, cmd.ExportGLTF(args[0])
	},
}

func init() {
	consoleCommands["help"] = func(cmd *commandContext, args []string) ([]string, error) {
		names := make([]string, 0, len(consoleCommands))
		for name := range consoleCommands {
			names = append(names, name)
		}
		sort.Strings(names)
		return names, nil
	}
}

func parseFloats(args []string) ([]float64, error) {
	out := make([]float64, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func settingsLines(cmd *commandContext) []string {
	s, _ := cmd.Settings()
	return []string{
		"yaw " + formatFloat(s.Yaw),
		"pitch " + formatFloat(s.Pitch),
		"roll " + formatFloat(s.Roll),
		"X " + formatFloat(s.X),
		"Y " + formatFloat(s.Y),
		"Z " + formatFloat(s.Z),
	}
}

func (c *console) Run(line string) (string, error) {
	args := strings.Fields(line)
	if len(args) == 0 {
		return "", nil
	}
	fn, ok := consoleCommands[args[0]]
	if !ok {
		return "", errInvalidCommand
	}
	res, err := fn(c.cmd, args[1:])
	if err != nil {
		return "", err
	}
	return strings.Join(res, "\n"), nil
}
