// Package cli implements the lineage command line tool.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/lineage"
	"github.com/viant/lineage/id"
	"github.com/viant/lineage/tracing"
	"gopkg.in/yaml.v3"
)

const usage = `usage: lineage [-config URL] <command> [arguments]

commands:
  random   [-kind task|object|driver|unique]     print a random identifier
  generate -driver HEX [-parent HEX] [-counter N] derive a task identifier
  finish   TASK                                   zero the index suffix of a task identifier
  return   TASK INDEX                             derive the INDEX-th return object identifier
  put      TASK INDEX                             derive the INDEX-th put object identifier
  decode   OBJECT                                 recover the creating task and index
`

// ErrUsage is returned for malformed command lines.
var ErrUsage = errors.New("invalid usage")

type command func(ctx context.Context, srv *lineage.Service, args []string) (interface{}, error)

var commands = map[string]command{
	"random":   random,
	"generate": generate,
	"finish":   finish,
	"return":   returnID,
	"put":      putID,
	"decode":   decode,
}

// Run executes the command line and writes the YAML result to out.
func Run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("lineage", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configURL := flags.String("config", "", "configuration URL (file://, mem://, s3:// ...)")
	if err := flags.Parse(args); err != nil {
		return fmt.Errorf("%w: %v\n%s", ErrUsage, err, usage)
	}
	if flags.NArg() == 0 {
		return fmt.Errorf("%w: missing command\n%s", ErrUsage, usage)
	}
	cmd, ok := commands[flags.Arg(0)]
	if !ok {
		return fmt.Errorf("%w: unknown command %q\n%s", ErrUsage, flags.Arg(0), usage)
	}

	config := lineage.DefaultConfig()
	if *configURL != "" {
		var err error
		if config, err = lineage.LoadConfig(ctx, afs.New(), *configURL); err != nil {
			return err
		}
	}
	srv, err := lineage.New(lineage.WithConfig(config))
	if err != nil {
		return err
	}

	ctx, span := tracing.StartSpan(ctx, "lineage.cli."+flags.Arg(0))
	result, err := cmd(ctx, srv, flags.Args()[1:])
	tracing.EndSpan(span, err)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(out)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

type identifier struct {
	Kind string `yaml:"kind"`
	ID   string `yaml:"id"`
}

func random(_ context.Context, _ *lineage.Service, args []string) (interface{}, error) {
	flags := flag.NewFlagSet("random", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	kind := flags.String("kind", "unique", "identifier kind")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	var ret fmt.Stringer
	switch strings.ToLower(*kind) {
	case "unique":
		ret = id.FromRandom[id.Unique]()
	case "task":
		ret = id.FromRandom[id.Task]()
	case "object":
		ret = id.FromRandom[id.Object]()
	case "driver":
		ret = id.FromRandom[id.Driver]()
	default:
		return nil, fmt.Errorf("%w: unsupported kind %q", ErrUsage, *kind)
	}
	return &identifier{Kind: strings.ToLower(*kind), ID: ret.String()}, nil
}

type generated struct {
	Driver   id.DriverID `yaml:"driver"`
	Parent   id.TaskID   `yaml:"parent"`
	Counter  uint32      `yaml:"counter"`
	Task     id.TaskID   `yaml:"task"`
	Finished id.TaskID   `yaml:"finished"`
}

func generate(ctx context.Context, srv *lineage.Service, args []string) (interface{}, error) {
	flags := flag.NewFlagSet("generate", flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	driverHex := flags.String("driver", "", "driver identifier (hex)")
	parentHex := flags.String("parent", "", "parent task identifier (hex), nil when empty")
	counter := flags.Uint("counter", 0, "parent task counter")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if *driverHex == "" {
		return nil, fmt.Errorf("%w: -driver is required", ErrUsage)
	}
	if uint64(*counter) > uint64(^uint32(0)) {
		return nil, fmt.Errorf("%w: counter %d out of range", ErrUsage, *counter)
	}
	driver, err := id.FromHex[id.Driver](*driverHex)
	if err != nil {
		return nil, err
	}
	var parent id.TaskID
	if *parentHex != "" {
		if parent, err = id.FromHex[id.Task](*parentHex); err != nil {
			return nil, err
		}
	}
	tracing.FromContext(ctx).WithIDs(map[string]fmt.Stringer{"lineage.driver": driver, "lineage.parent": parent})
	task := srv.GenerateTaskID(ctx, driver, parent, uint32(*counter))
	return &generated{Driver: driver, Parent: parent, Counter: uint32(*counter), Task: task, Finished: id.FinishTaskID(task)}, nil
}

func finish(_ context.Context, _ *lineage.Service, args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: finish expects TASK", ErrUsage)
	}
	task, err := id.FromHex[id.Task](args[0])
	if err != nil {
		return nil, err
	}
	return &identifier{Kind: "task", ID: id.FinishTaskID(task).Hex()}, nil
}

type derived struct {
	Task   id.TaskID   `yaml:"task"`
	Index  int64       `yaml:"index"`
	Object id.ObjectID `yaml:"object"`
}

func returnID(_ context.Context, _ *lineage.Service, args []string) (interface{}, error) {
	return derive("return", args, id.ComputeReturnID, 1)
}

func putID(_ context.Context, _ *lineage.Service, args []string) (interface{}, error) {
	return derive("put", args, id.ComputePutID, -1)
}

func derive(name string, args []string, fn func(id.TaskID, int64) (id.ObjectID, error), sign int64) (interface{}, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("%w: %s expects TASK INDEX", ErrUsage, name)
	}
	task, err := id.FromHex[id.Task](args[0])
	if err != nil {
		return nil, err
	}
	index, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid index %q", ErrUsage, args[1])
	}
	object, err := fn(task, index)
	if err != nil {
		return nil, err
	}
	return &derived{Task: id.FinishTaskID(task), Index: sign * index, Object: object}, nil
}

type decoded struct {
	Object id.ObjectID `yaml:"object"`
	Task   id.TaskID   `yaml:"task"`
	Index  int64       `yaml:"index"`
	Kind   string      `yaml:"kind"`
}

func decode(ctx context.Context, srv *lineage.Service, args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: decode expects OBJECT", ErrUsage)
	}
	object, err := id.FromHex[id.Object](args[0])
	if err != nil {
		return nil, err
	}
	tracing.FromContext(ctx).WithIDs(map[string]fmt.Stringer{"lineage.object": object})
	origin, err := srv.Decode(ctx, object)
	if err != nil {
		return nil, err
	}
	kind := "return"
	if origin.IsPut() {
		kind = "put"
	}
	return &decoded{Object: object, Task: origin.Task, Index: origin.Index, Kind: kind}, nil
}
