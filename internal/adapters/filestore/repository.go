package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/kiryu-dev/sea-battle/internal/domain"
	"github.com/kiryu-dev/sea-battle/pkg/utils"
	"github.com/pkg/errors"
)

type Format string

const (
	FormatJSON    = Format("json")
	FormatMsgpack = Format("msgpack")
)

var ErrUnknownFormat = errors.New("unknown save format")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatMsgpack:
		return f, nil
	default:
		return "", errors.WithMessagef(ErrUnknownFormat, "'%s'", s)
	}
}

type repository struct {
	dir    string
	format Format
}

// New returns a repository that keeps saves under dir. Names without a known
// extension get the extension of the default format.
func New(dir string, format Format) repository {
	return repository{
		dir:    dir,
		format: format,
	}
}

func (r repository) Save(ctx context.Context, name string, state domain.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, format := r.resolve(name)
	data, err := encode(format, state)
	if err != nil {
		return errors.WithMessagef(err, "encode '%s'", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return &accessError{op: "create directory for", path: path, err: err}
	}
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return &accessError{op: "write", path: path, err: err}
	}
	return nil
}

func (r repository) Load(ctx context.Context, name string) (domain.GameState, error) {
	if err := ctx.Err(); err != nil {
		return domain.GameState{}, err
	}
	path, format := r.resolve(name)
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.GameState{}, &accessError{op: "read", path: path, err: err}
	}
	state, err := decode(format, data)
	if err != nil {
		return domain.GameState{}, errors.WithMessagef(domain.ErrSchema, "decode '%s': %v", path, err)
	}
	return state, nil
}

func (r repository) resolve(name string) (string, Format) {
	format := r.format
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		format = FormatJSON
	case ".msgpack", ".mp":
		format = FormatMsgpack
	default:
		name += "." + string(format)
	}
	if filepath.IsAbs(name) {
		return name, format
	}
	return filepath.Join(r.dir, name), format
}

func encode(format Format, state domain.GameState) ([]byte, error) {
	if format == FormatMsgpack {
		return utils.MarshalMsgpack(state)
	}
	return utils.MarshalJsonIndent(state)
}

func decode(format Format, data []byte) (domain.GameState, error) {
	if format == FormatMsgpack {
		return utils.UnmarshalMsgpack[domain.GameState](data)
	}
	return utils.UnmarshalJson[domain.GameState](data)
}
