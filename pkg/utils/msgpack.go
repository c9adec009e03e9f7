package utils

import (
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

func UnmarshalMsgpack[T any](data []byte) (T, error) {
	result, err := Unmarshal[T](data, msgpack.Unmarshal)
	if err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal msgpack")
	}
	return result, nil
}

func MarshalMsgpack(v any) ([]byte, error) {
	data, err := msgpack.Marshal(v)
	if err != nil {
		return nil, errors.WithMessage(err, "marshal msgpack")
	}
	return data, nil
}
