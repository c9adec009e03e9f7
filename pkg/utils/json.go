package utils

import (
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type UnmarshalFunc func(data []byte, v any) error

func Unmarshal[T any](data []byte, unmarshal UnmarshalFunc) (T, error) {
	var result T
	if err := unmarshal(data, &result); err != nil {
		return *new(T), err
	}
	return result, nil
}

func UnmarshalJson[T any](data []byte) (T, error) {
	result, err := Unmarshal[T](data, json.Unmarshal)
	if err != nil {
		return *new(T), errors.WithMessage(err, "unmarshal json")
	}
	return result, nil
}

// MarshalJsonIndent renders v with four-space indentation.
func MarshalJsonIndent(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, errors.WithMessage(err, "marshal json")
	}
	return data, nil
}
