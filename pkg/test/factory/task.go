package factory

import (
	fab "github.com/Goldziher/fabricator"
)

func NewTask[T any](customData ...map[string]any) T {
	instance := fab.New(*new(T))

	return instance.Build(customData...)
}
