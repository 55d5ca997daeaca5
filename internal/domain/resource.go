// internal/domain/resource.go
package domain

// ResourceState enumerates the three states a Resource can be in. The set is
// closed; consumers switch exhaustively over it.
type ResourceState int

const (
	StateLoading ResourceState = iota
	StateSuccess
	StateError
)

// Resource is the tagged union delivered on repository streams. An Error
// resource may still carry the last successfully seen data, so a network
// failure never blanks out cached content already shown to the user.
type Resource[T any] struct {
	State   ResourceState
	Data    T
	Message string
}

func Loading[T any]() Resource[T] {
	return Resource[T]{State: StateLoading}
}

func Success[T any](data T) Resource[T] {
	return Resource[T]{State: StateSuccess, Data: data}
}

func Failure[T any](message string, stale T) Resource[T] {
	return Resource[T]{State: StateError, Data: stale, Message: message}
}
