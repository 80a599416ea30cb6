package models

// Result is the outcome of one backend call: exactly one of Value and Err is meaningful.
type Result[T any] struct {
	Value  T
	Status int
	Err    *ClientError
}

func Success[T any](value T, status int) Result[T] {
	return Result[T]{Value: value, Status: status}
}

func Failure[T any](err *ClientError) Result[T] {
	r := Result[T]{Err: err}
	if err != nil {
		r.Status = err.Status
	}

	return r
}

func (r Result[T]) IsOk() bool {
	return r.Err == nil
}

// Unpack returns the result in the (value, error) shape.
func (r Result[T]) Unpack() (T, error) {
	if r.Err != nil {
		var zero T
		return zero, r.Err
	}

	return r.Value, nil
}
