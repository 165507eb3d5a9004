package builder

import (
	"github.com/PandasDrive/M2T/pkg/internal/types"
	"github.com/PandasDrive/M2T/pkg/internal/utils"
)

// Map applies a function to each element in the slice.
func Map[T any](elems []T, f func(T) T) []T {
	return utils.Map[T](elems, f)
}

// Filter returns a new slice holding only the elements of elems that satisfy f().
func Filter[T any](elems []T, f func(T) bool) []T {
	return utils.Filter[T](elems, f)
}

// NewTransformerSequence builds a transformer slice for use with a Pipeline.
func NewTransformerSequence[T any](transforms ...types.Transformer[T]) []types.Transformer[T] {
	return transforms
}
