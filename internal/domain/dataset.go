package domain

import (
	"errors"
	"fmt"
)

// ErrDatasetNotLoaded возвращается при обращении к данным до успешной загрузки
var ErrDatasetNotLoaded = errors.New("dataset not loaded")

// LoadError - источник датасета недоступен или документ не разобран.
// Загрузка атомарна: при LoadError ни одной записи не публикуется.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// NewLoadError оборачивает ошибку источника
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

// IsLoadError проверяет, является ли ошибка LoadError
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
