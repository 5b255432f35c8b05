package repository

import "errors"

var ErrNotFound = errors.New("запись не найдена")
var ErrDuplicate = errors.New("нарушение уникальности")
