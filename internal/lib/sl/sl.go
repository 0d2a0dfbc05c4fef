// Package sl дополняет slog атрибутами, общими для всех слоёв сервиса.
package sl

import "log/slog"

// Err упаковывает ошибку в атрибут с ключом "error", чтобы записи
// об ошибках в обработчиках и сервисах выглядели одинаково:
//
//	log.Error("failed to create rental", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
