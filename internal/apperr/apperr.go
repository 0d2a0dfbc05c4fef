// Package apperr определяет доменную таксономию ошибок сервиса.
//
// Каждая ошибка несёт вид (Kind), тип сущности и её идентификатор,
// чтобы HTTP-слой мог отобразить стабильный статус-код и читаемое
// сообщение. Сравнение выполняется через errors.Is с сентинелями вида.
package apperr

import (
	"errors"
	"fmt"
)

// Kind вид ошибки, определяющий HTTP-статус ответа.
type Kind int

const (
	// KindBadRequest некорректный или неполный ввод.
	KindBadRequest Kind = iota
	// KindUnauthorized сессия не соответствует требуемой личности.
	KindUnauthorized
	// KindForbidden операция запрещена текущим состоянием сущности.
	KindForbidden
	// KindNotFound сущность по ссылке отсутствует.
	KindNotFound
	// KindConflict дубликат идентификатора или пересечение дат.
	KindConflict
	// KindInternal сбой хранилища или иная внутренняя ошибка.
	KindInternal
)

var kindNames = map[Kind]string{
	KindBadRequest:   "bad request",
	KindUnauthorized: "unauthorized",
	KindForbidden:    "forbidden",
	KindNotFound:     "not found",
	KindConflict:     "conflict",
	KindInternal:     "internal error",
}

// Сентинели для errors.Is: apperr.E(...) считается равным сентинелю своего вида.
var (
	ErrBadRequest   = &Error{kind: KindBadRequest}
	ErrUnauthorized = &Error{kind: KindUnauthorized}
	ErrForbidden    = &Error{kind: KindForbidden}
	ErrNotFound     = &Error{kind: KindNotFound}
	ErrConflict     = &Error{kind: KindConflict}
	ErrInternal     = &Error{kind: KindInternal}
)

// Error доменная ошибка с видом, сущностью и идентификатором.
type Error struct {
	kind   Kind
	entity string
	id     string
	msg    string
	err    error
}

// E создает ошибку с видом, типом сущности и её идентификатором.
func E(kind Kind, entity, id, msg string) *Error {
	return &Error{kind: kind, entity: entity, id: id, msg: msg}
}

// Wrap оборачивает внутреннюю ошибку как KindInternal, сохраняя причину.
func Wrap(op string, err error) *Error {
	return &Error{kind: KindInternal, msg: op, err: err}
}

func (e *Error) Error() string {
	switch {
	case e.err != nil:
		return fmt.Sprintf("%s: %s: %v", kindNames[e.kind], e.msg, e.err)
	case e.entity != "":
		return fmt.Sprintf("%s: %s %q: %s", kindNames[e.kind], e.entity, e.id, e.msg)
	case e.msg != "":
		return fmt.Sprintf("%s: %s", kindNames[e.kind], e.msg)
	default:
		return kindNames[e.kind]
	}
}

// Kind возвращает вид ошибки.
func (e *Error) Kind() Kind { return e.kind }

// Entity возвращает тип сущности, к которой относится ошибка.
func (e *Error) Entity() string { return e.entity }

// ID возвращает идентификатор сущности.
func (e *Error) ID() string { return e.id }

// Unwrap возвращает причину для errors.Is/As по цепочке.
func (e *Error) Unwrap() error { return e.err }

// Is сообщает равенство с другим *Error по виду,
// поэтому errors.Is(err, apperr.ErrNotFound) работает для любых E(KindNotFound, ...).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.kind == t.kind
}

// KindOf возвращает вид ошибки и признак принадлежности к таксономии.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return KindInternal, false
}
