package pgerr

import (
	"errors"
	"strings"

	"github.com/lib/pq"
)

// Коды ошибок PostgreSQL
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	CheckViolation       = "23514"
	SerializationFailure = "40001"
)

// serializationMessage текст ошибки 40001 на случай, когда *pq.Error потерян при обертке через %v
const serializationMessage = "could not serialize access"

// Code возвращает код ошибки PostgreSQL или пустую строку
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

// IsUniqueViolation нарушено ограничение уникальности
func IsUniqueViolation(err error) bool {
	return Code(err) == UniqueViolation
}

// IsForeignKeyViolation нарушен внешний ключ
func IsForeignKeyViolation(err error) bool {
	return Code(err) == ForeignKeyViolation
}

// IsCheckViolation нарушено ограничение CHECK
func IsCheckViolation(err error) bool {
	return Code(err) == CheckViolation
}

// IsSerializationFailure конфликт сериализуемых транзакций, транзакцию можно повторить
func IsSerializationFailure(err error) bool {
	if err == nil {
		return false
	}
	if Code(err) == SerializationFailure {
		return true
	}
	return strings.Contains(err.Error(), serializationMessage)
}
