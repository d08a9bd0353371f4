/*
 * Copyright 2025 tomoncle.
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

// SQLError is a driver-independent classification of a database error.
type SQLError int

const (
	UnknownErr SQLError = iota
	NoRowsErr
	NoIndexErr
	NoColumnErr
	ExistIndexErr
	ExistColumnErr
	NoTableErr
	ExistTableErr
	DuplicateKeyErr
	NotNullViolationErr
	ForeignKeyViolationErr
	CheckConstraintViolationErr
	DataTruncatedErr
	InvalidTypeCastErr
)

var sqlErrorNames = map[SQLError]string{
	UnknownErr:                  "unknown",
	NoRowsErr:                   "no_rows",
	NoIndexErr:                  "no_index",
	NoColumnErr:                 "no_column",
	ExistIndexErr:               "exist_index",
	ExistColumnErr:              "exist_column",
	NoTableErr:                  "no_table",
	ExistTableErr:               "exist_table",
	DuplicateKeyErr:             "duplicate_key",
	NotNullViolationErr:         "not_null_violation",
	ForeignKeyViolationErr:      "foreign_key_violation",
	CheckConstraintViolationErr: "check_constraint_violation",
	DataTruncatedErr:            "data_truncated",
	InvalidTypeCastErr:          "invalid_type_cast",
}

func (e SQLError) String() string {
	if name, ok := sqlErrorNames[e]; ok {
		return name
	}
	return "unknown"
}

var mysqlCodes = map[uint16]SQLError{
	1091: NoIndexErr,
	1054: NoColumnErr,
	1061: ExistIndexErr,
	1060: ExistColumnErr,
	1146: NoTableErr,
	1050: ExistTableErr,
	1062: DuplicateKeyErr,
	1048: NotNullViolationErr,
	1216: ForeignKeyViolationErr,
	1217: ForeignKeyViolationErr,
	1451: ForeignKeyViolationErr,
	1452: ForeignKeyViolationErr,
	3819: CheckConstraintViolationErr,
	1265: DataTruncatedErr,
	1406: DataTruncatedErr,
}

var postgresCodes = map[pq.ErrorCode]SQLError{
	"42704": NoIndexErr,
	"42703": NoColumnErr,
	"42701": ExistColumnErr,
	"42P01": NoTableErr,
	"42P07": ExistTableErr,
	"23505": DuplicateKeyErr,
	"23502": NotNullViolationErr,
	"23503": ForeignKeyViolationErr,
	"23514": CheckConstraintViolationErr,
	"22001": DataTruncatedErr,
	"42804": InvalidTypeCastErr,
}

// messagePatterns classifies errors that only carry text, such as sqlite
// errors and wrapped postgres errors. Order matters: index checks run before
// the generic table checks.
var messagePatterns = []struct {
	kind SQLError
	any  []string
	all  []string
}{
	{kind: NoColumnErr, any: []string{"sqlstate 42703", "undefined column", "no such column"}},
	{kind: NoIndexErr, any: []string{"sqlstate 42704", "no such index"}},
	{kind: NoIndexErr, all: []string{"index", "does not exist"}},
	{kind: NoTableErr, any: []string{"sqlstate 42p01", "undefined table", "no such table"}},
	{kind: ExistIndexErr, all: []string{"index", "already exists"}},
	{kind: ExistTableErr, all: []string{"table", "already exists"}},
	{kind: ExistTableErr, all: []string{"relation", "already exists"}},
	{kind: DuplicateKeyErr, any: []string{"duplicate key value", "unique constraint failed", "sqlstate 23505"}},
	{kind: NotNullViolationErr, any: []string{"not-null constraint", "not null constraint failed", "sqlstate 23502"}},
	{kind: ForeignKeyViolationErr, any: []string{"foreign key violation", "foreign key constraint failed", "sqlstate 23503"}},
	{kind: CheckConstraintViolationErr, any: []string{"check constraint", "sqlstate 23514"}},
	{kind: DataTruncatedErr, any: []string{"string data right truncation", "data truncated", "value too long", "sqlstate 22001"}},
	{kind: InvalidTypeCastErr, any: []string{"datatype mismatch", "sqlstate 42804"}},
}

// IsSqlError classifies err as a driver error across mysql, postgres and sqlite.
func IsSqlError(err error) (is bool, sqlErr SQLError) {
	if err == nil {
		return false, UnknownErr
	}
	if errors.Is(err, sql.ErrNoRows) {
		return true, NoRowsErr
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return true, mysqlCodes[mysqlErr.Number]
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return true, postgresCodes[pqErr.Code]
	}

	s := strings.ToLower(err.Error())
	for _, p := range messagePatterns {
		if matchAny(s, p.any) || matchAll(s, p.all) {
			return true, p.kind
		}
	}
	return false, UnknownErr
}

func matchAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func matchAll(s string, subs []string) bool {
	if len(subs) == 0 {
		return false
	}
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
