package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func likeOperatorByDialect(dialect string) string {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return "ILIKE"
	default:
		return "LIKE"
	}
}

// searchLikeCondition 构建多列模糊搜索条件，postgres 下使用 ILIKE 实现不区分大小写。
func searchLikeCondition(db *gorm.DB, search string, columns ...string) (string, []interface{}) {
	return searchLikeConditionByDialect(dbDialectName(db), search, columns...)
}

func searchLikeConditionByDialect(dialect, search string, columns ...string) (string, []interface{}) {
	operator := likeOperatorByDialect(dialect)
	like := "%" + strings.TrimSpace(search) + "%"
	parts := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, column := range columns {
		trimmed := strings.TrimSpace(column)
		if trimmed == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s %s ?", trimmed, operator))
		args = append(args, like)
	}
	return strings.Join(parts, " OR "), args
}
