package pagination

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"soundvault/internal/apperr"
)

const (
	defaultLimit  = 10
	defaultSortBy = "updatedAt"
	defaultOrder  = "desc"
	SortOrderAsc  = "asc"
	SortOrderDesc = "desc"
)

// Params описывает общий контракт листинговых запросов
type Params struct {
	Offset     int
	Limit      int
	SortBy     string
	SortOrder  string
	TextSearch string
	// Pagination = false отключает limit/offset и возвращает все строки
	Pagination bool
}

// ParseParams читает параметры листинга из query string с дефолтами
func ParseParams(q url.Values) (Params, error) {
	p := Params{
		Offset:     0,
		Limit:      defaultLimit,
		SortBy:     defaultSortBy,
		SortOrder:  defaultOrder,
		TextSearch: q.Get("textSearch"),
		Pagination: true,
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Params{}, apperr.BadRequest(fmt.Sprintf("invalid offset: %q", v), nil)
		}
		p.Offset = n
	}

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return Params{}, apperr.BadRequest(fmt.Sprintf("invalid limit: %q", v), nil)
		}
		p.Limit = n
	}

	if v := q.Get("sortBy"); v != "" {
		p.SortBy = v
	}

	if v := q.Get("sortOrder"); v != "" {
		for _, o := range strings.Split(v, ",") {
			if o != SortOrderAsc && o != SortOrderDesc {
				return Params{}, apperr.BadRequest(fmt.Sprintf("invalid sortOrder: %q", o), nil)
			}
		}
		p.SortOrder = v
	}

	if v := q.Get("pagination"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return Params{}, apperr.BadRequest(fmt.Sprintf("invalid pagination: %q", v), nil)
		}
		p.Pagination = b
	}

	return p, nil
}

var identifierRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// OrderBy собирает список сортировки. Направления при нехватке дополняются
// значением desc. Имя поля превращается в колонку либо через явный маппинг
// (нужен при сортировке по колонкам присоединенной таблицы), либо конверсией
// в snake_case. Неизвестное поле - NotImplemented, а не ошибка пользователя.
func (p Params) OrderBy(columnMapping map[string]string) (string, error) {
	fields := strings.Split(p.SortBy, ",")
	orders := strings.Split(p.SortOrder, ",")

	for len(orders) < len(fields) {
		orders = append(orders, defaultOrder)
	}

	parts := make([]string, 0, len(fields))
	for i, field := range fields {
		var column string
		if columnMapping != nil {
			mapped, ok := columnMapping[field]
			if !ok {
				return "", apperr.NotImplemented(fmt.Sprintf("no sorting implemented for - %s.", field))
			}
			column = mapped
		} else {
			column = ToSnakeCase(field)
			if !identifierRe.MatchString(column) {
				return "", apperr.NotImplemented(fmt.Sprintf("no sorting implemented for - %s.", field))
			}
		}

		direction := "DESC"
		if orders[i] == SortOrderAsc {
			direction = "ASC"
		}
		parts = append(parts, column+" "+direction)
	}

	return strings.Join(parts, ", "), nil
}

// LimitOffset возвращает завершающий фрагмент запроса страницы
func (p Params) LimitOffset() string {
	if !p.Pagination {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d OFFSET %d", p.Limit, p.Offset)
}

var tsQueryMeta = strings.NewReplacer(
	"(", " ", ")", " ", "&", " ", "|", " ", "!", " ", "<", " ", ">", " ",
)

var weightLevels = []string{"A", "B", "C", "D"}

// TextSearchCondition строит взвешенное полнотекстовое условие поверх tsvector.
// Первая колонка получает вес A, дальше по убыванию, лишние делят вес D.
// Пустая строка поиска дает безусловное TRUE. Возвращаемый аргумент
// подставляется в to_tsquery плейсхолдером argPos.
func TextSearchCondition(columns []string, searchText string, argPos int) (string, []interface{}) {
	if strings.TrimSpace(searchText) == "" {
		return "TRUE", nil
	}

	// Метасимволы операторов tsquery заменяются пробелами, иначе
	// произвольный ввод ломает запрос
	cleaned := tsQueryMeta.Replace(strings.ToLower(strings.TrimSpace(searchText)))

	tokens := make([]string, 0)
	for _, word := range strings.Fields(cleaned) {
		tokens = append(tokens, word+":*")
	}
	if len(tokens) == 0 {
		return "TRUE", nil
	}
	tsQuery := strings.Join(tokens, " & ")

	vectors := make([]string, 0, len(columns))
	for i, column := range columns {
		weight := "D"
		if i < len(weightLevels) {
			weight = weightLevels[i]
		}
		vectors = append(vectors, fmt.Sprintf(
			"setweight(to_tsvector('simple', COALESCE(lower(%s), lower(%s))), '%s')",
			column, columns[0], weight,
		))
	}

	cond := fmt.Sprintf("(%s @@ to_tsquery('simple', $%d))", strings.Join(vectors, " || "), argPos)
	return cond, []interface{}{tsQuery}
}

// ToSnakeCase переводит camelCase имя поля в snake_case колонку
func ToSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}
