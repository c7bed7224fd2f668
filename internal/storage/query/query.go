// Package query переводит параметры строки запроса в описание выборки
// по коллекции документов: фильтрация, сортировка, проекция полей и
// пагинация. Пакет не выполняет I/O и не знает о схеме коллекции —
// неизвестные поля просто ничему не соответствуют при выполнении запроса.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Служебные ключи, управляющие формой выборки. Они вырезаются из фильтра.
const (
	keyPage   = "page"
	keySort   = "sort"
	keyLimit  = "limit"
	keyFields = "fields"
)

const (
	// DefaultLimit — размер страницы, если limit не передан.
	DefaultLimit = 100
	// MaxLimit — верхняя граница размера страницы.
	MaxLimit = 500
)

// операторы сравнения, допустимые в суффиксе ключа: price[gte]=500
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Options — описание выборки, готовое к передаче драйверу хранилища.
type Options struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Skip       int64
	Limit      int64
}

// Build собирает Options из параметров строки запроса. Стадии применяются
// в фиксированном порядке: фильтр, сортировка, проекция, пагинация.
func Build(params url.Values) Options {
	page, limit := paginate(params)
	return Options{
		Filter:     buildFilter(params),
		Sort:       buildSort(params.Get(keySort)),
		Projection: buildProjection(params.Get(keyFields)),
		Skip:       (page - 1) * limit,
		Limit:      limit,
	}
}

// MergeFilter добавляет в фильтр дополнительные условия. Используется для
// обязательных предикатов поверх клиентского фильтра: привязка отзывов к
// туру, исключение неактивных пользователей.
func (o Options) MergeFilter(extra bson.M) Options {
	merged := bson.M{}
	for k, v := range o.Filter {
		merged[k] = v
	}
	for k, v := range extra {
		merged[k] = v
	}
	o.Filter = merged
	return o
}

// FindOptions переводит Options в опции драйвера.
func (o Options) FindOptions() *options.FindOptions {
	return options.Find().
		SetSort(o.Sort).
		SetProjection(o.Projection).
		SetSkip(o.Skip).
		SetLimit(o.Limit)
}

func buildFilter(params url.Values) bson.M {
	filter := bson.M{}
	for key, values := range params {
		if key == keyPage || key == keySort || key == keyLimit || key == keyFields {
			continue
		}
		if len(values) == 0 {
			continue
		}
		value := coerce(values[0])

		field, op, ok := splitComparison(key)
		if !ok {
			filter[key] = value
			continue
		}
		cond, isCond := filter[field].(bson.M)
		if !isCond {
			cond = bson.M{}
			filter[field] = cond
		}
		cond[op] = value
	}
	return filter
}

// splitComparison разбирает ключ вида field[op] на поле и оператор хранилища.
func splitComparison(key string) (field, op string, ok bool) {
	open := strings.IndexByte(key, '[')
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	marker, known := comparisonOps[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}
	return key[:open], marker, true
}

// coerce приводит строковое значение к числу или булеву типу, когда это
// возможно. Схемы на этом уровне нет, поэтому приведение — лучшая догадка.
func coerce(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return value
}

func buildSort(sortParam string) bson.D {
	if sortParam == "" {
		// стабильный порядок по умолчанию: новые документы первыми
		return bson.D{{Key: "createdAt", Value: -1}}
	}
	var sort bson.D
	for _, field := range strings.Split(sortParam, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		direction := 1
		if strings.HasPrefix(field, "-") {
			direction = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: direction})
	}
	return sort
}

func buildProjection(fieldsParam string) bson.M {
	if fieldsParam == "" {
		// служебное поле версии документа никогда не отдаётся
		return bson.M{"__v": 0}
	}
	projection := bson.M{}
	for _, field := range strings.Split(fieldsParam, ",") {
		field = strings.TrimSpace(field)
		// служебное поле не отдаётся даже по явному запросу
		if field == "" || field == "__v" {
			continue
		}
		projection[field] = 1
	}
	return projection
}

func paginate(params url.Values) (page, limit int64) {
	page = 1
	if p, err := strconv.ParseInt(params.Get(keyPage), 10, 64); err == nil && p > 0 {
		page = p
	}
	limit = DefaultLimit
	if l, err := strconv.ParseInt(params.Get(keyLimit), 10, 64); err == nil && l > 0 {
		limit = l
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}
