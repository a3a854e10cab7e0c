// Package repository implements the MongoDB persistence layer: the generic
// query feature builder, the generic document repository and the
// per-resource repositories with reference population.
package repository

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	defaultPage  = 1
	defaultLimit = 100
	// maxLimit caps a single page so callers cannot request unbounded result
	// sets.
	maxLimit = 500
)

// comparison operators accepted in field[op]=value query parameters.
var comparisonOps = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// reserved control keys dropped from the filter predicate set.
var reservedParams = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// Features translates a flat query-parameter mapping into the filter, sort,
// projection and pagination of a MongoDB find. The four transformations are
// applied in order: filter, sort, field limiting, pagination.
type Features struct {
	Filter     bson.D
	Sort       bson.D
	Projection bson.D
	Skip       int64
	Limit      int64
}

// NewFeatures builds query features from request query parameters.
func NewFeatures(params url.Values) *Features {
	f := &Features{}
	f.applyFilter(params)
	f.applySort(params.Get("sort"))
	f.applyFields(params.Get("fields"))
	f.applyPagination(params.Get("page"), params.Get("limit"))
	return f
}

// FindOptions renders the sort, projection and pagination as driver options.
func (f *Features) FindOptions() *options.FindOptionsBuilder {
	opts := options.Find().
		SetSort(f.Sort).
		SetSkip(f.Skip).
		SetLimit(f.Limit)
	if len(f.Projection) > 0 {
		opts = opts.SetProjection(f.Projection)
	}
	return opts
}

// applyFilter drops the reserved control keys, rewrites field[op] keys into
// native comparison predicates and keeps the rest as equality predicates.
// The result is a conjunction of all supplied predicates.
func (f *Features) applyFilter(params url.Values) {
	equality := bson.D{}
	comparisons := map[string]bson.D{}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if reservedParams[key] {
			continue
		}
		value := parseValue(params.Get(key))

		field, op, ok := splitOperatorKey(key)
		if !ok {
			equality = append(equality, bson.E{Key: key, Value: value})
			continue
		}
		mongoOp, known := comparisonOps[op]
		if !known {
			continue
		}
		comparisons[field] = append(comparisons[field], bson.E{Key: mongoOp, Value: value})
	}

	filter := equality
	fields := make([]string, 0, len(comparisons))
	for field := range comparisons {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		filter = append(filter, bson.E{Key: field, Value: comparisons[field]})
	}
	f.Filter = filter
}

// applySort parses a comma-separated sort directive, each field optionally
// prefixed with - for descending. Without a directive results sort by
// creation time descending.
func (f *Features) applySort(directive string) {
	if directive == "" {
		f.Sort = bson.D{{Key: "createdAt", Value: -1}}
		return
	}

	sortDoc := bson.D{}
	for _, field := range strings.Split(directive, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sortDoc = append(sortDoc, bson.E{Key: field, Value: order})
	}
	if len(sortDoc) == 0 {
		sortDoc = bson.D{{Key: "createdAt", Value: -1}}
	}
	f.Sort = sortDoc
}

// applyFields projects the response to exactly the requested fields. The
// identity field is always included by the server.
func (f *Features) applyFields(directive string) {
	if directive == "" {
		return
	}
	projection := bson.D{}
	for _, field := range strings.Split(directive, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		projection = append(projection, bson.E{Key: field, Value: 1})
	}
	f.Projection = projection
}

// applyPagination parses page and limit; malformed values degrade silently
// to the numeric defaults, and limit is clamped to maxLimit.
func (f *Features) applyPagination(page, limit string) {
	p := parsePositiveInt(page, defaultPage)
	l := parsePositiveInt(limit, defaultLimit)
	if l > maxLimit {
		l = maxLimit
	}
	f.Skip = int64(p-1) * int64(l)
	f.Limit = int64(l)
}

// splitOperatorKey decomposes a key of the form field[op].
func splitOperatorKey(key string) (field, op string, ok bool) {
	open := strings.Index(key, "[")
	if open <= 0 || !strings.HasSuffix(key, "]") {
		return "", "", false
	}
	return key[:open], key[open+1 : len(key)-1], true
}

// parseValue keeps filter values typed the way the database expects:
// numbers and booleans are compared natively, everything else as a string.
func parseValue(raw string) interface{} {
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

func parsePositiveInt(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
