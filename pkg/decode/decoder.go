// Package decode turns raw submitted values into the native types their leaf
// schemas declare. Conversion is best effort: a value that cannot be converted
// is returned unchanged so that schema validation downstream rejects it.
package decode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

var errConversion = errors.New("decode: conversion failed")

// Converter converts a raw value to a native value or reports failure.
type Converter func(raw any) (any, error)

var converters = map[schema.Kind]Converter{
	schema.KindString:  identity,
	schema.KindObject:  identity,
	schema.KindInteger: toInteger,
	schema.KindNumber:  toNumber,
	schema.KindBoolean: toBoolean,
}

// Decode converts raw according to the value kind of leaf. Kinds without a
// converter pass through unchanged, as does any value that fails to convert.
func Decode(raw any, leaf *schema.Node) any {
	convert, ok := converters[schema.ValueKind(leaf)]
	if !ok {
		return raw
	}
	value, err := convert(raw)
	if err != nil {
		return raw
	}
	return value
}

// Values decodes every entry whose key is a known input name. Unknown keys are
// copied through untouched.
func Values(values map[string]any, flat schema.FlatSchema) map[string]any {
	out := make(map[string]any, len(values))
	for name, raw := range values {
		leaf, ok := flat.Lookup(name)
		if !ok {
			out[name] = raw
			continue
		}
		out[name] = Decode(raw, leaf)
	}
	return out
}

// FromForm decodes an url.Values style submission, taking the first value for
// each name. A name submitted without values decodes from "".
func FromForm(values map[string][]string, flat schema.FlatSchema) map[string]any {
	raw := make(map[string]any, len(values))
	for name, list := range values {
		if len(list) == 0 {
			raw[name] = ""
			continue
		}
		raw[name] = list[0]
	}
	return Values(raw, flat)
}

// FromJSON decodes a flat JSON object keyed by input name.
func FromJSON(data []byte, flat schema.FlatSchema) (map[string]any, error) {
	var raw map[string]any
	if err := gojson.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode: parse submission: %w", err)
	}
	return Values(raw, flat), nil
}

func identity(raw any) (any, error) {
	return raw, nil
}

func toInteger(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, errConversion
		}
		return parsed, nil
	case int:
		return int64(v), nil
	case int8:
		return int64(v), nil
	case int16:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, errConversion
		}
		return int64(v), nil
	case uint8:
		return int64(v), nil
	case uint16:
		return int64(v), nil
	case uint32:
		return int64(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, errConversion
		}
		return int64(v), nil
	case float32:
		return truncate(float64(v))
	case float64:
		return truncate(v)
	case gojson.Number:
		if parsed, err := v.Int64(); err == nil {
			return parsed, nil
		}
		f, err := v.Float64()
		if err != nil {
			return nil, errConversion
		}
		return truncate(f)
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	default:
		return nil, errConversion
	}
}

func truncate(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, errConversion
	}
	return int64(f), nil
}

func toNumber(raw any) (any, error) {
	switch v := raw.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, errConversion
		}
		return finite(parsed)
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), nil
	case int8:
		return float64(v), nil
	case int16:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint8:
		return float64(v), nil
	case uint16:
		return float64(v), nil
	case uint32:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	case gojson.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, errConversion
		}
		return finite(parsed)
	case bool:
		if v {
			return 1.0, nil
		}
		return 0.0, nil
	default:
		return nil, errConversion
	}
}

// finite rejects NaN and infinities, which have no JSON encoding.
func finite(f float64) (any, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, errConversion
	}
	return f, nil
}

// toBoolean coerces by truthiness and never fails. Strings are true unless
// empty or one of the usual false words.
func toBoolean(raw any) (any, error) {
	switch v := raw.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false", "0", "off", "no":
			return false, nil
		default:
			return true, nil
		}
	case []any:
		return len(v) > 0, nil
	case []string:
		return len(v) > 0, nil
	case map[string]any:
		return len(v) > 0, nil
	default:
		if n, err := toNumber(raw); err == nil {
			return n.(float64) != 0, nil
		}
		return true, nil
	}
}
