package validate

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"stockroom/internal/domain"
)

const (
	msgMissing  = "Field required"
	msgInt      = "Input should be a valid integer"
	msgNumber   = "Input should be a valid number"
	msgBool     = "Input should be a valid boolean"
	msgString   = "Input should be a valid string"
	msgTooShort = "String should have at least 1 character"
)

var stockFields = []string{"store_id", "product_id", "price", "is_available", "category"}

func raw(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	return b
}

func issue(typ, loc, field, msg string, input any, withInput bool) domain.Issue {
	is := domain.Issue{Type: typ, Loc: []string{loc, field}, Msg: msg}
	if withInput {
		is.Input = raw(input)
	}
	return is
}

func fail(issues []domain.Issue) error {
	if len(issues) == 0 {
		return nil
	}
	return &domain.ValidationError{Issues: issues}
}

// Object decodes a request body that must be a JSON object. Numbers are kept
// as json.Number so integers and floats stay distinguishable.
func Object(body []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{
			Type: "json_invalid", Loc: []string{"body"}, Msg: "JSON decode error",
		}}}
	}
	if dec.More() {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{
			Type: "json_invalid", Loc: []string{"body"}, Msg: "JSON decode error",
		}}}
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, &domain.ValidationError{Issues: []domain.Issue{{
			Type: "dict_type", Loc: []string{"body"}, Msg: "Input should be a valid dictionary", Input: raw(v),
		}}}
	}
	return m, nil
}

func isInt(v any) (int64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	i, err := n.Int64()
	return i, err == nil
}

func isNumber(v any) (float64, bool) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, false
	}
	f, err := n.Float64()
	return f, err == nil
}

// text checks a required non-blank string field and appends any issue.
func text(payload map[string]any, field string, issues *[]domain.Issue) string {
	v := payload[field]
	s, ok := v.(string)
	if !ok {
		*issues = append(*issues, issue("string_type", "body", field, msgString, v, true))
		return ""
	}
	if strings.TrimSpace(s) == "" {
		*issues = append(*issues, issue("string_too_short", "body", field, msgTooShort, v, true))
		return ""
	}
	return s
}

// Name validates a store/product payload: {"name": non-empty string}.
func Name(payload map[string]any) (string, error) {
	if _, ok := payload["name"]; !ok {
		return "", fail([]domain.Issue{issue("missing", "body", "name", msgMissing, nil, false)})
	}
	var issues []domain.Issue
	name := text(payload, "name", &issues)
	return name, fail(issues)
}

// StockCreate requires all five stock fields. Missing keys are reported
// together; otherwise every type violation is collected in field order.
func StockCreate(payload map[string]any) (domain.StockInput, error) {
	var issues []domain.Issue
	for _, f := range stockFields {
		if _, ok := payload[f]; !ok {
			issues = append(issues, issue("missing", "body", f, msgMissing, nil, false))
		}
	}
	if len(issues) > 0 {
		return domain.StockInput{}, fail(issues)
	}

	var in domain.StockInput
	var ok bool
	if in.StoreID, ok = isInt(payload["store_id"]); !ok {
		issues = append(issues, issue("int_type", "body", "store_id", msgInt, payload["store_id"], true))
	}
	if in.ProductID, ok = isInt(payload["product_id"]); !ok {
		issues = append(issues, issue("int_type", "body", "product_id", msgInt, payload["product_id"], true))
	}
	if in.Price, ok = isNumber(payload["price"]); !ok {
		issues = append(issues, issue("float_type", "body", "price", msgNumber, payload["price"], true))
	}
	if in.IsAvailable, ok = payload["is_available"].(bool); !ok {
		issues = append(issues, issue("bool_type", "body", "is_available", msgBool, payload["is_available"], true))
	}
	in.Category = text(payload, "category", &issues)
	if err := fail(issues); err != nil {
		return domain.StockInput{}, err
	}
	return in, nil
}

// StockUpdate validates a partial update. Unknown keys are ignored; a present
// key with a null value is a type violation, not an omission.
func StockUpdate(payload map[string]any) (domain.StockPatch, error) {
	var patch domain.StockPatch
	var issues []domain.Issue
	if v, present := payload["price"]; present {
		if f, ok := isNumber(v); ok {
			patch.Price = domain.Some(f)
		} else {
			issues = append(issues, issue("float_type", "body", "price", msgNumber, v, true))
		}
	}
	if v, present := payload["is_available"]; present {
		if b, ok := v.(bool); ok {
			patch.IsAvailable = domain.Some(b)
		} else {
			issues = append(issues, issue("bool_type", "body", "is_available", msgBool, v, true))
		}
	}
	if _, present := payload["category"]; present {
		n := len(issues)
		if c := text(payload, "category", &issues); len(issues) == n {
			patch.Category = domain.Some(c)
		}
	}
	if err := fail(issues); err != nil {
		return domain.StockPatch{}, err
	}
	if patch.Empty() {
		return patch, domain.ErrNothingToUpdate
	}
	return patch, nil
}

// ID parses a positive integer path parameter.
func ID(param, s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, fail([]domain.Issue{issue("int_parsing", "path", param, msgInt, s, true)})
	}
	return n, nil
}

// Bool accepts the usual spellings of true/false, case-insensitively.
func Bool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes", "on", "t", "y":
		return true, true
	case "false", "0", "no", "off", "f", "n":
		return false, true
	}
	return false, false
}

// NameFilter reads ?id=&name= for store/product lists. Empty values are absent.
func NameFilter(get func(key string) string) (domain.NameFilter, error) {
	var f domain.NameFilter
	var issues []domain.Issue
	if s := strings.TrimSpace(get("id")); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			f.ID = &n
		} else {
			issues = append(issues, issue("int_parsing", "query", "id", msgInt, s, true))
		}
	}
	f.Name = strings.TrimSpace(get("name"))
	return f, fail(issues)
}

// StockFilter reads the stock list query string.
func StockFilter(get func(key string) string) (domain.StockFilter, error) {
	f := domain.StockFilter{
		ProductName: strings.TrimSpace(get("product_name")),
		StoreName:   strings.TrimSpace(get("store_name")),
		Category:    strings.TrimSpace(get("category")),
	}
	var issues []domain.Issue
	if s := strings.TrimSpace(get("max_price")); s != "" {
		p, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(p) {
			issues = append(issues, issue("float_parsing", "query", "max_price", msgNumber, s, true))
		} else {
			f.MaxPrice = &p
		}
	}
	if s := strings.TrimSpace(get("is_available")); s != "" {
		if b, ok := Bool(s); ok {
			f.IsAvailable = &b
		} else {
			issues = append(issues, issue("bool_parsing", "query", "is_available", msgBool, s, true))
		}
	}
	return f, fail(issues)
}
