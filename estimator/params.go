package estimator

import (
	"sort"

	"github.com/pkg/errors"
)

// Params is a set of named hyperparameters, as returned by GetParams and accepted by SetParams.
type Params map[string]interface{}

// Keys returns the parameter names in sorted order.
func (p Params) Keys() []string {
	retVal := make([]string, 0, len(p))
	for k := range p {
		retVal = append(retVal, k)
	}
	sort.Strings(retVal)
	return retVal
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	retVal := make(Params, len(p))
	for k, v := range p {
		retVal[k] = v
	}
	return retVal
}

// Float reads key as a float64. Integer values are converted.
func (p Params) Float(key string) (float64, error) {
	switch v := p[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	}
	return 0, paramTypeErr(key, "float64", p[key])
}

// Int reads key as an int. Whole float values are accepted.
func (p Params) Int(key string) (int, error) {
	switch v := p[key].(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if v == float64(int(v)) {
			return int(v), nil
		}
	}
	return 0, paramTypeErr(key, "int", p[key])
}

// Int64 reads key as an int64.
func (p Params) Int64(key string) (int64, error) {
	switch v := p[key].(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
	}
	return 0, paramTypeErr(key, "int64", p[key])
}

func (p Params) Bool(key string) (bool, error) {
	if v, ok := p[key].(bool); ok {
		return v, nil
	}
	return false, paramTypeErr(key, "bool", p[key])
}

func (p Params) String(key string) (string, error) {
	if v, ok := p[key].(string); ok {
		return v, nil
	}
	return "", paramTypeErr(key, "string", p[key])
}

// UnknownParam returns an error stating that key is not understood by the estimator named by who.
func UnknownParam(who, key string) error {
	return errors.Wrapf(ErrUnknownParam, "%s has no parameter %q", who, key)
}

func paramTypeErr(key, want string, got interface{}) error {
	return errors.Wrapf(ErrParamType, "%q: want %s, got %T", key, want, got)
}
