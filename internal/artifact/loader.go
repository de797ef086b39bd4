package artifact

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"

	"custintel/internal/common/fsutil"
	"custintel/internal/common/jsonutil"
	"custintel/internal/estimator"
)

var (
	errNoModel   = errors.New("bundle has no model")
	errWrongRole = errors.New("estimator has the wrong role")
)

// read loads one candidate file. ok is false when the file is missing,
// unreadable or not JSON; only the last two are logged as warnings.
func (r *Resolver) read(name string) (path string, raw json.RawMessage, ok bool) {
	path = filepath.Join(r.dir, name)
	b, found, err := fsutil.ReadOptional(path)
	if err != nil {
		r.skip(path, err)
		return path, nil, false
	}
	if !found {
		r.log.Debug().Str("path", path).Msg("artifact not present")
		return path, nil, false
	}
	if !json.Valid(b) {
		r.skip(path, errors.New("not valid JSON"))
		return path, nil, false
	}
	return path, b, true
}

func (r *Resolver) skip(path string, err error) {
	r.log.Warn().Err(err).Str("path", path).Msg("artifact skipped")
}

// decodeAs decodes an estimator document and asserts its role.
func decodeAs[T estimator.Estimator](raw json.RawMessage, role string) (T, error) {
	var zero T
	if jsonutil.IsNull(raw) {
		return zero, fmt.Errorf("%w: expected %s, found null", errWrongRole, role)
	}
	est, err := estimator.Decode(raw)
	if err != nil {
		return zero, err
	}
	v, ok := est.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s is not a %s", errWrongRole, est.Kind(), role)
	}
	return v, nil
}

// decodeOptional is decodeAs for members that may be absent or null.
func decodeOptional[T estimator.Estimator](raw json.RawMessage, role string) (T, error) {
	var zero T
	if jsonutil.IsNull(raw) {
		return zero, nil
	}
	return decodeAs[T](raw, role)
}

// chooseKey returns the first preferred key with a non-null value, falling
// back to the first such key in document order.
func chooseKey(obj jsonutil.Object, prefs []string) (string, bool) {
	usable := func(k string) bool {
		v, ok := obj.Get(k)
		return ok && !jsonutil.IsNull(v)
	}
	for _, k := range prefs {
		if usable(k) {
			return k, true
		}
	}
	for _, k := range obj.Keys() {
		if usable(k) {
			return k, true
		}
	}
	return "", false
}

func featureNames(est estimator.Estimator) []string {
	if fn, ok := est.(estimator.FeatureNamer); ok {
		return fn.FeatureNamesIn()
	}
	return nil
}
