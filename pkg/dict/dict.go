package dict

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
)

var ErrResolverNotConfigured = errors.New("dict: resolver not configured")

type Option struct {
	Code  string
	Label string
}

type Resolver interface {
	ResolveValueLabel(ctx context.Context, dictCode string, code string) (string, bool, error)
	ListOptions(ctx context.Context, dictCode string, keyword string, limit int) ([]Option, error)
}

var registry = struct {
	mu sync.RWMutex
	r  Resolver
}{}

func RegisterResolver(r Resolver) error {
	if r == nil {
		return errors.New("dict: resolver is nil")
	}
	v := reflect.ValueOf(r)
	if (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface || v.Kind() == reflect.Slice || v.Kind() == reflect.Map || v.Kind() == reflect.Func || v.Kind() == reflect.Chan) && v.IsNil() {
		return errors.New("dict: resolver is nil")
	}
	registry.mu.Lock()
	registry.r = r
	registry.mu.Unlock()
	return nil
}

func ResolveValueLabel(ctx context.Context, dictCode string, code string) (string, bool, error) {
	resolver, err := currentResolver()
	if err != nil {
		return "", false, err
	}
	return resolver.ResolveValueLabel(ctx, strings.TrimSpace(dictCode), strings.TrimSpace(code))
}

func ListOptions(ctx context.Context, dictCode string, keyword string, limit int) ([]Option, error) {
	resolver, err := currentResolver()
	if err != nil {
		return nil, err
	}
	return resolver.ListOptions(ctx, strings.TrimSpace(dictCode), strings.TrimSpace(keyword), limit)
}

func currentResolver() (Resolver, error) {
	registry.mu.RLock()
	r := registry.r
	registry.mu.RUnlock()
	if r == nil {
		return nil, ErrResolverNotConfigured
	}
	return r, nil
}

// Static is an in-memory Resolver keyed by dictionary code. Option order is kept.
type Static map[string][]Option

func (s Static) ResolveValueLabel(_ context.Context, dictCode string, code string) (string, bool, error) {
	for _, o := range s[dictCode] {
		if o.Code == code {
			return o.Label, true, nil
		}
	}
	return "", false, nil
}

// ListOptions filters by case-insensitive keyword over code and label. limit <= 0 means
// no limit.
func (s Static) ListOptions(_ context.Context, dictCode string, keyword string, limit int) ([]Option, error) {
	all, ok := s[dictCode]
	if !ok {
		return nil, errors.New("dict: unknown dict code " + dictCode)
	}
	keyword = strings.ToLower(keyword)
	out := make([]Option, 0, len(all))
	for _, o := range all {
		if keyword != "" && !strings.Contains(strings.ToLower(o.Code), keyword) && !strings.Contains(strings.ToLower(o.Label), keyword) {
			continue
		}
		out = append(out, o)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
