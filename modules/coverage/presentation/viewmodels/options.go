package viewmodels

import (
	"context"
	"errors"
	"strings"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/pkg/dict"
)

const (
	DictCoveragePlan  = "coverage_plan"
	DictRecordStatus  = "record_status"
	DictRelationship  = "relationship"
	DictServiceType   = "service_type"
	DictServiceStatus = "service_status"
	DictClaimStatus   = "claim_status"
)

// Dictionaries is the option source for every enum-valued form field. The
// composition root registers it with dict.RegisterResolver.
func Dictionaries() dict.Static {
	return dict.Static{
		DictCoveragePlan:  enumOptions(types.CoveragePlans(), nil),
		DictRecordStatus:  enumOptions(types.RecordStatuses(), nil),
		DictRelationship:  enumOptions(types.Relationships(), relationshipLabel),
		DictServiceType:   enumOptions(types.ServiceTypes(), nil),
		DictServiceStatus: enumOptions(types.ServiceStatuses(), nil),
		DictClaimStatus:   enumOptions(types.ClaimStatuses(), nil),
	}
}

func enumOptions[T ~string](values []T, label func(string) string) []dict.Option {
	out := make([]dict.Option, 0, len(values))
	for _, v := range values {
		l := string(v)
		if label != nil {
			l = label(l)
		}
		out = append(out, dict.Option{Code: string(v), Label: l})
	}
	return out
}

func relationshipLabel(code string) string {
	if code == "" {
		return ""
	}
	return strings.ToUpper(code[:1]) + code[1:]
}

// selectOptions reads a dictionary through the registered resolver and falls back to
// the built-in dictionaries when none is registered.
func selectOptions(dictCode string, selected string) []Option {
	opts, err := dict.ListOptions(context.Background(), dictCode, "", 0)
	if errors.Is(err, dict.ErrResolverNotConfigured) {
		opts, err = Dictionaries().ListOptions(context.Background(), dictCode, "", 0)
	}
	if err != nil {
		return nil
	}
	out := make([]Option, 0, len(opts))
	for _, o := range opts {
		out = append(out, Option{Value: o.Code, Label: o.Label, Selected: o.Code == selected})
	}
	return out
}
