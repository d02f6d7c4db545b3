package viewmodels

import (
	"strconv"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
)

var monthLabels = []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

type Stat struct {
	Label string
	Value string
}

type Point struct {
	Label string
	Value float64
}

type Series struct {
	Label  string
	Points []Point
}

// Max is the largest point value, at least 1, for scaling bars.
func (s Series) Max() float64 {
	m := 1.0
	for _, p := range s.Points {
		if p.Value > m {
			m = p.Value
		}
	}
	return m
}

type DashboardView struct {
	Stats                []Stat
	ServiceUsage         Series
	CoverageDistribution Series
	Placeholder          bool
}

// NewDashboardView labels the usage series by month and the distribution by plan.
// Missing series points are zero; extra points are dropped.
func NewDashboardView(d types.Dashboard) DashboardView {
	v := DashboardView{
		Stats: []Stat{
			{Label: "Total Employees", Value: strconv.Itoa(d.TotalEmployees)},
			{Label: "Total Beneficiaries", Value: strconv.Itoa(d.TotalBeneficiaries)},
			{Label: "Services Used", Value: strconv.Itoa(d.TotalServices)},
			{Label: "Total Billing", Value: FormatMoney(d.TotalBilling)},
		},
		ServiceUsage:         Series{Label: "Services Used"},
		CoverageDistribution: Series{Label: "Coverage Distribution"},
	}
	for i, m := range monthLabels {
		v.ServiceUsage.Points = append(v.ServiceUsage.Points, Point{Label: m, Value: at(d.ChartData.ServiceUsage, i)})
	}
	for i, p := range types.CoveragePlans() {
		v.CoverageDistribution.Points = append(v.CoverageDistribution.Points, Point{Label: string(p), Value: at(d.ChartData.CoverageDistribution, i)})
	}
	return v
}

func at(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
