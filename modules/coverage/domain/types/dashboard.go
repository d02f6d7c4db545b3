package types

import "github.com/shopspring/decimal"

type Dashboard struct {
	TotalEmployees     int             `json:"totalEmployees"`
	TotalBeneficiaries int             `json:"totalBeneficiaries"`
	TotalServices      int             `json:"totalServices"`
	TotalBilling       decimal.Decimal `json:"totalBilling"`
	ChartData          ChartData       `json:"chartData"`
}

// ChartData holds the two dashboard series: ServiceUsage has one value per calendar
// month (Jan..Dec), CoverageDistribution one per plan (Basic, Premium, Family).
type ChartData struct {
	ServiceUsage         []float64 `json:"serviceUsage"`
	CoverageDistribution []float64 `json:"coverageDistribution"`
}
