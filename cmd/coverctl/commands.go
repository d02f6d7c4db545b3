package main

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/jacksonlee411/medcover-console/modules/coverage/domain/types"
	"github.com/jacksonlee411/medcover-console/modules/coverage/presentation/viewmodels"
	"github.com/jacksonlee411/medcover-console/modules/coverage/services"
	"github.com/jacksonlee411/medcover-console/pkg/csvexport"
)

func newSeedCmd(gateway gatewayFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Ask the backend to create its sample data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gw, err := gateway()
			if err != nil {
				return err
			}
			if err := gw.Initialize(cmd.Context()); err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "sample data initialized")
			return nil
		},
	}
}

func newListCmd(gateway gatewayFunc) *cobra.Command {
	values := map[string]*string{}
	cmd := &cobra.Command{
		Use:       "list <kind>",
		Short:     "Print a filtered list of employees, beneficiaries, services, billing or policies",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := types.Kind(strings.ToLower(strings.TrimSpace(args[0])))
			if !kind.Valid() {
				return fmt.Errorf("list: unknown kind %q (expected %s)", args[0], strings.Join(kindNames(), "|"))
			}
			gw, err := gateway()
			if err != nil {
				return err
			}
			c := viewmodels.CriteriaFromValues(func(key string) string { return *values[key] })

			ctx := cmd.Context()
			var (
				t       viewmodels.Table
				summary *viewmodels.BillingSummary
			)
			switch kind {
			case types.KindEmployees:
				var records []types.Employee
				if records, err = gw.ListEmployees(ctx); err == nil {
					records, err = services.FilterEmployees(records, c)
				}
				t = viewmodels.EmployeesTable(records)
			case types.KindBeneficiaries:
				var records []types.Beneficiary
				if records, err = gw.ListBeneficiaries(ctx); err == nil {
					records, err = services.FilterBeneficiaries(records, c)
				}
				t = viewmodels.BeneficiariesTable(records)
			case types.KindServices:
				var records []types.Service
				if records, err = gw.ListServices(ctx); err == nil {
					records, err = services.FilterServices(records, c)
				}
				t = viewmodels.ServicesTable(records)
			case types.KindBilling:
				var records []types.Claim
				if records, err = gw.ListClaims(ctx); err == nil {
					records, err = services.FilterClaims(records, c)
				}
				t = viewmodels.BillingTable(records)
				if err == nil {
					s := viewmodels.Summarize(records)
					summary = &s
				}
			case types.KindPolicies:
				var records []types.Policy
				if records, err = gw.ListPolicies(ctx); err == nil {
					records, err = services.FilterPolicies(records, c)
				}
				t = policyTable(viewmodels.PolicyCards(records))
			}
			if err != nil {
				return fmt.Errorf("list %s: %w", kind, err)
			}
			if err := printTable(cmd.OutOrStdout(), t); err != nil {
				return err
			}
			if summary != nil {
				printSummary(cmd.OutOrStdout(), *summary)
			}
			return nil
		},
	}

	f := cmd.Flags()
	values["term"] = f.String("search", "", "case-insensitive search term")
	values["expr"] = f.String("expr", "", "CEL filter expression over record fields")
	values["status"] = f.String("status", "", "status filter (billing, policies, employees)")
	values["plan"] = f.String("plan", "", "coverage plan filter (employees)")
	values["relationship"] = f.String("relationship", "", "relationship filter (beneficiaries)")
	values["serviceType"] = f.String("service-type", "", "service type filter (services)")
	values["date"] = f.String("date", "", "service date filter, YYYY-MM-DD (services)")
	return cmd
}

func newReportCmd(gateway gatewayFunc, now func() time.Time) *cobra.Command {
	var start, end, out string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a billing report and write it as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rng, err := types.ParseReportRange(start, end)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			gw, err := gateway()
			if err != nil {
				return err
			}
			r, err := gw.BillingReport(cmd.Context(), rng)
			if err != nil {
				return fmt.Errorf("report: %w", err)
			}
			body, err := csvexport.Encode(r.DetailedRecords)
			if err != nil {
				return fmt.Errorf("report: encode csv: %w", err)
			}
			if out == "-" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			if out == "" {
				out = csvexport.FileName(now())
			}
			if err := os.WriteFile(out, body, 0o644); err != nil {
				return fmt.Errorf("report: %w", err)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d records to %s\n", len(r.DetailedRecords), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&start, "start", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&end, "end", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", "", `output path; "-" writes to stdout (default billing_report_<date>.csv)`)
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func kindNames() []string {
	kinds := types.Kinds()
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, string(k))
	}
	return out
}

func policyTable(cards []viewmodels.PolicyCard) viewmodels.Table {
	t := viewmodels.Table{
		Kind:    types.KindPolicies,
		Columns: []string{"Name", "Annual Limit", "Deductible", "Coverage", "Status"},
	}
	for _, c := range cards {
		t.Rows = append(t.Rows, viewmodels.Row{
			ID: c.ID,
			Cells: []viewmodels.Cell{
				{Text: c.Name}, {Text: c.AnnualLimit}, {Text: c.Deductible}, {Text: c.Coverage}, c.Status,
			},
		})
	}
	return t
}

func printTable(w io.Writer, t viewmodels.Table) error {
	if t.Empty() {
		_, err := fmt.Fprintln(w, "No records found")
		return err
	}
	// Row actions have no meaning outside the console.
	cols := t.Columns
	if n := len(t.Rows[0].Cells); n < len(cols) {
		cols = cols[:n]
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, c := range row.Cells {
			cells = append(cells, c.Text)
		}
		_, _ = fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

func printSummary(w io.Writer, s viewmodels.BillingSummary) {
	_, _ = fmt.Fprintf(w, "\npending=%d processed=%d total=%s\n", s.Pending, s.Processed, s.TotalText())
}
